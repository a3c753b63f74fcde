package usecase

import (
	"context"
	"errors"
	"time"

	"medical-data-app/internal/converter"
	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"
	"medical-data-app/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrMedicationExists   = errors.New("medication id already exists")
)

type MedicationUsecase interface {
	GetAllMedications(ctx context.Context) (*dto.MedicationListResponse, error)
	GetMedication(ctx context.Context, medicationID string) (*dto.MedicationResponse, error)
	GetCreateForm(ctx context.Context) (*dto.MedicationFormView, error)
	GetEditForm(ctx context.Context, medicationID string) (*dto.MedicationFormView, error)
	BuildFormView(ctx context.Context, req *dto.MedicationRequest, fieldErrors map[string]string) (*dto.MedicationFormView, error)
	CreateMedication(ctx context.Context, req *dto.MedicationRequest) (*dto.MedicationResponse, error)
	UpdateMedication(ctx context.Context, medicationID string, req *dto.MedicationRequest) (*dto.MedicationResponse, error)
	DeleteMedication(ctx context.Context, medicationID string) error
}

type medicationUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	patientRepo    repository.PatientRepository
	doctorRepo     repository.DoctorRepository
}

func NewMedicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicationRepo repository.MedicationRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) MedicationUsecase {
	return &medicationUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
		patientRepo:    patientRepo,
		doctorRepo:     doctorRepo,
	}
}

func (u *medicationUsecase) GetAllMedications(ctx context.Context) (*dto.MedicationListResponse, error) {
	medications, err := u.medicationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all medications: %+v", err)
		return nil, err
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(medications),
		Total:       len(medications),
	}, nil
}

func (u *medicationUsecase) GetMedication(ctx context.Context, medicationID string) (*dto.MedicationResponse, error) {
	medication, err := u.findMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) GetCreateForm(ctx context.Context) (*dto.MedicationFormView, error) {
	return u.BuildFormView(ctx, &dto.MedicationRequest{}, nil)
}

func (u *medicationUsecase) GetEditForm(ctx context.Context, medicationID string) (*dto.MedicationFormView, error) {
	medication, err := u.findMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	return u.BuildFormView(ctx, ptr(converter.MedicationToRequest(medication)), nil)
}

func (u *medicationUsecase) BuildFormView(ctx context.Context, req *dto.MedicationRequest, fieldErrors map[string]string) (*dto.MedicationFormView, error) {
	db := u.db.WithContext(ctx)

	patients, err := u.patientRepo.FindOptions(db)
	if err != nil {
		u.log.Warnf("Failed to load patient options: %+v", err)
		return nil, err
	}
	doctors, err := u.doctorRepo.FindOptions(db)
	if err != nil {
		u.log.Warnf("Failed to load doctor options: %+v", err)
		return nil, err
	}

	return &dto.MedicationFormView{
		Medication: *req,
		Patients:   converter.OptionsToSelectList(patients, req.PatientID),
		Doctors:    converter.OptionsToSelectList(doctors, req.DoctorID),
		Errors:     fieldErrors,
	}, nil
}

func (u *medicationUsecase) CreateMedication(ctx context.Context, req *dto.MedicationRequest) (*dto.MedicationResponse, error) {
	db := u.db.WithContext(ctx)

	prescribedDate, err := u.validate(db, req)
	if err != nil {
		return nil, err
	}

	medication := &entity.Medication{
		MedicationID:   req.MedicationID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		MedicationName: req.MedicationName,
		PrescribedDate: prescribedDate,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Version:        1,
	}

	if err := u.medicationRepo.Create(db, medication); err != nil {
		if isDuplicateKeyError(err, "pkey") {
			return nil, ErrMedicationExists
		}
		if refErr := referenceError(err); refErr != nil {
			return nil, refErr
		}
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	u.log.Infof("Medication created: id=%s, patient=%s, doctor=%s", medication.MedicationID, medication.PatientID, medication.DoctorID)
	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) UpdateMedication(ctx context.Context, medicationID string, req *dto.MedicationRequest) (*dto.MedicationResponse, error) {
	if medicationID == "" || medicationID != req.MedicationID {
		return nil, ErrMedicationNotFound
	}

	db := u.db.WithContext(ctx)

	prescribedDate, err := u.validate(db, req)
	if err != nil {
		return nil, err
	}

	medication := &entity.Medication{
		MedicationID:   req.MedicationID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		MedicationName: req.MedicationName,
		PrescribedDate: prescribedDate,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		Version:        req.Version,
	}

	affected, err := u.medicationRepo.Update(db, medication)
	if err != nil {
		if refErr := referenceError(err); refErr != nil {
			return nil, refErr
		}
		u.log.Warnf("Failed to update medication: %+v", err)
		return nil, err
	}

	if affected == 0 {
		exists, err := u.medicationRepo.Exists(db, medicationID)
		if err != nil {
			u.log.Warnf("Failed to check medication existence: %+v", err)
			return nil, err
		}
		if !exists {
			return nil, ErrMedicationNotFound
		}
		u.log.Warnf("Concurrency conflict updating medication %s at version %d", medicationID, req.Version)
		return nil, ErrConcurrencyConflict
	}

	return u.GetMedication(ctx, medicationID)
}

func (u *medicationUsecase) DeleteMedication(ctx context.Context, medicationID string) error {
	affected, err := u.medicationRepo.Delete(u.db.WithContext(ctx), medicationID)
	if err != nil {
		u.log.Warnf("Failed to delete medication: %+v", err)
		return err
	}

	if affected > 0 {
		u.log.Infof("Medication deleted: id=%s", medicationID)
	}
	return nil
}

func (u *medicationUsecase) findMedication(ctx context.Context, medicationID string) (*entity.Medication, error) {
	if medicationID == "" {
		return nil, ErrMedicationNotFound
	}

	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), medicationID)
	if err != nil {
		u.log.Warnf("Failed to find medication: %+v", err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}
	return medication, nil
}

func (u *medicationUsecase) validate(db *gorm.DB, req *dto.MedicationRequest) (time.Time, error) {
	verr := &ValidationError{}

	prescribedDate, err := parseDateTime(req.PrescribedDate)
	if err != nil {
		verr.add("prescribed_date", err.Error())
	}

	patientExists, err := u.patientRepo.Exists(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to check patient existence: %+v", err)
		return time.Time{}, err
	}
	if !patientExists {
		verr.add("patient_id", msgPatientMissing)
	}

	doctorExists, err := u.doctorRepo.Exists(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to check doctor existence: %+v", err)
		return time.Time{}, err
	}
	if !doctorExists {
		verr.add("doctor_id", msgDoctorMissing)
	}

	return prescribedDate, verr.orNil()
}
