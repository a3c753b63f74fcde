package usecase

import (
	"context"
	"errors"

	"medical-data-app/config"
	"medical-data-app/internal/converter"
	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"
	"medical-data-app/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrPatientExists   = errors.New("patient id already exists")
	ErrPatientInUse    = errors.New("patient is referenced by appointments or medications")
)

type PatientUsecase interface {
	GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, patientID string) (*dto.PatientResponse, error)
	GetEditForm(ctx context.Context, patientID string) (*dto.PatientFormView, error)
	CreatePatient(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, patientID string, req *dto.PatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, patientID string) error
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	medicationRepo  repository.MedicationRepository
	deletePolicy    config.DeletePolicy
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	medicationRepo repository.MedicationRepository,
	deletePolicy config.DeletePolicy,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		medicationRepo:  medicationRepo,
		deletePolicy:    deletePolicy,
	}
}

func (u *patientUsecase) GetAllPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID string) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetEditForm(ctx context.Context, patientID string) (*dto.PatientFormView, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &dto.PatientFormView{Patient: converter.PatientToRequest(patient)}, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		PatientID:   req.PatientID,
		Name:        req.Name,
		Age:         *req.Age,
		Gender:      req.Gender,
		ContactInfo: req.ContactInfo,
		Version:     1,
	}

	if err := u.patientRepo.Create(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "pkey") {
			return nil, ErrPatientExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, patientID string, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	if patientID == "" || patientID != req.PatientID {
		return nil, ErrPatientNotFound
	}

	patient := &entity.Patient{
		PatientID:   req.PatientID,
		Name:        req.Name,
		Age:         *req.Age,
		Gender:      req.Gender,
		ContactInfo: req.ContactInfo,
		Version:     req.Version,
	}

	db := u.db.WithContext(ctx)
	affected, err := u.patientRepo.Update(db, patient)
	if err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	if affected == 0 {
		exists, err := u.patientRepo.Exists(db, patientID)
		if err != nil {
			u.log.Warnf("Failed to check patient existence: %+v", err)
			return nil, err
		}
		if !exists {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Concurrency conflict updating patient %s at version %d", patientID, req.Version)
		return nil, ErrConcurrencyConflict
	}

	return u.GetPatient(ctx, patientID)
}

// DeletePatient removes the patient. A missing patient is not an error.
// Under the restrict policy a patient that still has appointments or
// medications cannot be deleted; under the cascade policy those go first.
func (u *patientUsecase) DeletePatient(ctx context.Context, patientID string) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return tx.Error
	}
	defer tx.Rollback()

	if u.deletePolicy == config.DeletePolicyCascade {
		if _, err := u.appointmentRepo.DeleteByPatientID(tx, patientID); err != nil {
			u.log.Warnf("Failed to delete appointments of patient %s: %+v", patientID, err)
			return err
		}
		if _, err := u.medicationRepo.DeleteByPatientID(tx, patientID); err != nil {
			u.log.Warnf("Failed to delete medications of patient %s: %+v", patientID, err)
			return err
		}
	}

	affected, err := u.patientRepo.Delete(tx, patientID)
	if err != nil {
		if isForeignKeyError(err, "patient") {
			return ErrPatientInUse
		}
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if affected > 0 {
		u.log.Infof("Patient deleted: id=%s, policy=%s", patientID, u.deletePolicy)
	}
	return nil
}

func (u *patientUsecase) findPatient(ctx context.Context, patientID string) (*entity.Patient, error) {
	if patientID == "" {
		return nil, ErrPatientNotFound
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}
