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
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrDoctorExists   = errors.New("doctor id already exists")
	ErrDoctorInUse    = errors.New("doctor is referenced by appointments")
)

type DoctorUsecase interface {
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID string) (*dto.DoctorResponse, error)
	GetEditForm(ctx context.Context, doctorID string) (*dto.DoctorFormView, error)
	CreateDoctor(ctx context.Context, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID string, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, doctorID string) error
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	deletePolicy    config.DeletePolicy
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	deletePolicy config.DeletePolicy,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		deletePolicy:    deletePolicy,
	}
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID string) (*dto.DoctorResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetEditForm(ctx context.Context, doctorID string) (*dto.DoctorFormView, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return &dto.DoctorFormView{Doctor: converter.DoctorToRequest(doctor)}, nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	doctor := &entity.Doctor{
		DoctorID:    req.DoctorID,
		Name:        req.Name,
		Specialty:   req.Specialty,
		ContactInfo: req.ContactInfo,
		Version:     1,
	}

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "pkey") {
			return nil, ErrDoctorExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID string, req *dto.DoctorRequest) (*dto.DoctorResponse, error) {
	if doctorID == "" || doctorID != req.DoctorID {
		return nil, ErrDoctorNotFound
	}

	doctor := &entity.Doctor{
		DoctorID:    req.DoctorID,
		Name:        req.Name,
		Specialty:   req.Specialty,
		ContactInfo: req.ContactInfo,
		Version:     req.Version,
	}

	db := u.db.WithContext(ctx)
	affected, err := u.doctorRepo.Update(db, doctor)
	if err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	if affected == 0 {
		exists, err := u.doctorRepo.Exists(db, doctorID)
		if err != nil {
			u.log.Warnf("Failed to check doctor existence: %+v", err)
			return nil, err
		}
		if !exists {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Concurrency conflict updating doctor %s at version %d", doctorID, req.Version)
		return nil, ErrConcurrencyConflict
	}

	return u.GetDoctor(ctx, doctorID)
}

// DeleteDoctor removes the doctor together with every medication the doctor
// prescribed. Appointments follow the configured delete policy.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID string) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.log.Warnf("Failed to begin transaction: %+v", tx.Error)
		return tx.Error
	}
	defer tx.Rollback()

	if u.deletePolicy == config.DeletePolicyCascade {
		if _, err := u.appointmentRepo.DeleteByDoctorID(tx, doctorID); err != nil {
			u.log.Warnf("Failed to delete appointments of doctor %s: %+v", doctorID, err)
			return err
		}
	}

	affected, err := u.doctorRepo.Delete(tx, doctorID)
	if err != nil {
		if isForeignKeyError(err, "doctor") {
			return ErrDoctorInUse
		}
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if affected > 0 {
		u.log.Infof("Doctor deleted: id=%s, policy=%s", doctorID, u.deletePolicy)
	}
	return nil
}

func (u *doctorUsecase) findDoctor(ctx context.Context, doctorID string) (*entity.Doctor, error) {
	if doctorID == "" {
		return nil, ErrDoctorNotFound
	}

	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
