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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentExists   = errors.New("appointment id already exists")
)

type AppointmentUsecase interface {
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error)
	GetCreateForm(ctx context.Context) (*dto.AppointmentFormView, error)
	GetEditForm(ctx context.Context, appointmentID string) (*dto.AppointmentFormView, error)
	BuildFormView(ctx context.Context, req *dto.AppointmentRequest, fieldErrors map[string]string) (*dto.AppointmentFormView, error)
	CreateAppointment(ctx context.Context, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, appointmentID string, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
	}
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetCreateForm(ctx context.Context) (*dto.AppointmentFormView, error) {
	return u.BuildFormView(ctx, &dto.AppointmentRequest{}, nil)
}

func (u *appointmentUsecase) GetEditForm(ctx context.Context, appointmentID string) (*dto.AppointmentFormView, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return u.BuildFormView(ctx, ptr(converter.AppointmentToRequest(appointment)), nil)
}

// BuildFormView loads the patient and doctor selection lists around the
// given values, marking the submitted ids as selected.
func (u *appointmentUsecase) BuildFormView(ctx context.Context, req *dto.AppointmentRequest, fieldErrors map[string]string) (*dto.AppointmentFormView, error) {
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

	return &dto.AppointmentFormView{
		Appointment: *req,
		Patients:    converter.OptionsToSelectList(patients, req.PatientID),
		Doctors:     converter.OptionsToSelectList(doctors, req.DoctorID),
		Errors:      fieldErrors,
	}, nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointmentDate, err := u.validate(db, req)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		AppointmentID:   req.AppointmentID,
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: appointmentDate,
		Purpose:         req.Purpose,
		Version:         1,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if isDuplicateKeyError(err, "pkey") {
			return nil, ErrAppointmentExists
		}
		if refErr := referenceError(err); refErr != nil {
			return nil, refErr
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, patient=%s, doctor=%s", appointment.AppointmentID, appointment.PatientID, appointment.DoctorID)
	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment replaces every field of the appointment. The path id
// must match the submitted id. When no row matches the submitted version
// the appointment is either gone (not found) or was edited concurrently
// (ErrConcurrencyConflict).
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error) {
	if appointmentID == "" || appointmentID != req.AppointmentID {
		return nil, ErrAppointmentNotFound
	}

	db := u.db.WithContext(ctx)

	appointmentDate, err := u.validate(db, req)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		AppointmentID:   req.AppointmentID,
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: appointmentDate,
		Purpose:         req.Purpose,
		Version:         req.Version,
	}

	affected, err := u.appointmentRepo.Update(db, appointment)
	if err != nil {
		if refErr := referenceError(err); refErr != nil {
			return nil, refErr
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if affected == 0 {
		exists, err := u.appointmentRepo.Exists(db, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to check appointment existence: %+v", err)
			return nil, err
		}
		if !exists {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Concurrency conflict updating appointment %s at version %d", appointmentID, req.Version)
		return nil, ErrConcurrencyConflict
	}

	return u.GetAppointment(ctx, appointmentID)
}

// DeleteAppointment removes the appointment if it still exists.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	affected, err := u.appointmentRepo.Delete(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	if affected > 0 {
		u.log.Infof("Appointment deleted: id=%s", appointmentID)
	}
	return nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*entity.Appointment, error) {
	if appointmentID == "" {
		return nil, ErrAppointmentNotFound
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// validate parses the date and checks that the referenced patient and
// doctor exist, collecting every failure into one ValidationError.
func (u *appointmentUsecase) validate(db *gorm.DB, req *dto.AppointmentRequest) (time.Time, error) {
	verr := &ValidationError{}

	appointmentDate, err := parseDateTime(req.AppointmentDate)
	if err != nil {
		verr.add("appointment_date", err.Error())
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

	return appointmentDate, verr.orNil()
}

func ptr[T any](v T) *T {
	return &v
}
