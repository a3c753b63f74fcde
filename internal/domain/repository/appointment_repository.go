package repository

import (
	"medical-data-app/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, appointmentID string) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	Exists(db *gorm.DB, appointmentID string) (bool, error)
	Update(db *gorm.DB, appointment *entity.Appointment) (int64, error)
	Delete(db *gorm.DB, appointmentID string) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID string) (int64, error)
	DeleteByDoctorID(db *gorm.DB, doctorID string) (int64, error)
}
