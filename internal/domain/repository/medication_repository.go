package repository

import (
	"medical-data-app/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	FindByID(db *gorm.DB, medicationID string) (*entity.Medication, error)
	FindAll(db *gorm.DB) ([]entity.Medication, error)
	Exists(db *gorm.DB, medicationID string) (bool, error)
	Update(db *gorm.DB, medication *entity.Medication) (int64, error)
	Delete(db *gorm.DB, medicationID string) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID string) (int64, error)
}
