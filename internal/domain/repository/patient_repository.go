package repository

import (
	"medical-data-app/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, patientID string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	FindOptions(db *gorm.DB) ([]entity.SelectOption, error)
	Exists(db *gorm.DB, patientID string) (bool, error)
	Update(db *gorm.DB, patient *entity.Patient) (int64, error)
	Delete(db *gorm.DB, patientID string) (int64, error)
}
