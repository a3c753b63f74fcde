package repository

import (
	"medical-data-app/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, doctorID string) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindOptions(db *gorm.DB) ([]entity.SelectOption, error)
	Exists(db *gorm.DB, doctorID string) (bool, error)
	Update(db *gorm.DB, doctor *entity.Doctor) (int64, error)
	Delete(db *gorm.DB, doctorID string) (int64, error)
}
