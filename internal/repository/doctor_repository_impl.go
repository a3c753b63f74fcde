package repository

import (
	"errors"

	"medical-data-app/internal/domain/entity"
	domainRepo "medical-data-app/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, doctorID string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("doctor_id = ?", doctorID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Order("doctor_id ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindOptions(db *gorm.DB) ([]entity.SelectOption, error) {
	var options []entity.SelectOption
	err := db.Model(&entity.Doctor{}).
		Select("doctor_id AS value, name AS label").
		Order("doctor_id ASC").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *doctorRepository) Exists(db *gorm.DB, doctorID string) (bool, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) (int64, error) {
	result := db.Model(&entity.Doctor{}).
		Where("doctor_id = ? AND version = ?", doctor.DoctorID, doctor.Version).
		Updates(map[string]interface{}{
			"name":         doctor.Name,
			"specialty":    doctor.Specialty,
			"contact_info": doctor.ContactInfo,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		doctor.Version++
	}
	return result.RowsAffected, nil
}

// Delete removes the doctor row. Medications prescribed by the doctor go
// with it through the ON DELETE CASCADE foreign key.
func (r *doctorRepository) Delete(db *gorm.DB, doctorID string) (int64, error) {
	affected := db.Where("doctor_id = ?", doctorID).Delete(&entity.Doctor{})
	return affected.RowsAffected, affected.Error
}
