package repository

import (
	"errors"

	"medical-data-app/internal/domain/entity"
	domainRepo "medical-data-app/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, patientID string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("patient_id = ?", patientID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("patient_id ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindOptions(db *gorm.DB) ([]entity.SelectOption, error) {
	var options []entity.SelectOption
	err := db.Model(&entity.Patient{}).
		Select("patient_id AS value, name AS label").
		Order("patient_id ASC").
		Scan(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *patientRepository) Exists(db *gorm.DB, patientID string) (bool, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Where("patient_id = ?", patientID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes every column when the stored version still matches
// patient.Version. Zero affected rows means the row is gone or was changed
// by someone else.
func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("patient_id = ? AND version = ?", patient.PatientID, patient.Version).
		Updates(map[string]interface{}{
			"name":         patient.Name,
			"age":          patient.Age,
			"gender":       patient.Gender,
			"contact_info": patient.ContactInfo,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		patient.Version++
	}
	return result.RowsAffected, nil
}

func (r *patientRepository) Delete(db *gorm.DB, patientID string) (int64, error) {
	affected := db.Where("patient_id = ?", patientID).Delete(&entity.Patient{})
	return affected.RowsAffected, affected.Error
}
