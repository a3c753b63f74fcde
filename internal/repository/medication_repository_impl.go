package repository

import (
	"errors"

	"medical-data-app/internal/domain/entity"
	domainRepo "medical-data-app/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Omit("Patient", "Doctor").Create(medication).Error
}

func (r *medicationRepository) FindByID(db *gorm.DB, medicationID string) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Preload("Patient").Preload("Doctor").Where("medication_id = ?", medicationID).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) FindAll(db *gorm.DB) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.Preload("Patient").Preload("Doctor").Order("prescribed_date DESC, medication_id ASC").Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) Exists(db *gorm.DB, medicationID string) (bool, error) {
	var count int64
	err := db.Model(&entity.Medication{}).Where("medication_id = ?", medicationID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *medicationRepository) Update(db *gorm.DB, medication *entity.Medication) (int64, error) {
	result := db.Model(&entity.Medication{}).
		Where("medication_id = ? AND version = ?", medication.MedicationID, medication.Version).
		Updates(map[string]interface{}{
			"patient_id":      medication.PatientID,
			"doctor_id":       medication.DoctorID,
			"medication_name": medication.MedicationName,
			"prescribed_date": medication.PrescribedDate,
			"dosage":          medication.Dosage,
			"frequency":       medication.Frequency,
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		medication.Version++
	}
	return result.RowsAffected, nil
}

func (r *medicationRepository) Delete(db *gorm.DB, medicationID string) (int64, error) {
	affected := db.Where("medication_id = ?", medicationID).Delete(&entity.Medication{})
	return affected.RowsAffected, affected.Error
}

func (r *medicationRepository) DeleteByPatientID(db *gorm.DB, patientID string) (int64, error) {
	affected := db.Where("patient_id = ?", patientID).Delete(&entity.Medication{})
	return affected.RowsAffected, affected.Error
}
