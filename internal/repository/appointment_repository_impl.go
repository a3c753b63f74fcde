package repository

import (
	"errors"

	"medical-data-app/internal/domain/entity"
	domainRepo "medical-data-app/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, appointmentID string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("appointment_id = ?", appointmentID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Order("appointment_date ASC, appointment_id ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Exists(db *gorm.DB, appointmentID string) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("appointment_id = ?", appointmentID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("appointment_id = ? AND version = ?", appointment.AppointmentID, appointment.Version).
		Updates(map[string]interface{}{
			"patient_id":       appointment.PatientID,
			"doctor_id":        appointment.DoctorID,
			"appointment_date": appointment.AppointmentDate,
			"purpose":          appointment.Purpose,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		appointment.Version++
	}
	return result.RowsAffected, nil
}

func (r *appointmentRepository) Delete(db *gorm.DB, appointmentID string) (int64, error) {
	affected := db.Where("appointment_id = ?", appointmentID).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}

func (r *appointmentRepository) DeleteByPatientID(db *gorm.DB, patientID string) (int64, error) {
	affected := db.Where("patient_id = ?", patientID).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}

func (r *appointmentRepository) DeleteByDoctorID(db *gorm.DB, doctorID string) (int64, error) {
	affected := db.Where("doctor_id = ?", doctorID).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}
