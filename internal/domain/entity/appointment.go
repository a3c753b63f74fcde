package entity

import "time"

// Appointment books a patient with a doctor at a point in time.
type Appointment struct {
	AppointmentID   string    `gorm:"column:appointment_id;type:varchar(450);primaryKey" json:"appointment_id"`
	PatientID       string    `gorm:"column:patient_id;type:varchar(450);not null;index" json:"patient_id"`
	DoctorID        string    `gorm:"column:doctor_id;type:varchar(450);not null;index" json:"doctor_id"`
	AppointmentDate time.Time `gorm:"type:timestamptz;not null" json:"appointment_date"`
	Purpose         string    `gorm:"type:text;not null" json:"purpose"`
	Version         int64     `gorm:"not null" json:"version"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;references:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
