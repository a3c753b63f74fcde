package entity

import "time"

// Medication is a prescription written by a doctor for a patient.
// Deleting the prescribing doctor deletes the medication with it.
type Medication struct {
	MedicationID   string    `gorm:"column:medication_id;type:varchar(450);primaryKey" json:"medication_id"`
	PatientID      string    `gorm:"column:patient_id;type:varchar(450);not null;index" json:"patient_id"`
	DoctorID       string    `gorm:"column:doctor_id;type:varchar(450);not null;index" json:"doctor_id"`
	MedicationName string    `gorm:"type:varchar(255);not null" json:"medication_name"`
	PrescribedDate time.Time `gorm:"type:timestamptz;not null" json:"prescribed_date"`
	Dosage         string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Frequency      string    `gorm:"type:varchar(100);not null" json:"frequency"`
	Version        int64     `gorm:"not null" json:"version"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID;references:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:DoctorID" json:"doctor,omitempty"`
}

func (Medication) TableName() string {
	return "medications"
}
