package entity

import "time"

// Patient is a person under care. PatientID is supplied by staff and never
// changes once the row exists.
type Patient struct {
	PatientID   string    `gorm:"column:patient_id;type:varchar(450);primaryKey" json:"patient_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Age         int       `gorm:"not null" json:"age"`
	Gender      string    `gorm:"type:varchar(50);not null" json:"gender"`
	ContactInfo string    `gorm:"type:varchar(255);not null" json:"contact_info"`
	Version     int64     `gorm:"not null" json:"version"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
