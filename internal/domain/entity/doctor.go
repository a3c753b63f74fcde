package entity

import "time"

type Doctor struct {
	DoctorID    string    `gorm:"column:doctor_id;type:varchar(450);primaryKey" json:"doctor_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Specialty   string    `gorm:"type:varchar(100);not null;index" json:"specialty"`
	ContactInfo string    `gorm:"type:varchar(255);not null" json:"contact_info"`
	Version     int64     `gorm:"not null" json:"version"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}
