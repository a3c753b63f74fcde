package dto

import "time"

// Request DTOs

type DoctorRequest struct {
	DoctorID    string `json:"doctor_id" mapstructure:"doctor_id" validate:"required,max=450"`
	Name        string `json:"name" mapstructure:"name" validate:"required,max=255"`
	Specialty   string `json:"specialty" mapstructure:"specialty" validate:"required,max=100"`
	ContactInfo string `json:"contact_info" mapstructure:"contact_info" validate:"required,max=255"`
	Version     int64  `json:"version,omitempty" mapstructure:"version" validate:"required,min=1"`
}

// Response DTOs

type DoctorResponse struct {
	DoctorID    string    `json:"doctor_id"`
	Name        string    `json:"name"`
	Specialty   string    `json:"specialty"`
	ContactInfo string    `json:"contact_info"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type DoctorFormView struct {
	Doctor                   DoctorRequest     `json:"doctor"`
	Errors                   map[string]string `json:"errors,omitempty"`
	RequestVerificationToken string            `json:"request_verification_token,omitempty"`
}
