package dto

import "time"

// Request DTOs

// PatientRequest is both the submitted form and the values shown when the
// form is rendered again. Version is only checked on edit.
type PatientRequest struct {
	PatientID   string `json:"patient_id" mapstructure:"patient_id" validate:"required,max=450"`
	Name        string `json:"name" mapstructure:"name" validate:"required,max=255"`
	Age         *int   `json:"age" mapstructure:"age" validate:"required,gte=0"`
	Gender      string `json:"gender" mapstructure:"gender" validate:"required,max=50"`
	ContactInfo string `json:"contact_info" mapstructure:"contact_info" validate:"required,max=255"`
	Version     int64  `json:"version,omitempty" mapstructure:"version" validate:"required,min=1"`
}

// Response DTOs

type PatientResponse struct {
	PatientID   string    `json:"patient_id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	ContactInfo string    `json:"contact_info"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type PatientFormView struct {
	Patient                  PatientRequest    `json:"patient"`
	Errors                   map[string]string `json:"errors,omitempty"`
	RequestVerificationToken string            `json:"request_verification_token,omitempty"`
}
