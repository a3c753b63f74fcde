package dto

import "time"

// Request DTOs

type MedicationRequest struct {
	MedicationID   string `json:"medication_id" mapstructure:"medication_id" validate:"required,max=450"`
	PatientID      string `json:"patient_id" mapstructure:"patient_id" validate:"required,max=450"`
	DoctorID       string `json:"doctor_id" mapstructure:"doctor_id" validate:"required,max=450"`
	MedicationName string `json:"medication_name" mapstructure:"medication_name" validate:"required,max=255"`
	PrescribedDate string `json:"prescribed_date" mapstructure:"prescribed_date" validate:"required"` // RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD
	Dosage         string `json:"dosage" mapstructure:"dosage" validate:"required,max=100"`
	Frequency      string `json:"frequency" mapstructure:"frequency" validate:"required,max=100"`
	Version        int64  `json:"version,omitempty" mapstructure:"version" validate:"required,min=1"`
}

// Response DTOs

type MedicationResponse struct {
	MedicationID   string           `json:"medication_id"`
	PatientID      string           `json:"patient_id"`
	DoctorID       string           `json:"doctor_id"`
	Patient        *PatientResponse `json:"patient,omitempty"`
	Doctor         *DoctorResponse  `json:"doctor,omitempty"`
	MedicationName string           `json:"medication_name"`
	PrescribedDate time.Time        `json:"prescribed_date"`
	Dosage         string           `json:"dosage"`
	Frequency      string           `json:"frequency"`
	Version        int64            `json:"version"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type MedicationListResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Total       int                  `json:"total"`
}

type MedicationFormView struct {
	Medication               MedicationRequest `json:"medication"`
	Patients                 []SelectOption    `json:"patients"`
	Doctors                  []SelectOption    `json:"doctors"`
	Errors                   map[string]string `json:"errors,omitempty"`
	RequestVerificationToken string            `json:"request_verification_token,omitempty"`
}
