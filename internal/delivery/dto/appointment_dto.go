package dto

import "time"

// Request DTOs

type AppointmentRequest struct {
	AppointmentID   string `json:"appointment_id" mapstructure:"appointment_id" validate:"required,max=450"`
	PatientID       string `json:"patient_id" mapstructure:"patient_id" validate:"required,max=450"`
	DoctorID        string `json:"doctor_id" mapstructure:"doctor_id" validate:"required,max=450"`
	AppointmentDate string `json:"appointment_date" mapstructure:"appointment_date" validate:"required"` // RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD
	Purpose         string `json:"purpose" mapstructure:"purpose" validate:"required"`
	Version         int64  `json:"version,omitempty" mapstructure:"version" validate:"required,min=1"`
}

// Response DTOs

type AppointmentResponse struct {
	AppointmentID   string           `json:"appointment_id"`
	PatientID       string           `json:"patient_id"`
	DoctorID        string           `json:"doctor_id"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	Doctor          *DoctorResponse  `json:"doctor,omitempty"`
	AppointmentDate time.Time        `json:"appointment_date"`
	Purpose         string           `json:"purpose"`
	Version         int64            `json:"version"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AppointmentFormView struct {
	Appointment              AppointmentRequest `json:"appointment"`
	Patients                 []SelectOption     `json:"patients"`
	Doctors                  []SelectOption     `json:"doctors"`
	Errors                   map[string]string  `json:"errors,omitempty"`
	RequestVerificationToken string             `json:"request_verification_token,omitempty"`
}
