package converter

import (
	"time"

	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Patient and Doctor are only set when they were preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		AppointmentID:   appointment.AppointmentID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate,
		Purpose:         appointment.Purpose,
		Version:         appointment.Version,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Patient.PatientID != "" {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Doctor.DoctorID != "" {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func AppointmentToRequest(appointment *entity.Appointment) dto.AppointmentRequest {
	return dto.AppointmentRequest{
		AppointmentID:   appointment.AppointmentID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.Format(time.RFC3339),
		Purpose:         appointment.Purpose,
		Version:         appointment.Version,
	}
}
