package converter

import (
	"time"

	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"
)

// MedicationToResponse converts a Medication entity to MedicationResponse DTO
func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}

	response := &dto.MedicationResponse{
		MedicationID:   medication.MedicationID,
		PatientID:      medication.PatientID,
		DoctorID:       medication.DoctorID,
		MedicationName: medication.MedicationName,
		PrescribedDate: medication.PrescribedDate,
		Dosage:         medication.Dosage,
		Frequency:      medication.Frequency,
		Version:        medication.Version,
		CreatedAt:      medication.CreatedAt,
		UpdatedAt:      medication.UpdatedAt,
	}

	if medication.Patient.PatientID != "" {
		response.Patient = PatientToResponse(&medication.Patient)
	}
	if medication.Doctor.DoctorID != "" {
		response.Doctor = DoctorToResponse(&medication.Doctor)
	}

	return response
}

// MedicationsToResponses converts a slice of Medication entities to slice of MedicationResponse DTOs
func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i := range medications {
		responses[i] = *MedicationToResponse(&medications[i])
	}
	return responses
}

func MedicationToRequest(medication *entity.Medication) dto.MedicationRequest {
	return dto.MedicationRequest{
		MedicationID:   medication.MedicationID,
		PatientID:      medication.PatientID,
		DoctorID:       medication.DoctorID,
		MedicationName: medication.MedicationName,
		PrescribedDate: medication.PrescribedDate.Format(time.RFC3339),
		Dosage:         medication.Dosage,
		Frequency:      medication.Frequency,
		Version:        medication.Version,
	}
}
