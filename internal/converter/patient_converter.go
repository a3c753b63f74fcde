package converter

import (
	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		PatientID:   patient.PatientID,
		Name:        patient.Name,
		Age:         patient.Age,
		Gender:      patient.Gender,
		ContactInfo: patient.ContactInfo,
		Version:     patient.Version,
		CreatedAt:   patient.CreatedAt,
		UpdatedAt:   patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

// PatientToRequest fills an edit form with the stored values
func PatientToRequest(patient *entity.Patient) dto.PatientRequest {
	age := patient.Age
	return dto.PatientRequest{
		PatientID:   patient.PatientID,
		Name:        patient.Name,
		Age:         &age,
		Gender:      patient.Gender,
		ContactInfo: patient.ContactInfo,
		Version:     patient.Version,
	}
}

// OptionsToSelectList marks the option matching selected, if any
func OptionsToSelectList(options []entity.SelectOption, selected string) []dto.SelectOption {
	list := make([]dto.SelectOption, len(options))
	for i, option := range options {
		list[i] = dto.SelectOption{
			Value:    option.Value,
			Label:    option.Label,
			Selected: selected != "" && option.Value == selected,
		}
	}
	return list
}
