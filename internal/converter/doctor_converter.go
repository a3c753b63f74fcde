package converter

import (
	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		DoctorID:    doctor.DoctorID,
		Name:        doctor.Name,
		Specialty:   doctor.Specialty,
		ContactInfo: doctor.ContactInfo,
		Version:     doctor.Version,
		CreatedAt:   doctor.CreatedAt,
		UpdatedAt:   doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func DoctorToRequest(doctor *entity.Doctor) dto.DoctorRequest {
	return dto.DoctorRequest{
		DoctorID:    doctor.DoctorID,
		Name:        doctor.Name,
		Specialty:   doctor.Specialty,
		ContactInfo: doctor.ContactInfo,
		Version:     doctor.Version,
	}
}
