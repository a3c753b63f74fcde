package handler

import (
	"errors"
	"net/http"

	"medical-data-app/internal/delivery/dto"
	"medical-data-app/internal/service"
	"medical-data-app/internal/usecase"
	"medical-data-app/pkg/response"
	"medical-data-app/pkg/validator"

	"github.com/gorilla/mux"
)

const patientsPath = "/Patients"

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	antiForgery    service.AntiForgeryService
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, antiForgery service.AntiForgeryService, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		antiForgery:    antiForgery,
		validator:      validator,
	}
}

func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAllPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetPatient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", dto.PatientRequest{}, nil)
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.ValidateExcept(&req, "Version"); err != nil || len(decodeErrs) > 0 {
		h.renderForm(w, r, http.StatusBadRequest, "Validation failed", req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.patientUsecase.CreatePatient(r.Context(), &req); err != nil {
		if errors.Is(err, usecase.ErrPatientExists) {
			h.renderForm(w, r, http.StatusConflict, "Patient already exists", req, map[string]string{"patient_id": err.Error()})
			return
		}
		h.writeError(w, err, "Failed to create patient")
		return
	}

	response.SeeOther(w, patientsPath)
}

func (h *PatientHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.patientUsecase.GetEditForm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get patient")
		return
	}

	h.renderForm(w, r, http.StatusOK, "", view.Patient, nil)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.PatientRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if id == "" || id != req.PatientID {
		response.NotFound(w, "Patient not found")
		return
	}

	if err := h.validator.Validate(&req); err != nil || len(decodeErrs) > 0 {
		h.renderForm(w, r, http.StatusBadRequest, "Validation failed", req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.patientUsecase.UpdatePatient(r.Context(), id, &req); err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	response.SeeOther(w, patientsPath)
}

func (h *PatientHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.GetPatient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get patient")
		return
	}

	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "", dto.DeleteConfirmation{Record: patient, RequestVerificationToken: token})
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.patientUsecase.DeletePatient(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err, "Failed to delete patient")
		return
	}

	response.SeeOther(w, patientsPath)
}

func (h *PatientHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, message string, req dto.PatientRequest, errs map[string]string) {
	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	view := dto.PatientFormView{Patient: req, Errors: errs, RequestVerificationToken: token}
	if status >= http.StatusBadRequest {
		response.FormError(w, status, message, view)
		return
	}
	response.Success(w, status, message, view)
}

func (h *PatientHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrPatientInUse):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
