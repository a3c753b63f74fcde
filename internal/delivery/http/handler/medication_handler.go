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

const medicationsPath = "/Medications"

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	antiForgery       service.AntiForgeryService
	validator         *validator.CustomValidator
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase, antiForgery service.AntiForgeryService, validator *validator.CustomValidator) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		antiForgery:       antiForgery,
		validator:         validator,
	}
}

func (h *MedicationHandler) GetAllMedications(w http.ResponseWriter, r *http.Request) {
	medications, err := h.medicationUsecase.GetAllMedications(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get medications")
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

func (h *MedicationHandler) GetMedication(w http.ResponseWriter, r *http.Request) {
	medication, err := h.medicationUsecase.GetMedication(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get medication")
		return
	}

	response.Success(w, http.StatusOK, "Medication retrieved successfully", medication)
}

func (h *MedicationHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.medicationUsecase.GetCreateForm(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build medication form")
		return
	}

	h.renderForm(w, r, http.StatusOK, "", view)
}

func (h *MedicationHandler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	var req dto.MedicationRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.ValidateExcept(&req, "Version"); err != nil || len(decodeErrs) > 0 {
		h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.medicationUsecase.CreateMedication(r.Context(), &req); err != nil {
		if errors.Is(err, usecase.ErrMedicationExists) {
			h.redisplay(w, r, http.StatusConflict, "Medication already exists", &req, map[string]string{"medication_id": err.Error()})
			return
		}
		if fields, ok := fieldErrors(err); ok {
			h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, fields)
			return
		}
		h.writeError(w, err, "Failed to create medication")
		return
	}

	response.SeeOther(w, medicationsPath)
}

func (h *MedicationHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.medicationUsecase.GetEditForm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get medication")
		return
	}

	h.renderForm(w, r, http.StatusOK, "", view)
}

func (h *MedicationHandler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.MedicationRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if id == "" || id != req.MedicationID {
		response.NotFound(w, "Medication not found")
		return
	}

	if err := h.validator.Validate(&req); err != nil || len(decodeErrs) > 0 {
		h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.medicationUsecase.UpdateMedication(r.Context(), id, &req); err != nil {
		if fields, ok := fieldErrors(err); ok {
			h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, fields)
			return
		}
		h.writeError(w, err, "Failed to update medication")
		return
	}

	response.SeeOther(w, medicationsPath)
}

func (h *MedicationHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	medication, err := h.medicationUsecase.GetMedication(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get medication")
		return
	}

	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "", dto.DeleteConfirmation{Record: medication, RequestVerificationToken: token})
}

func (h *MedicationHandler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	if err := h.medicationUsecase.DeleteMedication(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err, "Failed to delete medication")
		return
	}

	response.SeeOther(w, medicationsPath)
}

// redisplay rebuilds the form, selection lists included, around the
// submitted values.
func (h *MedicationHandler) redisplay(w http.ResponseWriter, r *http.Request, status int, message string, req *dto.MedicationRequest, errs map[string]string) {
	view, err := h.medicationUsecase.BuildFormView(r.Context(), req, errs)
	if err != nil {
		response.InternalServerError(w, "Failed to build medication form")
		return
	}

	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	view.RequestVerificationToken = token

	response.FormError(w, status, message, view)
}

func (h *MedicationHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, message string, view *dto.MedicationFormView) {
	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	view.RequestVerificationToken = token

	response.Success(w, status, message, view)
}

func (h *MedicationHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrMedicationNotFound):
		response.NotFound(w, "Medication not found")
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
