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

const doctorsPath = "/Doctors"

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	antiForgery   service.AntiForgeryService
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, antiForgery service.AntiForgeryService, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		antiForgery:   antiForgery,
		validator:     validator,
	}
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", dto.DoctorRequest{}, nil)
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.ValidateExcept(&req, "Version"); err != nil || len(decodeErrs) > 0 {
		h.renderForm(w, r, http.StatusBadRequest, "Validation failed", req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.doctorUsecase.CreateDoctor(r.Context(), &req); err != nil {
		if errors.Is(err, usecase.ErrDoctorExists) {
			h.renderForm(w, r, http.StatusConflict, "Doctor already exists", req, map[string]string{"doctor_id": err.Error()})
			return
		}
		h.writeError(w, err, "Failed to create doctor")
		return
	}

	response.SeeOther(w, doctorsPath)
}

func (h *DoctorHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.doctorUsecase.GetEditForm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get doctor")
		return
	}

	h.renderForm(w, r, http.StatusOK, "", view.Doctor, nil)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.DoctorRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if id == "" || id != req.DoctorID {
		response.NotFound(w, "Doctor not found")
		return
	}

	if err := h.validator.Validate(&req); err != nil || len(decodeErrs) > 0 {
		h.renderForm(w, r, http.StatusBadRequest, "Validation failed", req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.doctorUsecase.UpdateDoctor(r.Context(), id, &req); err != nil {
		h.writeError(w, err, "Failed to update doctor")
		return
	}

	response.SeeOther(w, doctorsPath)
}

func (h *DoctorHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get doctor")
		return
	}

	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "", dto.DeleteConfirmation{Record: doctor, RequestVerificationToken: token})
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.doctorUsecase.DeleteDoctor(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err, "Failed to delete doctor")
		return
	}

	response.SeeOther(w, doctorsPath)
}

func (h *DoctorHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, message string, req dto.DoctorRequest, errs map[string]string) {
	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	view := dto.DoctorFormView{Doctor: req, Errors: errs, RequestVerificationToken: token}
	if status >= http.StatusBadRequest {
		response.FormError(w, status, message, view)
		return
	}
	response.Success(w, status, message, view)
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrDoctorInUse):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
