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

const appointmentsPath = "/Appointments"

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	antiForgery        service.AntiForgeryService
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, antiForgery service.AntiForgeryService, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		antiForgery:        antiForgery,
		validator:          validator,
	}
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAllAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.appointmentUsecase.GetCreateForm(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to build appointment form")
		return
	}

	h.renderForm(w, r, http.StatusOK, "", view)
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.ValidateExcept(&req, "Version"); err != nil || len(decodeErrs) > 0 {
		h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req); err != nil {
		if errors.Is(err, usecase.ErrAppointmentExists) {
			h.redisplay(w, r, http.StatusConflict, "Appointment already exists", &req, map[string]string{"appointment_id": err.Error()})
			return
		}
		if fields, ok := fieldErrors(err); ok {
			h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, fields)
			return
		}
		h.writeError(w, err, "Failed to create appointment")
		return
	}

	response.SeeOther(w, appointmentsPath)
}

func (h *AppointmentHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.appointmentUsecase.GetEditForm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get appointment")
		return
	}

	h.renderForm(w, r, http.StatusOK, "", view)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.AppointmentRequest
	decodeErrs, err := decodeForm(r, &req)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if id == "" || id != req.AppointmentID {
		response.NotFound(w, "Appointment not found")
		return
	}

	if err := h.validator.Validate(&req); err != nil || len(decodeErrs) > 0 {
		h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, formErrors(h.validator, err, decodeErrs))
		return
	}

	if _, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req); err != nil {
		if fields, ok := fieldErrors(err); ok {
			h.redisplay(w, r, http.StatusBadRequest, "Validation failed", &req, fields)
			return
		}
		h.writeError(w, err, "Failed to update appointment")
		return
	}

	response.SeeOther(w, appointmentsPath)
}

func (h *AppointmentHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "Failed to get appointment")
		return
	}

	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "", dto.DeleteConfirmation{Record: appointment, RequestVerificationToken: token})
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.appointmentUsecase.DeleteAppointment(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err, "Failed to delete appointment")
		return
	}

	response.SeeOther(w, appointmentsPath)
}

// redisplay rebuilds the form, selection lists included, around the
// submitted values.
func (h *AppointmentHandler) redisplay(w http.ResponseWriter, r *http.Request, status int, message string, req *dto.AppointmentRequest, errs map[string]string) {
	view, err := h.appointmentUsecase.BuildFormView(r.Context(), req, errs)
	if err != nil {
		response.InternalServerError(w, "Failed to build appointment form")
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

func (h *AppointmentHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, message string, view *dto.AppointmentFormView) {
	token, err := issueToken(r.Context(), h.antiForgery)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	view.RequestVerificationToken = token

	response.Success(w, status, message, view)
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrConcurrencyConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
