package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/delivery/http/middleware"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/usecase"
	"novadent-crm/pkg/response"
	"novadent-crm/pkg/sqlbuild"
	"novadent-crm/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := sqlbuild.DefaultLimit
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = n
	}

	filter := &entity.AppointmentFilter{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Status:    q.Get("status"),
		DoctorID:  q.Get("doctorId"),
		SiteID:    q.Get("siteId"),
		Limit:     limit,
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count":        len(appointments),
		"appointments": appointments,
	})
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"appointment": appointment})
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	appointment, err := h.appointmentUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrAppointmentConflict:
			response.BadRequest(w, "The doctor already has an appointment at that date and time")
		case usecase.ErrInvalidAppointmentStatus:
			response.BadRequest(w, "Invalid appointment status")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrDoctorNotFound:
			response.BadRequest(w, "Doctor not found")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to create appointment", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"appointment": appointment})
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	appointment, err := h.appointmentUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrAppointmentConflict:
			response.BadRequest(w, "The doctor already has an appointment at that date and time")
		case usecase.ErrInvalidAppointmentStatus:
			response.BadRequest(w, "Invalid appointment status")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrDoctorNotFound:
			response.BadRequest(w, "Doctor not found")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to update appointment", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"appointment": appointment})
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.appointmentUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to delete appointment", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Appointment deleted"})
}

func (h *AppointmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.appointmentUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute appointment stats", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"stats": stats})
}
