package handler

import (
	"encoding/json"
	"net/http"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/delivery/http/middleware"
	"novadent-crm/internal/usecase"
	"novadent-crm/pkg/response"
	"novadent-crm/pkg/sqlbuild"
	"novadent-crm/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	doctors, err := h.doctorUsecase.List(r.Context(), activeOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count":   len(doctors),
		"doctors": doctors,
	})
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"doctor": doctor})
}

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	doctor, err := h.doctorUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorEmailExists:
			response.BadRequest(w, "A doctor with this email already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"doctor": doctor})
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	doctor, err := h.doctorUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrDoctorEmailExists:
			response.BadRequest(w, "A doctor with this email already exists")
		default:
			response.InternalServerError(w, "Failed to update doctor", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"doctor": doctor})
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.doctorUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to delete doctor", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Doctor deleted"})
}
