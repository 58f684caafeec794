package handler

import (
	"encoding/json"
	"net/http"

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

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := sqlbuild.ParsePagination(q.Get("limit"), q.Get("offset"))

	filter := &entity.PatientFilter{
		Search:     q.Get("search"),
		LeadStatus: q.Get("leadStatus"),
		SiteID:     q.Get("siteId"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}

	patients, total, err := h.patientUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"total":    total,
		"count":    len(patients),
		"patients": patients,
	})
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	detail, err := h.patientUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"patient":        detail.Patient,
		"appointments":   detail.Appointments,
		"loyaltyPoints": detail.LoyaltyPoints,
		"odontograms":    detail.Odontograms,
	})
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	patient, err := h.patientUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrPhoneAlreadyExists:
			response.BadRequest(w, "A patient with this phone already exists")
		case usecase.ErrInvalidLeadStatus:
			response.BadRequest(w, "Invalid lead status")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to create patient", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"patient": patient})
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	patient, err := h.patientUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrInvalidLeadStatus:
			response.BadRequest(w, "Invalid lead status")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrPhoneAlreadyExists:
			response.BadRequest(w, "A patient with this phone already exists")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to update patient", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"patient": patient})
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.patientUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to delete patient", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Patient deleted"})
}

func (h *PatientHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.patientUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute patient stats", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"stats": stats})
}

func (h *PatientHandler) AddLoyaltyPoints(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.AddLoyaltyPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	point, patient, err := h.patientUsecase.AddLoyaltyPoints(r.Context(), actor, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to add loyalty points", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{
		"loyaltyPoint": point,
		"patient":       patient,
	})
}

func (h *PatientHandler) ListLoyaltyPoints(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	points, err := h.patientUsecase.ListLoyaltyPoints(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to list loyalty points", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count":          len(points),
		"loyaltyPoints": points,
	})
}

func (h *PatientHandler) CreateOdontogram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.CreateOdontogramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	odontogram, err := h.patientUsecase.CreateOdontogram(r.Context(), actor, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to create odontogram", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"odontogram": odontogram})
}

func (h *PatientHandler) ListOdontograms(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	odontograms, err := h.patientUsecase.ListOdontograms(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to list odontograms", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count":       len(odontograms),
		"odontograms": odontograms,
	})
}
