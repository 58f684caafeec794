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

type LeadHandler struct {
	leadUsecase usecase.LeadUsecase
	validator   *validator.CustomValidator
}

func NewLeadHandler(leadUsecase usecase.LeadUsecase, validator *validator.CustomValidator) *LeadHandler {
	return &LeadHandler{
		leadUsecase: leadUsecase,
		validator:   validator,
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := sqlbuild.ParsePagination(q.Get("limit"), q.Get("offset"))

	filter := &entity.LeadFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		SiteID: q.Get("siteId"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	leads, total, err := h.leadUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list leads", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"total": total,
		"count": len(leads),
		"leads": leads,
	})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lead ID")
		return
	}

	lead, err := h.leadUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrLeadNotFound:
			response.NotFound(w, "Lead not found")
		default:
			response.InternalServerError(w, "Failed to get lead", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"lead": lead})
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	lead, err := h.leadUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidLeadStatus:
			response.BadRequest(w, "Invalid lead status")
		case usecase.ErrCampaignNotFound:
			response.BadRequest(w, "Campaign not found")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to create lead", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"lead": lead})
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lead ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	lead, err := h.leadUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrLeadNotFound:
			response.NotFound(w, "Lead not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrInvalidLeadStatus:
			response.BadRequest(w, "Invalid lead status")
		case usecase.ErrCampaignNotFound:
			response.BadRequest(w, "Campaign not found")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to update lead", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"lead": lead})
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lead ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.leadUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrLeadNotFound:
			response.NotFound(w, "Lead not found")
		default:
			response.InternalServerError(w, "Failed to delete lead", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Lead deleted"})
}

func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid lead ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	result, err := h.leadUsecase.Convert(r.Context(), actor, id)
	if err != nil {
		switch err {
		case usecase.ErrLeadNotFound:
			response.NotFound(w, "Lead not found")
		case usecase.ErrLeadAlreadyConverted:
			response.BadRequest(w, "Lead has already been converted")
		case usecase.ErrPhoneAlreadyExists:
			response.BadRequest(w, "A patient with this phone already exists")
		default:
			response.InternalServerError(w, "Failed to convert lead", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{
		"lead":    result.Lead,
		"patient": result.Patient,
	})
}
