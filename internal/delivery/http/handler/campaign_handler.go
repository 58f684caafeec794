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

type CampaignHandler struct {
	campaignUsecase usecase.CampaignUsecase
	validator       *validator.CustomValidator
}

func NewCampaignHandler(campaignUsecase usecase.CampaignUsecase, validator *validator.CustomValidator) *CampaignHandler {
	return &CampaignHandler{
		campaignUsecase: campaignUsecase,
		validator:       validator,
	}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list campaigns", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count":     len(campaigns),
		"campaigns": campaigns,
	})
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrCampaignNotFound:
			response.NotFound(w, "Campaign not found")
		default:
			response.InternalServerError(w, "Failed to get campaign", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"campaign": campaign})
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	campaign, err := h.campaignUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to create campaign", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"campaign": campaign})
}

func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid campaign ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	campaign, err := h.campaignUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrCampaignNotFound:
			response.NotFound(w, "Campaign not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to update campaign", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"campaign": campaign})
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid campaign ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.campaignUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrCampaignNotFound:
			response.NotFound(w, "Campaign not found")
		default:
			response.InternalServerError(w, "Failed to delete campaign", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Campaign deleted"})
}
