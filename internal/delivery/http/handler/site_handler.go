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

type SiteHandler struct {
	siteUsecase usecase.SiteUsecase
	validator   *validator.CustomValidator
}

func NewSiteHandler(siteUsecase usecase.SiteUsecase, validator *validator.CustomValidator) *SiteHandler {
	return &SiteHandler{
		siteUsecase: siteUsecase,
		validator:   validator,
	}
}

func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	sites, err := h.siteUsecase.List(r.Context(), activeOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to list sites", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count": len(sites),
		"sites": sites,
	})
}

func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid site ID")
		return
	}

	site, err := h.siteUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSiteNotFound:
			response.NotFound(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to get site", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"site": site})
}

func (h *SiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	site, err := h.siteUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create site", err.Error())
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"site": site})
}

func (h *SiteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid site ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	site, err := h.siteUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrSiteNotFound:
			response.NotFound(w, "Site not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		default:
			response.InternalServerError(w, "Failed to update site", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"site": site})
}

func (h *SiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid site ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.siteUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrSiteNotFound:
			response.NotFound(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to delete site", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Site deleted"})
}
