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

type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase, validator *validator.CustomValidator) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := sqlbuild.ParsePagination(q.Get("limit"), q.Get("offset"))

	filter := &entity.InventoryFilter{
		Search:   q.Get("search"),
		SiteID:   q.Get("siteId"),
		LowStock: q.Get("lowStock") == "true",
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	items, total, err := h.inventoryUsecase.ListItems(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list inventory items", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"total": total,
		"count": len(items),
		"items": items,
	})
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	item, err := h.inventoryUsecase.GetItem(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to get inventory item", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"item": item})
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	item, err := h.inventoryUsecase.CreateItem(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrItemCodeExists:
			response.BadRequest(w, "An item with this code already exists")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to create inventory item", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"item": item})
}

func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	item, err := h.inventoryUsecase.UpdateItem(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to update inventory item", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"item": item})
}

func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.inventoryUsecase.DeleteItem(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to delete inventory item", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Inventory item deleted"})
}

func (h *InventoryHandler) RegisterMovement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	movement, item, err := h.inventoryUsecase.RegisterMovement(r.Context(), actor, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		case usecase.ErrInvalidMovementType:
			response.BadRequest(w, "Invalid movement type")
		case usecase.ErrInsufficientStock:
			response.BadRequest(w, "Insufficient stock for this movement")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to register movement", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{
		"movement": movement,
		"item":     item,
	})
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid item ID")
		return
	}

	movements, err := h.inventoryUsecase.ListMovements(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrItemNotFound:
			response.NotFound(w, "Inventory item not found")
		default:
			response.InternalServerError(w, "Failed to list movements", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"count":     len(movements),
		"movements": movements,
	})
}
