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

type InvoiceHandler struct {
	invoiceUsecase usecase.InvoiceUsecase
	validator      *validator.CustomValidator
}

func NewInvoiceHandler(invoiceUsecase usecase.InvoiceUsecase, validator *validator.CustomValidator) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUsecase: invoiceUsecase,
		validator:      validator,
	}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := sqlbuild.ParsePagination(q.Get("limit"), q.Get("offset"))

	filter := &entity.InvoiceFilter{
		Status:    q.Get("status"),
		SiteID:    q.Get("siteId"),
		PatientID: q.Get("patientId"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}

	invoices, total, err := h.invoiceUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list invoices", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"total":    total,
		"count":    len(invoices),
		"invoices": invoices,
	})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		default:
			response.InternalServerError(w, "Failed to get invoice", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"invoice": invoice})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	invoice, err := h.invoiceUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrInvalidPaymentMethod:
			response.BadRequest(w, "Invalid payment method")
		case usecase.ErrInvalidInvoiceStatus:
			response.BadRequest(w, "Invalid invoice status")
		case usecase.ErrAppointmentRefNotFound:
			response.BadRequest(w, "Referenced appointment not found")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to create invoice", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"invoice": invoice})
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice ID")
		return
	}

	payload, err := sqlbuild.DecodePayload(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	actor := middleware.ActorFromRequest(r)
	invoice, err := h.invoiceUsecase.Update(r.Context(), actor, id, payload)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		case sqlbuild.ErrNoFields:
			response.BadRequest(w, "No fields to update")
		case usecase.ErrInvalidUpdatePayload:
			response.BadRequest(w, "Invalid update payload")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrInvalidPaymentMethod:
			response.BadRequest(w, "Invalid payment method")
		case usecase.ErrInvalidInvoiceStatus:
			response.BadRequest(w, "Invalid invoice status")
		case usecase.ErrSiteNotFound:
			response.BadRequest(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to update invoice", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"invoice": invoice})
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid invoice ID")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.invoiceUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrInvoiceNotFound:
			response.NotFound(w, "Invoice not found")
		default:
			response.InternalServerError(w, "Failed to delete invoice", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Invoice deleted"})
}
