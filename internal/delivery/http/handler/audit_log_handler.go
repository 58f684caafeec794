package handler

import (
	"net/http"

	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/usecase"
	"novadent-crm/pkg/response"
	"novadent-crm/pkg/sqlbuild"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := sqlbuild.ParsePagination(q.Get("limit"), q.Get("offset"))

	filter := &entity.AuditLogFilter{
		UserID:     q.Get("userId"),
		EntityType: q.Get("entityType"),
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}

	logs, total, err := h.auditLogUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"total": total,
		"count": len(logs),
		"logs":  logs,
	})
}
