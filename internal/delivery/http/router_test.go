package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"novadent-crm/internal/delivery/http/handler"
	"novadent-crm/internal/delivery/http/middleware"

	"github.com/stretchr/testify/assert"
)

func newTestRouter() *Router {
	return NewRouter(
		handler.NewAuthHandler(nil, nil),
		handler.NewPatientHandler(nil, nil),
		handler.NewAppointmentHandler(nil, nil),
		handler.NewSiteHandler(nil, nil),
		handler.NewDoctorHandler(nil, nil),
		handler.NewInvoiceHandler(nil, nil),
		handler.NewInventoryHandler(nil, nil),
		handler.NewLeadHandler(nil, nil),
		handler.NewCampaignHandler(nil, nil),
		handler.NewAuditLogHandler(nil),
		middleware.NewAuthMiddleware(nil, nil, nil, nil),
		middleware.NewCORSMiddleware(),
	)
}

func TestRouterServesHealthAtRoot(t *testing.T) {
	srv := newTestRouter().Setup()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRouterHealthNotUnderAPIPrefix(t *testing.T) {
	srv := newTestRouter().Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
