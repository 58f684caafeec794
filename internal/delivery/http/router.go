package http

import (
	"net/http"

	"novadent-crm/internal/delivery/http/handler"
	"novadent-crm/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	siteHandler        *handler.SiteHandler
	doctorHandler      *handler.DoctorHandler
	invoiceHandler     *handler.InvoiceHandler
	inventoryHandler   *handler.InventoryHandler
	leadHandler        *handler.LeadHandler
	campaignHandler    *handler.CampaignHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	siteHandler *handler.SiteHandler,
	doctorHandler *handler.DoctorHandler,
	invoiceHandler *handler.InvoiceHandler,
	inventoryHandler *handler.InventoryHandler,
	leadHandler *handler.LeadHandler,
	campaignHandler *handler.CampaignHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		siteHandler:        siteHandler,
		doctorHandler:      doctorHandler,
		invoiceHandler:     invoiceHandler,
		inventoryHandler:   inventoryHandler,
		leadHandler:        leadHandler,
		campaignHandler:    campaignHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check lives outside the API prefix so load balancers can hit it.
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	api := r.router.PathPrefix("/api").Subrouter()

	// Auth routes (public)
	api.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)

	// Everything else requires a valid session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/profile", r.authHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/change-password", r.authHandler.ChangePassword).Methods(http.MethodPut)

	// Patients. Stats is registered before {id} so it never matches as one.
	protected.HandleFunc("/patients/stats", r.patientHandler.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}/loyalty-points", r.patientHandler.ListLoyaltyPoints).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/loyalty-points", r.patientHandler.AddLoyaltyPoints).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}/odontograms", r.patientHandler.ListOdontograms).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/odontograms", r.patientHandler.CreateOdontogram).Methods(http.MethodPost)

	// Appointments
	protected.HandleFunc("/appointments/stats", r.appointmentHandler.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Sites
	protected.HandleFunc("/sites", r.siteHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/sites", r.siteHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sites/{id}", r.siteHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/sites/{id}", r.siteHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/sites/{id}", r.siteHandler.Delete).Methods(http.MethodDelete)

	// Doctors
	protected.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	// Invoices
	protected.HandleFunc("/invoices", r.invoiceHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/invoices", r.invoiceHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{id}", r.invoiceHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{id}", r.invoiceHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/invoices/{id}", r.invoiceHandler.Delete).Methods(http.MethodDelete)

	// Inventory
	protected.HandleFunc("/inventory", r.inventoryHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/inventory", r.inventoryHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/inventory/{id}", r.inventoryHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/inventory/{id}", r.inventoryHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/inventory/{id}", r.inventoryHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/inventory/{id}/movements", r.inventoryHandler.ListMovements).Methods(http.MethodGet)
	protected.HandleFunc("/inventory/{id}/movements", r.inventoryHandler.RegisterMovement).Methods(http.MethodPost)

	// Leads
	protected.HandleFunc("/leads", r.leadHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/leads", r.leadHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/leads/{id}", r.leadHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/leads/{id}", r.leadHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/leads/{id}", r.leadHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/leads/{id}/convert", r.leadHandler.Convert).Methods(http.MethodPost)

	// Campaigns
	protected.HandleFunc("/campaigns", r.campaignHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/campaigns", r.campaignHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/campaigns/{id}", r.campaignHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/campaigns/{id}", r.campaignHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/campaigns/{id}", r.campaignHandler.Delete).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/auth/register", r.authHandler.Register).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
