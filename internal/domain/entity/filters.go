package entity

// Domain-level list filters. Only keys the caller actually supplied are
// populated; empty strings and the "Todos"/"Todas" sentinels mean "no
// filter". Kept here so repositories never couple to delivery DTOs.

type PatientFilter struct {
	Search     string
	LeadStatus string
	SiteID     string
	Limit      int
	Offset     int
}

type AppointmentFilter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Status    string
	DoctorID  string
	SiteID    string
	Limit     int
}

type InvoiceFilter struct {
	Status    string
	SiteID    string
	PatientID string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

type InventoryFilter struct {
	Search   string
	SiteID   string
	LowStock bool
	Limit    int
	Offset   int
}

type LeadFilter struct {
	Search string
	Status string
	SiteID string
	Limit  int
	Offset int
}

type AuditLogFilter struct {
	UserID     string
	EntityType string
	StartDate  string
	EndDate    string
	Limit      int
	Offset     int
}
