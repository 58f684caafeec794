package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice payment methods and statuses.
const (
	PaymentCard      = "Tarjeta"
	PaymentCash      = "Contado"
	PaymentFinancing = "Financiamiento"
	PaymentInsurance = "Seguro"

	InvoiceStatusPaid    = "Pagada"
	InvoiceStatusPending = "Pendiente"
	InvoiceStatusOverdue = "Vencida"
)

// Invoice is a billing record tied to a patient and optionally to the
// appointment that produced it.
type Invoice struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentID    *uuid.UUID      `gorm:"type:uuid" json:"appointment_id,omitempty"`
	SiteID           *uuid.UUID      `gorm:"type:uuid" json:"site_id,omitempty"`
	Date             time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod    string          `gorm:"type:varchar(30);not null;default:'Contado'" json:"payment_method"`
	Status           string          `gorm:"type:varchar(20);not null;default:'Pendiente';index" json:"status"`
	InsuranceCompany *string         `gorm:"type:varchar(150)" json:"insurance_company,omitempty"`
	InsurancePolicy  *string         `gorm:"type:varchar(100)" json:"insurance_policy,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}
