package dto

import "github.com/shopspring/decimal"

type CreateInvoiceRequest struct {
	PatientID        string          `json:"patientId" validate:"required,uuid"`
	AppointmentID    *string         `json:"appointmentId" validate:"omitempty,uuid"`
	SiteID           *string         `json:"siteId" validate:"omitempty,uuid"`
	Date             string          `json:"date" validate:"required,datetime=2006-01-02"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod    string          `json:"paymentMethod" validate:"omitempty,oneof=Tarjeta Contado Financiamiento Seguro"`
	Status           string          `json:"status" validate:"omitempty,oneof=Pagada Pendiente Vencida"`
	InsuranceCompany *string         `json:"insuranceCompany"`
	InsurancePolicy  *string         `json:"insurancePolicy"`
}
