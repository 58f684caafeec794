package dto

import "novadent-crm/internal/domain/entity"

type CreatePatientRequest struct {
	FirstName               string  `json:"firstName" validate:"required,max=100"`
	LastName                string  `json:"lastName" validate:"required,max=100"`
	Phone                   string  `json:"phone" validate:"required,max=20"`
	Email                   *string `json:"email" validate:"omitempty,email"`
	BirthDate               *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Address                 *string `json:"address"`
	MedicalHistory          *string `json:"medicalHistory"`
	CommunicationPreference string  `json:"communicationPreference" validate:"omitempty,oneof=whatsapp email sms"`
	ReferralSource          *string `json:"referralSource"`
	LeadStatus              string  `json:"leadStatus" validate:"omitempty"`
	SiteID                  *string `json:"siteId" validate:"omitempty,uuid"`
	Points                  int     `json:"points" validate:"omitempty,gte=0"`
}

type AddLoyaltyPointsRequest struct {
	Type     string                 `json:"type" validate:"required,max=100"`
	Points   int                    `json:"points" validate:"required"`
	Date     string                 `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Metadata map[string]interface{} `json:"metadata"`
	Verified bool                   `json:"verified"`
}

type CreateOdontogramRequest struct {
	Date  string                 `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Data  map[string]interface{} `json:"data" validate:"required"`
	Notes *string                `json:"notes"`
}

// PatientDetailResponse bundles the patient with its recent clinical history
// the way the detail screen consumes it.
type PatientDetailResponse struct {
	Patient       *entity.Patient       `json:"patient"`
	Appointments  []entity.Appointment  `json:"appointments"`
	LoyaltyPoints []entity.LoyaltyPoint `json:"loyaltyPoints"`
	Odontograms   []entity.Odontogram   `json:"odontograms"`
}
