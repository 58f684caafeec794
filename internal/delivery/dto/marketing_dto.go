package dto

import (
	"novadent-crm/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type CreateLeadRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Phone      string  `json:"phone" validate:"required,max=20"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Source     *string `json:"source" validate:"omitempty,max=100"`
	Status     string  `json:"status" validate:"omitempty"`
	SiteID     *string `json:"siteId" validate:"omitempty,uuid"`
	CampaignID *string `json:"campaignId" validate:"omitempty,uuid"`
	Notes      *string `json:"notes"`
}

type CreateCampaignRequest struct {
	Name      string           `json:"name" validate:"required,max=200"`
	Platform  *string          `json:"platform" validate:"omitempty,max=100"`
	StartDate string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   *string          `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Budget    *decimal.Decimal `json:"budget"`
}

// ConvertLeadResponse returns both sides of a conversion so the UI can jump
// straight to the new patient record.
type ConvertLeadResponse struct {
	Lead    *entity.Lead    `json:"lead"`
	Patient *entity.Patient `json:"patient"`
}
