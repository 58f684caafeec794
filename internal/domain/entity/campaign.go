package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign is a marketing campaign; leads reference it and conversions are
// bumped when a referred lead becomes a patient.
type Campaign struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string           `gorm:"type:varchar(200);not null" json:"name"`
	Platform       *string          `gorm:"type:varchar(100)" json:"platform,omitempty"`
	StartDate      time.Time        `gorm:"type:date;not null;index" json:"start_date"`
	EndDate        *time.Time       `gorm:"type:date" json:"end_date,omitempty"`
	Budget         *decimal.Decimal `gorm:"type:decimal(10,2)" json:"budget,omitempty"`
	LeadsGenerated int              `gorm:"not null;default:0" json:"leads_generated"`
	Conversions    int              `gorm:"not null;default:0" json:"conversions"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
