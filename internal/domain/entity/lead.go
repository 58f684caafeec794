package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a marketing prospect. Converting one creates a Patient and marks
// the lead Convertido; leads share the patient funnel enumeration.
type Lead struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string     `gorm:"type:varchar(200);not null" json:"name"`
	Phone      string     `gorm:"type:varchar(20);not null" json:"phone"`
	Email      *string    `gorm:"type:varchar(150)" json:"email,omitempty"`
	Source     *string    `gorm:"type:varchar(100);index" json:"source,omitempty"`
	Status     string     `gorm:"type:varchar(30);not null;default:'Nuevo';index" json:"status"`
	SiteID     *uuid.UUID `gorm:"type:uuid" json:"site_id,omitempty"`
	CampaignID *uuid.UUID `gorm:"type:uuid" json:"campaign_id,omitempty"`
	Notes      *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	Site     *Site     `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (Lead) TableName() string {
	return "leads"
}
