package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyPoint is a single loyalty event. Points is a signed delta; the
// patient's running balance is adjusted in the same transaction and never
// drops below zero.
type LoyaltyPoint struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Type      string    `gorm:"type:varchar(100);not null" json:"type"`
	Points    int       `gorm:"not null" json:"points"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LoyaltyPoint) TableName() string {
	return "loyalty_points"
}
