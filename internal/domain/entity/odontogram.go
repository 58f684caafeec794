package entity

import (
	"time"

	"github.com/google/uuid"
)

// Odontogram is a dated dental chart snapshot for a patient. The chart itself
// is opaque JSON produced by the frontend.
type Odontogram struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	Data      JSON      `gorm:"type:jsonb;not null" json:"data"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Odontogram) TableName() string {
	return "odontograms"
}
