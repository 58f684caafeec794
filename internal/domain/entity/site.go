package entity

import (
	"time"

	"github.com/google/uuid"
)

// Site is a clinic location. Patients, appointments, invoices and inventory
// are scoped to a site; deleting a site degrades those references to null.
type Site struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Active    *bool     `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Site) TableName() string {
	return "sites"
}
