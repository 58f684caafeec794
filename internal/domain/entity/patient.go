package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lead funnel stages. The UI sends these values verbatim, including the
// "Todos"/"Todas" sentinels that mean "no filter".
const (
	LeadStatusNew        = "Nuevo"
	LeadStatusContacted  = "Contactado"
	LeadStatusFollowUp   = "En seguimiento"
	LeadStatusConverted  = "Convertido"
	SentinelAllMasculine = "Todos"
	SentinelAllFeminine  = "Todas"
)

// ValidLeadStatus reports whether s is one of the funnel stages.
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusFollowUp, LeadStatusConverted:
		return true
	}
	return false
}

// Communication preference values.
const (
	CommWhatsapp = "whatsapp"
	CommEmail    = "email"
	CommSMS      = "sms"
)

// Patient is the central CRM record: identity, contact data, funnel stage and
// a running loyalty points balance. Phone numbers are unique across patients.
type Patient struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName               string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName                string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone                   string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Email                   *string    `gorm:"type:varchar(150);index" json:"email,omitempty"`
	BirthDate               *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Address                 *string    `gorm:"type:text" json:"address,omitempty"`
	MedicalHistory          *string    `gorm:"type:text" json:"medical_history,omitempty"`
	CommunicationPreference string     `gorm:"type:varchar(20);not null;default:'whatsapp'" json:"communication_preference"`
	ReferralSource          *string    `gorm:"type:varchar(100)" json:"referral_source,omitempty"`
	LeadStatus              string     `gorm:"type:varchar(30);not null;default:'Nuevo';index" json:"lead_status"`
	Points                  int        `gorm:"not null;default:0" json:"points"`
	SiteID                  *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	CreatedAt               time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Site *Site `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName joins first and last name for display fields.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
