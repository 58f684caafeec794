package entity

import (
	"time"

	"github.com/google/uuid"
)

// Appointment lifecycle statuses.
const (
	AppointmentStatusConfirmed = "Confirmada"
	AppointmentStatusPending   = "Pendiente"
	AppointmentStatusCompleted = "Completada"
	AppointmentStatusCancelled = "Cancelada"
)

// ValidAppointmentStatus reports whether s is a known lifecycle status.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusConfirmed, AppointmentStatusPending,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment references exactly one patient and optionally a doctor and a
// site. The (date, time, doctor) triple is unique among non-cancelled rows;
// the usecase enforces this with a conflict check before insert.
type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	SiteID    *uuid.UUID `gorm:"type:uuid;index" json:"site_id,omitempty"`
	Date      time.Time  `gorm:"type:date;not null;index" json:"date"`
	Time      string     `gorm:"type:varchar(8);not null" json:"time"`
	Treatment *string    `gorm:"type:varchar(200)" json:"treatment,omitempty"`
	Status    string     `gorm:"type:varchar(20);not null;default:'Pendiente';index" json:"status"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Site    *Site    `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled reports whether the appointment no longer occupies its slot.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
