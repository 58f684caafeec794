package repository

import (
	"novadent-crm/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindRecentByPatientID feeds the patient detail view, newest first.
	FindRecentByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error)
	List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindConflict looks for a non-cancelled appointment occupying the same
	// (date, time, doctor) slot, optionally excluding one appointment (used
	// when rescheduling).
	FindConflict(db *gorm.DB, date, timeOfDay string, doctorID uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error)
	UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	Stats(db *gorm.DB) (*entity.AppointmentStats, error)
}
