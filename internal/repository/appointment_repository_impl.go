package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Preload("Site").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindRecentByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	f := &sqlbuild.Filter{}
	limit := sqlbuild.DefaultLimit
	if filter != nil {
		f.From("date", filter.StartDate)
		f.Until("date", filter.EndDate)
		f.Equal("status", filter.Status, entity.SentinelAllFeminine, entity.SentinelAllMasculine)
		f.Equal("doctor_id", filter.DoctorID, entity.SentinelAllMasculine, entity.SentinelAllFeminine)
		f.Equal("site_id", filter.SiteID, entity.SentinelAllFeminine, entity.SentinelAllMasculine)
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}

	var appointments []entity.Appointment
	err := applyConditions(db.Model(&entity.Appointment{}), f).
		Preload("Patient").Preload("Doctor").Preload("Site").
		Order("date DESC, time DESC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindConflict(db *gorm.DB, date, timeOfDay string, doctorID uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
	q := db.Where("date = ? AND time = ? AND doctor_id = ? AND status <> ?",
		date, timeOfDay, doctorID, entity.AppointmentStatusCancelled)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var appointment entity.Appointment
	err := q.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Appointment{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}

func (r *appointmentRepository) Stats(db *gorm.DB) (*entity.AppointmentStats, error) {
	var stats entity.AppointmentStats
	err := db.Model(&entity.Appointment{}).
		Select(`COUNT(*) AS total_appointments,
			COUNT(*) FILTER (WHERE status = ?) AS confirmed,
			COUNT(*) FILTER (WHERE status = ?) AS pending,
			COUNT(*) FILTER (WHERE status = ?) AS completed,
			COUNT(*) FILTER (WHERE date = CURRENT_DATE) AS today`,
			entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusPending,
			entity.AppointmentStatusCompleted).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
