package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("Site").Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByPhone(db *gorm.DB, phone string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("phone = ?", phone).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Search(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	f := &sqlbuild.Filter{}
	limit := sqlbuild.DefaultLimit
	offset := 0
	if filter != nil {
		f.Search(filter.Search, "first_name", "last_name", "phone", "email")
		f.Equal("lead_status", filter.LeadStatus, entity.SentinelAllMasculine, entity.SentinelAllFeminine)
		f.Equal("site_id", filter.SiteID, entity.SentinelAllMasculine, entity.SentinelAllFeminine)
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	var patients []entity.Patient
	err := applyConditions(db.Model(&entity.Patient{}), f).
		Preload("Site").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyConditions(db.Model(&entity.Patient{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *patientRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Patient{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *patientRepository) AdjustPoints(db *gorm.DB, id uuid.UUID, delta int) error {
	return db.Model(&entity.Patient{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("GREATEST(points + ?, 0)", delta)).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Patient{})
	return affected.RowsAffected, affected.Error
}

func (r *patientRepository) Stats(db *gorm.DB) (*entity.PatientStats, error) {
	var stats entity.PatientStats
	err := db.Model(&entity.Patient{}).
		Select(`COUNT(*) AS total_patients,
			COUNT(*) FILTER (WHERE lead_status = ?) AS new_patients,
			COUNT(*) FILTER (WHERE lead_status = ?) AS converted_patients,
			COALESCE(AVG(points), 0) AS avg_points`,
			entity.LeadStatusNew, entity.LeadStatusConverted).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
