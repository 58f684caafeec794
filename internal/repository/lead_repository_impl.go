package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type leadRepository struct{}

func NewLeadRepository() domainRepo.LeadRepository {
	return &leadRepository{}
}

func (r *leadRepository) Create(db *gorm.DB, lead *entity.Lead) error {
	return db.Create(lead).Error
}

func (r *leadRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Lead, error) {
	var lead entity.Lead
	err := db.Preload("Campaign").Preload("Site").Where("id = ?", id).First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(db *gorm.DB, filter *entity.LeadFilter) ([]entity.Lead, int64, error) {
	f := &sqlbuild.Filter{}
	limit := sqlbuild.DefaultLimit
	offset := 0
	if filter != nil {
		f.Search(filter.Search, "name", "phone", "email")
		f.Equal("status", filter.Status, entity.SentinelAllMasculine, entity.SentinelAllFeminine)
		f.Equal("site_id", filter.SiteID, entity.SentinelAllFeminine, entity.SentinelAllMasculine)
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	var leads []entity.Lead
	err := applyConditions(db.Model(&entity.Lead{}), f).
		Preload("Campaign").
		Preload("Site").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyConditions(db.Model(&entity.Lead{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *leadRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Lead{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *leadRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Lead{})
	return affected.RowsAffected, affected.Error
}
