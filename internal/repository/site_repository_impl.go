package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type siteRepository struct{}

func NewSiteRepository() domainRepo.SiteRepository {
	return &siteRepository{}
}

func (r *siteRepository) Create(db *gorm.DB, site *entity.Site) error {
	return db.Create(site).Error
}

func (r *siteRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Site, error) {
	var site entity.Site
	err := db.Where("id = ?", id).First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) FindAll(db *gorm.DB, activeOnly bool) ([]entity.Site, error) {
	q := db.Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var sites []entity.Site
	if err := q.Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Site{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *siteRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Site{})
	return affected.RowsAffected, affected.Error
}
