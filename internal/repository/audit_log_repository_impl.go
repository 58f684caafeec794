package repository

import (
	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"
	"novadent-crm/pkg/sqlbuild"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) List(db *gorm.DB, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	f := &sqlbuild.Filter{}
	limit := sqlbuild.DefaultLimit
	offset := 0
	if filter != nil {
		f.Equal("user_id", filter.UserID)
		f.Equal("entity_type", filter.EntityType)
		f.From("created_at::date", filter.StartDate)
		f.Until("created_at::date", filter.EndDate)
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	var logs []entity.AuditLog
	err := applyConditions(db.Model(&entity.AuditLog{}), f).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyConditions(db.Model(&entity.AuditLog{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
