package repository

import (
	"novadent-crm/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	List(db *gorm.DB, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error)
}
