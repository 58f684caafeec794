package usecase

import (
	"context"

	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	List(ctx context.Context, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	logs, total, err := u.auditLogRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, 0, err
	}
	return logs, total, nil
}
