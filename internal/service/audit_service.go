package service

import (
	"context"

	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Actor identifies who performed a mutating request. Handlers build it from
// the authenticated context and the request headers.
type Actor struct {
	UserID    *uuid.UUID
	IPAddress string
	UserAgent string
}

type AuditService interface {
	// Log appends an audit row inside the caller's transaction. A failed
	// append is logged but never fails the business operation.
	Log(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityType string, entityID *uuid.UUID)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Log(ctx context.Context, tx *gorm.DB, actor Actor, action string, entityType string, entityID *uuid.UUID) {
	auditLog := &entity.AuditLog{
		UserID:   actor.UserID,
		Action:   action,
		EntityID: entityID,
	}
	if entityType != "" {
		auditLog.EntityType = &entityType
	}
	if actor.IPAddress != "" {
		auditLog.IPAddress = &actor.IPAddress
	}
	if actor.UserAgent != "" {
		auditLog.UserAgent = &actor.UserAgent
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for action %s: %+v", action, err)
	}
}
