package usecase

import (
	"context"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SiteUsecase interface {
	List(ctx context.Context, activeOnly bool) ([]entity.Site, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Site, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreateSiteRequest) (*entity.Site, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Site, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
}

type siteUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	siteRepo     repository.SiteRepository
	auditService service.AuditService
}

func NewSiteUsecase(db *gorm.DB, log *logrus.Logger, siteRepo repository.SiteRepository, auditService service.AuditService) SiteUsecase {
	return &siteUsecase{
		db:           db,
		log:          log,
		siteRepo:     siteRepo,
		auditService: auditService,
	}
}

func (u *siteUsecase) List(ctx context.Context, activeOnly bool) ([]entity.Site, error) {
	sites, err := u.siteRepo.FindAll(u.db.WithContext(ctx), activeOnly)
	if err != nil {
		u.log.Warnf("Failed to list sites: %+v", err)
		return nil, err
	}
	return sites, nil
}

func (u *siteUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	site, err := u.siteRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find site: %+v", err)
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}
	return site, nil
}

func (u *siteUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreateSiteRequest) (*entity.Site, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	site := &entity.Site{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  req.Active,
	}

	if err := u.siteRepo.Create(tx, site); err != nil {
		u.log.Warnf("Failed to create site: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateSite, "site", &site.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return site, nil
}

func (u *siteUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Site, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "name", "name"),
		upd.SetString(payload, "address", "address"),
		upd.SetString(payload, "phone", "phone"),
		upd.SetBool(payload, "active", "active"),
	}
	for _, err := range setters {
		if err != nil {
			return nil, ErrInvalidUpdatePayload
		}
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	site, err := u.siteRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find site: %+v", err)
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}

	if err := u.siteRepo.UpdateColumns(tx, id, assignments); err != nil {
		u.log.Warnf("Failed to update site: %+v", err)
		return nil, err
	}

	updated, err := u.siteRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload site: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateSite, "site", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *siteUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.siteRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete site: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrSiteNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteSite, "site", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
