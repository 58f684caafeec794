package usecase

import (
	"context"
	"encoding/json"
	"time"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CampaignUsecase interface {
	List(ctx context.Context) ([]entity.Campaign, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreateCampaignRequest) (*entity.Campaign, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Campaign, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
}

type campaignUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	campaignRepo repository.CampaignRepository
	auditService service.AuditService
}

func NewCampaignUsecase(db *gorm.DB, log *logrus.Logger, campaignRepo repository.CampaignRepository, auditService service.AuditService) CampaignUsecase {
	return &campaignUsecase{
		db:           db,
		log:          log,
		campaignRepo: campaignRepo,
		auditService: auditService,
	}
}

func (u *campaignUsecase) List(ctx context.Context) ([]entity.Campaign, error) {
	campaigns, err := u.campaignRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list campaigns: %+v", err)
		return nil, err
	}
	return campaigns, nil
}

func (u *campaignUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := u.campaignRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find campaign: %+v", err)
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (u *campaignUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreateCampaignRequest) (*entity.Campaign, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	var endDate *time.Time
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		endDate = &d
	}

	campaign := &entity.Campaign{
		Name:      req.Name,
		Platform:  req.Platform,
		StartDate: startDate,
		EndDate:   endDate,
		Budget:    req.Budget,
	}

	if err := u.campaignRepo.Create(tx, campaign); err != nil {
		u.log.Warnf("Failed to create campaign: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateCampaign, "campaign", &campaign.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return campaign, nil
}

func (u *campaignUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Campaign, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "name", "name"),
		upd.SetString(payload, "platform", "platform"),
		upd.SetDecimal(payload, "budget", "budget"),
	}
	for _, err := range setters {
		if err != nil {
			return nil, ErrInvalidUpdatePayload
		}
	}

	dateFields := []struct{ key, column string }{
		{"startDate", "start_date"},
		{"endDate", "end_date"},
	}
	for _, f := range dateFields {
		if !payload.Has(f.key) {
			continue
		}
		var v *string
		if err := json.Unmarshal(payload[f.key], &v); err != nil {
			return nil, ErrInvalidUpdatePayload
		}
		if v == nil {
			upd.Set(f.column, nil)
			continue
		}
		d, err := time.Parse("2006-01-02", *v)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		upd.Set(f.column, d)
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	campaign, err := u.campaignRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find campaign: %+v", err)
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if err := u.campaignRepo.UpdateColumns(tx, id, assignments); err != nil {
		u.log.Warnf("Failed to update campaign: %+v", err)
		return nil, err
	}

	updated, err := u.campaignRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload campaign: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateCampaign, "campaign", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *campaignUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.campaignRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete campaign: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrCampaignNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteCampaign, "campaign", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
