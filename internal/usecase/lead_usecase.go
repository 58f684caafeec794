package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"novadent-crm/internal/converter"
	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrLeadAlreadyConverted = errors.New("lead has already been converted")
	ErrCampaignNotFound     = errors.New("campaign not found")
)

type LeadUsecase interface {
	List(ctx context.Context, filter *entity.LeadFilter) ([]entity.Lead, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Lead, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreateLeadRequest) (*entity.Lead, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Lead, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
	// Convert creates a patient from the lead, marks the lead Convertido
	// and credits the originating campaign, all in one transaction.
	Convert(ctx context.Context, actor service.Actor, id uuid.UUID) (*dto.ConvertLeadResponse, error)
}

type leadUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	leadRepo     repository.LeadRepository
	patientRepo  repository.PatientRepository
	campaignRepo repository.CampaignRepository
	auditService service.AuditService
}

func NewLeadUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	leadRepo repository.LeadRepository,
	patientRepo repository.PatientRepository,
	campaignRepo repository.CampaignRepository,
	auditService service.AuditService,
) LeadUsecase {
	return &leadUsecase{
		db:           db,
		log:          log,
		leadRepo:     leadRepo,
		patientRepo:  patientRepo,
		campaignRepo: campaignRepo,
		auditService: auditService,
	}
}

func (u *leadUsecase) List(ctx context.Context, filter *entity.LeadFilter) ([]entity.Lead, int64, error) {
	leads, total, err := u.leadRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list leads: %+v", err)
		return nil, 0, err
	}
	return leads, total, nil
}

func (u *leadUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Lead, error) {
	lead, err := u.leadRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find lead: %+v", err)
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (u *leadUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreateLeadRequest) (*entity.Lead, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	status := req.Status
	if status == "" {
		status = entity.LeadStatusNew
	}
	if !entity.ValidLeadStatus(status) {
		return nil, ErrInvalidLeadStatus
	}

	var siteID *uuid.UUID
	if req.SiteID != nil {
		id, err := uuid.Parse(*req.SiteID)
		if err != nil {
			return nil, ErrSiteNotFound
		}
		siteID = &id
	}

	var campaignID *uuid.UUID
	if req.CampaignID != nil {
		id, err := uuid.Parse(*req.CampaignID)
		if err != nil {
			return nil, ErrCampaignNotFound
		}
		campaign, err := u.campaignRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find campaign: %+v", err)
			return nil, err
		}
		if campaign == nil {
			return nil, ErrCampaignNotFound
		}
		campaignID = &id
	}

	lead := &entity.Lead{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Source:     req.Source,
		Status:     status,
		SiteID:     siteID,
		CampaignID: campaignID,
		Notes:      req.Notes,
	}

	if err := u.leadRepo.Create(tx, lead); err != nil {
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to create lead: %+v", err)
		return nil, err
	}

	if campaignID != nil {
		if err := u.campaignRepo.IncrementLeads(tx, *campaignID); err != nil {
			u.log.Warnf("Failed to increment campaign leads: %+v", err)
			return nil, err
		}
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateLead, "lead", &lead.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return lead, nil
}

func (u *leadUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Lead, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "name", "name"),
		upd.SetString(payload, "phone", "phone"),
		upd.SetString(payload, "email", "email"),
		upd.SetString(payload, "source", "source"),
		upd.SetString(payload, "notes", "notes"),
		upd.SetUUID(payload, "siteId", "site_id"),
		upd.SetUUID(payload, "campaignId", "campaign_id"),
	}
	for _, err := range setters {
		if err != nil {
			return nil, ErrInvalidUpdatePayload
		}
	}

	if payload.Has("status") {
		var v *string
		if err := json.Unmarshal(payload["status"], &v); err != nil || v == nil || !entity.ValidLeadStatus(*v) {
			return nil, ErrInvalidLeadStatus
		}
		upd.Set("status", *v)
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	lead, err := u.leadRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find lead: %+v", err)
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if err := u.leadRepo.UpdateColumns(tx, id, assignments); err != nil {
		if isForeignKeyError(err, "campaign") {
			return nil, ErrCampaignNotFound
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to update lead: %+v", err)
		return nil, err
	}

	updated, err := u.leadRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload lead: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateLead, "lead", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *leadUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.leadRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete lead: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrLeadNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteLead, "lead", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *leadUsecase) Convert(ctx context.Context, actor service.Actor, id uuid.UUID) (*dto.ConvertLeadResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	lead, err := u.leadRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find lead: %+v", err)
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	if lead.Status == entity.LeadStatusConverted {
		return nil, ErrLeadAlreadyConverted
	}

	existing, err := u.patientRepo.FindByPhone(tx, lead.Phone)
	if err != nil {
		u.log.Warnf("Failed to check phone uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneAlreadyExists
	}

	patient := converter.LeadToPatient(lead)
	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		u.log.Warnf("Failed to create patient from lead: %+v", err)
		return nil, err
	}

	if err := u.leadRepo.UpdateColumns(tx, id, map[string]interface{}{"status": entity.LeadStatusConverted}); err != nil {
		u.log.Warnf("Failed to mark lead converted: %+v", err)
		return nil, err
	}

	if lead.CampaignID != nil {
		if err := u.campaignRepo.IncrementConversions(tx, *lead.CampaignID); err != nil {
			u.log.Warnf("Failed to increment campaign conversions: %+v", err)
			return nil, err
		}
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionConvertLead, "lead", &id)
	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreatePatient, "patient", &patient.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	lead.Status = entity.LeadStatusConverted
	return &dto.ConvertLeadResponse{
		Lead:    lead,
		Patient: patient,
	}, nil
}
