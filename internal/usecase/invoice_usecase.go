package usecase

import (
	"context"
	"encoding/json"
	"errors"
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

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrInvalidInvoiceStatus   = errors.New("invalid invoice status")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrAppointmentRefNotFound = errors.New("referenced appointment not found")
)

func validInvoiceStatus(s string) bool {
	switch s {
	case entity.InvoiceStatusPaid, entity.InvoiceStatusPending, entity.InvoiceStatusOverdue:
		return true
	}
	return false
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCard, entity.PaymentCash, entity.PaymentFinancing, entity.PaymentInsurance:
		return true
	}
	return false
}

type InvoiceUsecase interface {
	List(ctx context.Context, filter *entity.InvoiceFilter) ([]entity.Invoice, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreateInvoiceRequest) (*entity.Invoice, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Invoice, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
}

type invoiceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	invoiceRepo  repository.InvoiceRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:           db,
		log:          log,
		invoiceRepo:  invoiceRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *invoiceUsecase) List(ctx context.Context, filter *entity.InvoiceFilter) ([]entity.Invoice, int64, error) {
	invoices, total, err := u.invoiceRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list invoices: %+v", err)
		return nil, 0, err
	}
	return invoices, total, nil
}

func (u *invoiceUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (u *invoiceUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = entity.PaymentCash
	}
	if !validPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	status := req.Status
	if status == "" {
		status = entity.InvoiceStatusPending
	}
	if !validInvoiceStatus(status) {
		return nil, ErrInvalidInvoiceStatus
	}

	var appointmentID *uuid.UUID
	if req.AppointmentID != nil {
		id, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, ErrAppointmentRefNotFound
		}
		appointmentID = &id
	}

	var siteID *uuid.UUID
	if req.SiteID != nil {
		id, err := uuid.Parse(*req.SiteID)
		if err != nil {
			return nil, ErrSiteNotFound
		}
		siteID = &id
	}

	invoice := &entity.Invoice{
		PatientID:        patientID,
		AppointmentID:    appointmentID,
		SiteID:           siteID,
		Date:             date,
		Amount:           req.Amount,
		PaymentMethod:    paymentMethod,
		Status:           status,
		InsuranceCompany: req.InsuranceCompany,
		InsurancePolicy:  req.InsurancePolicy,
	}

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		if isForeignKeyError(err, "appointment") {
			return nil, ErrAppointmentRefNotFound
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateInvoice, "invoice", &invoice.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return invoice, nil
}

func (u *invoiceUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Invoice, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetDecimal(payload, "amount", "amount"),
		upd.SetString(payload, "insuranceCompany", "insurance_company"),
		upd.SetString(payload, "insurancePolicy", "insurance_policy"),
		upd.SetUUID(payload, "siteId", "site_id"),
	}
	for _, err := range setters {
		if err != nil {
			return nil, ErrInvalidUpdatePayload
		}
	}

	if payload.Has("date") {
		var v *string
		if err := json.Unmarshal(payload["date"], &v); err != nil || v == nil {
			return nil, ErrInvalidUpdatePayload
		}
		d, err := time.Parse("2006-01-02", *v)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		upd.Set("date", d)
	}

	if payload.Has("paymentMethod") {
		var v *string
		if err := json.Unmarshal(payload["paymentMethod"], &v); err != nil || v == nil || !validPaymentMethod(*v) {
			return nil, ErrInvalidPaymentMethod
		}
		upd.Set("payment_method", *v)
	}

	if payload.Has("status") {
		var v *string
		if err := json.Unmarshal(payload["status"], &v); err != nil || v == nil || !validInvoiceStatus(*v) {
			return nil, ErrInvalidInvoiceStatus
		}
		upd.Set("status", *v)
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	invoice, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	if err := u.invoiceRepo.UpdateColumns(tx, id, assignments); err != nil {
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to update invoice: %+v", err)
		return nil, err
	}

	updated, err := u.invoiceRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload invoice: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateInvoice, "invoice", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *invoiceUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.invoiceRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete invoice: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrInvoiceNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteInvoice, "invoice", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
