package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Patient").Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(db *gorm.DB, filter *entity.InvoiceFilter) ([]entity.Invoice, int64, error) {
	f := &sqlbuild.Filter{}
	limit := sqlbuild.DefaultLimit
	offset := 0
	if filter != nil {
		f.Equal("status", filter.Status, entity.SentinelAllFeminine, entity.SentinelAllMasculine)
		f.Equal("site_id", filter.SiteID, entity.SentinelAllFeminine, entity.SentinelAllMasculine)
		f.Equal("patient_id", filter.PatientID)
		f.From("date", filter.StartDate)
		f.Until("date", filter.EndDate)
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	var invoices []entity.Invoice
	err := applyConditions(db.Model(&entity.Invoice{}), f).
		Preload("Patient").
		Order("date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := applyConditions(db.Model(&entity.Invoice{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Invoice{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *invoiceRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Invoice{})
	return affected.RowsAffected, affected.Error
}
