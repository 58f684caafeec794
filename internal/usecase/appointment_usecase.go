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
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrAppointmentConflict      = errors.New("the doctor already has an appointment at that date and time")
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status")
	ErrDoctorNotFound           = errors.New("doctor not found")
)

type AppointmentUsecase interface {
	List(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Appointment, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
	Stats(ctx context.Context) (*entity.AppointmentStats, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	appointments, err := u.appointmentRepo.List(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return appointments, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
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

	status := req.Status
	if status == "" {
		status = entity.AppointmentStatusPending
	}
	if !entity.ValidAppointmentStatus(status) {
		return nil, ErrInvalidAppointmentStatus
	}

	var doctorID *uuid.UUID
	if req.DoctorID != nil {
		id, err := uuid.Parse(*req.DoctorID)
		if err != nil {
			return nil, ErrDoctorNotFound
		}
		doctorID = &id
	}

	var siteID *uuid.UUID
	if req.SiteID != nil {
		id, err := uuid.Parse(*req.SiteID)
		if err != nil {
			return nil, ErrSiteNotFound
		}
		siteID = &id
	}

	// A doctor holds one slot per (date, time); cancelled rows free theirs.
	if doctorID != nil && status != entity.AppointmentStatusCancelled {
		conflict, err := u.appointmentRepo.FindConflict(tx, req.Date, req.Time, *doctorID, nil)
		if err != nil {
			u.log.Warnf("Failed to check appointment conflict: %+v", err)
			return nil, err
		}
		if conflict != nil {
			return nil, ErrAppointmentConflict
		}
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		SiteID:    siteID,
		Date:      date,
		Time:      req.Time,
		Treatment: req.Treatment,
		Status:    status,
		Notes:     req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateAppointment, "appointment", &appointment.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return appointment, nil
}

func (u *appointmentUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Appointment, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "time", "time"),
		upd.SetString(payload, "treatment", "treatment"),
		upd.SetString(payload, "notes", "notes"),
		upd.SetUUID(payload, "doctorId", "doctor_id"),
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

	if payload.Has("status") {
		var v *string
		if err := json.Unmarshal(payload["status"], &v); err != nil || v == nil || !entity.ValidAppointmentStatus(*v) {
			return nil, ErrInvalidAppointmentStatus
		}
		upd.Set("status", *v)
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// Re-check the slot with the prospective values: any of date, time or
	// doctor may be moving.
	date := appointment.Date.Format("2006-01-02")
	timeOfDay := appointment.Time
	doctorID := appointment.DoctorID
	status := appointment.Status
	if v, ok := assignments["date"]; ok {
		date = v.(time.Time).Format("2006-01-02")
	}
	if v, ok := assignments["time"]; ok {
		timeOfDay = v.(string)
	}
	if v, ok := assignments["doctor_id"]; ok {
		if v == nil {
			doctorID = nil
		} else {
			d := v.(uuid.UUID)
			doctorID = &d
		}
	}
	if v, ok := assignments["status"]; ok {
		status = v.(string)
	}

	if doctorID != nil && status != entity.AppointmentStatusCancelled {
		conflict, err := u.appointmentRepo.FindConflict(tx, date, timeOfDay, *doctorID, &id)
		if err != nil {
			u.log.Warnf("Failed to check appointment conflict: %+v", err)
			return nil, err
		}
		if conflict != nil {
			return nil, ErrAppointmentConflict
		}
	}

	if err := u.appointmentRepo.UpdateColumns(tx, id, assignments); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	updated, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateAppointment, "appointment", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteAppointment, "appointment", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *appointmentUsecase) Stats(ctx context.Context) (*entity.AppointmentStats, error) {
	stats, err := u.appointmentRepo.Stats(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to compute appointment stats: %+v", err)
		return nil, err
	}
	return stats, nil
}
