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
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPhoneAlreadyExists = errors.New("a patient with this phone already exists")
	ErrInvalidLeadStatus  = errors.New("invalid lead status")
	ErrSiteNotFound       = errors.New("site not found")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")

	// ErrInvalidUpdatePayload covers malformed field values in partial
	// update bodies, shared by every entity usecase.
	ErrInvalidUpdatePayload = errors.New("invalid update payload")
)

const (
	recentAppointmentsLimit = 10
	recentLoyaltyLimit      = 10
	recentOdontogramsLimit  = 5
)

type PatientUsecase interface {
	List(ctx context.Context, filter *entity.PatientFilter) ([]entity.Patient, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PatientDetailResponse, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreatePatientRequest) (*entity.Patient, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Patient, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
	Stats(ctx context.Context) (*entity.PatientStats, error)

	AddLoyaltyPoints(ctx context.Context, actor service.Actor, patientID uuid.UUID, req *dto.AddLoyaltyPointsRequest) (*entity.LoyaltyPoint, *entity.Patient, error)
	ListLoyaltyPoints(ctx context.Context, patientID uuid.UUID) ([]entity.LoyaltyPoint, error)
	CreateOdontogram(ctx context.Context, actor service.Actor, patientID uuid.UUID, req *dto.CreateOdontogramRequest) (*entity.Odontogram, error)
	ListOdontograms(ctx context.Context, patientID uuid.UUID) ([]entity.Odontogram, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	loyaltyRepo     repository.LoyaltyPointRepository
	odontogramRepo  repository.OdontogramRepository
	auditService    service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	loyaltyRepo repository.LoyaltyPointRepository,
	odontogramRepo repository.OdontogramRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		loyaltyRepo:     loyaltyRepo,
		odontogramRepo:  odontogramRepo,
		auditService:    auditService,
	}
}

func (u *patientUsecase) List(ctx context.Context, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	patients, total, err := u.patientRepo.Search(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}
	return patients, total, nil
}

func (u *patientUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PatientDetailResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindRecentByPatientID(db, id, recentAppointmentsLimit)
	if err != nil {
		u.log.Warnf("Failed to load patient appointments: %+v", err)
		return nil, err
	}

	points, err := u.loyaltyRepo.FindByPatientID(db, id, recentLoyaltyLimit)
	if err != nil {
		u.log.Warnf("Failed to load loyalty points: %+v", err)
		return nil, err
	}

	odontograms, err := u.odontogramRepo.FindByPatientID(db, id, recentOdontogramsLimit)
	if err != nil {
		u.log.Warnf("Failed to load odontograms: %+v", err)
		return nil, err
	}

	return &dto.PatientDetailResponse{
		Patient:       patient,
		Appointments:  appointments,
		LoyaltyPoints: points,
		Odontograms:   odontograms,
	}, nil
}

func (u *patientUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreatePatientRequest) (*entity.Patient, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	leadStatus := req.LeadStatus
	if leadStatus == "" {
		leadStatus = entity.LeadStatusNew
	}
	if !entity.ValidLeadStatus(leadStatus) {
		return nil, ErrInvalidLeadStatus
	}

	var birthDate *time.Time
	if req.BirthDate != nil {
		d, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		birthDate = &d
	}

	var siteID *uuid.UUID
	if req.SiteID != nil {
		id, err := uuid.Parse(*req.SiteID)
		if err != nil {
			return nil, ErrSiteNotFound
		}
		siteID = &id
	}

	existing, err := u.patientRepo.FindByPhone(tx, req.Phone)
	if err != nil {
		u.log.Warnf("Failed to check phone uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneAlreadyExists
	}

	commPref := req.CommunicationPreference
	if commPref == "" {
		commPref = entity.CommWhatsapp
	}

	patient := &entity.Patient{
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Phone:                   req.Phone,
		Email:                   req.Email,
		BirthDate:               birthDate,
		Address:                 req.Address,
		MedicalHistory:          req.MedicalHistory,
		CommunicationPreference: commPref,
		ReferralSource:          req.ReferralSource,
		LeadStatus:              leadStatus,
		Points:                  req.Points,
		SiteID:                  siteID,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreatePatient, "patient", &patient.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return patient, nil
}

func (u *patientUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Patient, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "firstName", "first_name"),
		upd.SetString(payload, "lastName", "last_name"),
		upd.SetString(payload, "phone", "phone"),
		upd.SetString(payload, "email", "email"),
		upd.SetString(payload, "address", "address"),
		upd.SetString(payload, "medicalHistory", "medical_history"),
		upd.SetString(payload, "communicationPreference", "communication_preference"),
		upd.SetString(payload, "referralSource", "referral_source"),
		upd.SetInt(payload, "points", "points"),
		upd.SetUUID(payload, "siteId", "site_id"),
	}
	for _, err := range setters {
		if err != nil {
			return nil, ErrInvalidUpdatePayload
		}
	}

	if payload.Has("birthDate") {
		var v *string
		if err := json.Unmarshal(payload["birthDate"], &v); err != nil {
			return nil, ErrInvalidUpdatePayload
		}
		if v == nil {
			upd.Set("birth_date", nil)
		} else {
			d, err := time.Parse("2006-01-02", *v)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			upd.Set("birth_date", d)
		}
	}

	if payload.Has("leadStatus") {
		var v *string
		if err := json.Unmarshal(payload["leadStatus"], &v); err != nil || v == nil || !entity.ValidLeadStatus(*v) {
			return nil, ErrInvalidLeadStatus
		}
		upd.Set("lead_status", *v)
	}

	assignments, err := upd.Assignments()
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.patientRepo.UpdateColumns(tx, id, assignments); err != nil {
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		if isForeignKeyError(err, "site") {
			return nil, ErrSiteNotFound
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	updated, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload patient: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdatePatient, "patient", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *patientUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeletePatient, "patient", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *patientUsecase) Stats(ctx context.Context) (*entity.PatientStats, error) {
	stats, err := u.patientRepo.Stats(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to compute patient stats: %+v", err)
		return nil, err
	}
	return stats, nil
}

func (u *patientUsecase) AddLoyaltyPoints(ctx context.Context, actor service.Actor, patientID uuid.UUID, req *dto.AddLoyaltyPointsRequest) (*entity.LoyaltyPoint, *entity.Patient, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, nil, err
	}
	if patient == nil {
		return nil, nil, ErrPatientNotFound
	}

	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, nil, ErrInvalidDateFormat
		}
		date = d
	}

	point := &entity.LoyaltyPoint{
		PatientID: patientID,
		Type:      req.Type,
		Points:    req.Points,
		Date:      date,
		Metadata:  entity.JSON(req.Metadata),
		Verified:  req.Verified,
	}

	if err := u.loyaltyRepo.Create(tx, point); err != nil {
		u.log.Warnf("Failed to create loyalty point: %+v", err)
		return nil, nil, err
	}

	// The running balance floors at zero even when the delta is a larger
	// redemption.
	if err := u.patientRepo.AdjustPoints(tx, patientID, req.Points); err != nil {
		u.log.Warnf("Failed to adjust patient points: %+v", err)
		return nil, nil, err
	}

	updated, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to reload patient: %+v", err)
		return nil, nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionAddLoyaltyPoints, "patient", &patientID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	return point, updated, nil
}

func (u *patientUsecase) ListLoyaltyPoints(ctx context.Context, patientID uuid.UUID) ([]entity.LoyaltyPoint, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return u.loyaltyRepo.FindByPatientID(db, patientID, sqlbuild.DefaultLimit)
}

func (u *patientUsecase) CreateOdontogram(ctx context.Context, actor service.Actor, patientID uuid.UUID, req *dto.CreateOdontogramRequest) (*entity.Odontogram, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		date = d
	}

	odontogram := &entity.Odontogram{
		PatientID: patientID,
		Date:      date,
		Data:      entity.JSON(req.Data),
		Notes:     req.Notes,
	}

	if err := u.odontogramRepo.Create(tx, odontogram); err != nil {
		u.log.Warnf("Failed to create odontogram: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateOdontogram, "odontogram", &odontogram.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return odontogram, nil
}

func (u *patientUsecase) ListOdontograms(ctx context.Context, patientID uuid.UUID) ([]entity.Odontogram, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return u.odontogramRepo.FindByPatientID(db, patientID, sqlbuild.DefaultLimit)
}
