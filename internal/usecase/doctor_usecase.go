package usecase

import (
	"context"
	"errors"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorEmailExists = errors.New("a doctor with this email already exists")

type DoctorUsecase interface {
	List(ctx context.Context, activeOnly bool) ([]entity.Doctor, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	Create(ctx context.Context, actor service.Actor, req *dto.CreateDoctorRequest) (*entity.Doctor, error)
	Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Doctor, error)
	Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository, auditService service.AuditService) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) List(ctx context.Context, activeOnly bool) ([]entity.Doctor, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), activeOnly)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return doctors, nil
}

func (u *doctorUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *doctorUsecase) Create(ctx context.Context, actor service.Actor, req *dto.CreateDoctorRequest) (*entity.Doctor, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor := &entity.Doctor{
		Name:      req.Name,
		Specialty: req.Specialty,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    req.Active,
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionCreateDoctor, "doctor", &doctor.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return doctor, nil
}

func (u *doctorUsecase) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Doctor, error) {
	upd := &sqlbuild.Update{}

	setters := []error{
		upd.SetString(payload, "name", "name"),
		upd.SetString(payload, "specialty", "specialty"),
		upd.SetString(payload, "email", "email"),
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

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.doctorRepo.UpdateColumns(tx, id, assignments); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	updated, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to reload doctor: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionUpdateDoctor, "doctor", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return updated, nil
}

func (u *doctorUsecase) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.doctorRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionDeleteDoctor, "doctor", &id)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
