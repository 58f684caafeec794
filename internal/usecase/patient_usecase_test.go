package usecase

import (
	"context"
	"testing"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type loyaltyRepoMock struct {
	createFn          func(db *gorm.DB, point *entity.LoyaltyPoint) error
	findByPatientIDFn func(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.LoyaltyPoint, error)
}

func (m *loyaltyRepoMock) Create(db *gorm.DB, point *entity.LoyaltyPoint) error {
	return m.createFn(db, point)
}

func (m *loyaltyRepoMock) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.LoyaltyPoint, error) {
	return m.findByPatientIDFn(db, patientID, limit)
}

type odontogramRepoMock struct {
	createFn          func(db *gorm.DB, odontogram *entity.Odontogram) error
	findByPatientIDFn func(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Odontogram, error)
}

func (m *odontogramRepoMock) Create(db *gorm.DB, odontogram *entity.Odontogram) error {
	return m.createFn(db, odontogram)
}

func (m *odontogramRepoMock) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Odontogram, error) {
	return m.findByPatientIDFn(db, patientID, limit)
}

func TestPatientUsecaseAddLoyaltyPoints(t *testing.T) {
	t.Run("redemption delta reaches the balance untouched", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		patientID := uuid.New()
		balance := 100
		var appliedDelta int

		patientRepo := &patientRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
				return &entity.Patient{ID: id, FirstName: "Ana", Phone: "5511223344", Points: balance}, nil
			},
			// Flooring lives in the UPDATE itself; the usecase must not
			// pre-clamp the delta.
			adjustPointsFn: func(db *gorm.DB, id uuid.UUID, delta int) error {
				appliedDelta = delta
				if balance += delta; balance < 0 {
					balance = 0
				}
				return nil
			},
		}
		loyaltyRepo := &loyaltyRepoMock{
			createFn: func(db *gorm.DB, point *entity.LoyaltyPoint) error {
				point.ID = uuid.New()
				return nil
			},
		}
		audit := &auditServiceMock{}
		u := NewPatientUsecase(db, newTestLogger(), patientRepo, &appointmentRepoMock{}, loyaltyRepo, &odontogramRepoMock{}, audit)

		point, patient, err := u.AddLoyaltyPoints(context.Background(), service.Actor{}, patientID, &dto.AddLoyaltyPointsRequest{
			Type:   "Canje limpieza",
			Points: -500,
		})

		require.NoError(t, err)
		assert.Equal(t, -500, appliedDelta)
		assert.Equal(t, -500, point.Points)
		assert.Equal(t, 0, patient.Points)
		assert.Contains(t, audit.actions, entity.AuditActionAddLoyaltyPoints)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("earned points raise the balance", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		balance := 30
		patientRepo := &patientRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
				return &entity.Patient{ID: id, FirstName: "Ana", Phone: "5511223344", Points: balance}, nil
			},
			adjustPointsFn: func(db *gorm.DB, id uuid.UUID, delta int) error {
				balance += delta
				return nil
			},
		}
		loyaltyRepo := &loyaltyRepoMock{
			createFn: func(db *gorm.DB, point *entity.LoyaltyPoint) error {
				return nil
			},
		}
		u := NewPatientUsecase(db, newTestLogger(), patientRepo, &appointmentRepoMock{}, loyaltyRepo, &odontogramRepoMock{}, &auditServiceMock{})

		_, patient, err := u.AddLoyaltyPoints(context.Background(), service.Actor{}, uuid.New(), &dto.AddLoyaltyPointsRequest{
			Type:   "Visita completada",
			Points: 20,
		})

		require.NoError(t, err)
		assert.Equal(t, 50, patient.Points)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown patient", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		patientRepo := &patientRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
				return nil, nil
			},
		}
		u := NewPatientUsecase(db, newTestLogger(), patientRepo, &appointmentRepoMock{}, &loyaltyRepoMock{}, &odontogramRepoMock{}, &auditServiceMock{})

		_, _, err := u.AddLoyaltyPoints(context.Background(), service.Actor{}, uuid.New(), &dto.AddLoyaltyPointsRequest{
			Type:   "Visita completada",
			Points: 20,
		})

		assert.ErrorIs(t, err, ErrPatientNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
