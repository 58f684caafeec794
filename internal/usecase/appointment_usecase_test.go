package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/sqlbuild"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAppointmentUsecaseCreateSlotCheck(t *testing.T) {
	t.Run("occupied doctor slot is rejected", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		patientID := uuid.New()
		doctorID := uuid.New()

		patientRepo := &patientRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
				return &entity.Patient{ID: id, FirstName: "Ana", Phone: "5511223344"}, nil
			},
		}
		appointmentRepo := &appointmentRepoMock{
			findConflictFn: func(db *gorm.DB, date, timeOfDay string, id uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
				assert.Equal(t, "2026-03-10", date)
				assert.Equal(t, "10:00", timeOfDay)
				assert.Equal(t, doctorID, id)
				assert.Nil(t, excludeID)
				return &entity.Appointment{ID: uuid.New(), DoctorID: &doctorID}, nil
			},
		}
		u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, patientRepo, &auditServiceMock{})

		doctorStr := doctorID.String()
		_, err := u.Create(context.Background(), service.Actor{}, &dto.CreateAppointmentRequest{
			PatientID: patientID.String(),
			DoctorID:  &doctorStr,
			Date:      "2026-03-10",
			Time:      "10:00",
			Status:    entity.AppointmentStatusConfirmed,
		})

		assert.ErrorIs(t, err, ErrAppointmentConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled appointment does not hold the slot", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		doctorID := uuid.New()
		conflictChecked := false

		patientRepo := &patientRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
				return &entity.Patient{ID: id, FirstName: "Ana", Phone: "5511223344"}, nil
			},
		}
		appointmentRepo := &appointmentRepoMock{
			findConflictFn: func(db *gorm.DB, date, timeOfDay string, id uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
				conflictChecked = true
				return nil, nil
			},
			createFn: func(db *gorm.DB, appointment *entity.Appointment) error {
				appointment.ID = uuid.New()
				return nil
			},
		}
		audit := &auditServiceMock{}
		u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, patientRepo, audit)

		doctorStr := doctorID.String()
		appointment, err := u.Create(context.Background(), service.Actor{}, &dto.CreateAppointmentRequest{
			PatientID: uuid.New().String(),
			DoctorID:  &doctorStr,
			Date:      "2026-03-10",
			Time:      "10:00",
			Status:    entity.AppointmentStatusCancelled,
		})

		require.NoError(t, err)
		assert.False(t, conflictChecked)
		assert.Equal(t, entity.AppointmentStatusCancelled, appointment.Status)
		assert.Contains(t, audit.actions, entity.AuditActionCreateAppointment)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppointmentUsecaseUpdateSlotRecheck(t *testing.T) {
	existingDate, _ := time.Parse("2006-01-02", "2026-03-10")

	t.Run("rescheduling into an occupied slot is rejected", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		apptID := uuid.New()
		doctorID := uuid.New()
		existing := &entity.Appointment{
			ID:       apptID,
			DoctorID: &doctorID,
			Date:     existingDate,
			Time:     "10:00",
			Status:   entity.AppointmentStatusPending,
		}

		appointmentRepo := &appointmentRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
				return existing, nil
			},
			findConflictFn: func(db *gorm.DB, date, timeOfDay string, id uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
				// The check must use the values the row is moving to, and
				// must not trip over the appointment being rescheduled.
				assert.Equal(t, "2026-03-12", date)
				assert.Equal(t, "11:30", timeOfDay)
				assert.Equal(t, doctorID, id)
				require.NotNil(t, excludeID)
				assert.Equal(t, apptID, *excludeID)
				return &entity.Appointment{ID: uuid.New()}, nil
			},
		}
		u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &patientRepoMock{}, &auditServiceMock{})

		payload, err := sqlbuild.DecodePayload(strings.NewReader(`{"date":"2026-03-12","time":"11:30"}`))
		require.NoError(t, err)

		_, err = u.Update(context.Background(), service.Actor{}, apptID, payload)
		assert.ErrorIs(t, err, ErrAppointmentConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reassigning the doctor rechecks against the new one", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		apptID := uuid.New()
		oldDoctor := uuid.New()
		newDoctor := uuid.New()
		existing := &entity.Appointment{
			ID:       apptID,
			DoctorID: &oldDoctor,
			Date:     existingDate,
			Time:     "10:00",
			Status:   entity.AppointmentStatusConfirmed,
		}

		var checkedDoctor uuid.UUID
		appointmentRepo := &appointmentRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
				return existing, nil
			},
			findConflictFn: func(db *gorm.DB, date, timeOfDay string, id uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
				checkedDoctor = id
				return nil, nil
			},
			updateColumnsFn: func(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
				assert.Equal(t, newDoctor, assignments["doctor_id"])
				return nil
			},
		}
		u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &patientRepoMock{}, &auditServiceMock{})

		payload, err := sqlbuild.DecodePayload(strings.NewReader(`{"doctorId":"` + newDoctor.String() + `"}`))
		require.NoError(t, err)

		_, err = u.Update(context.Background(), service.Actor{}, apptID, payload)
		require.NoError(t, err)
		assert.Equal(t, newDoctor, checkedDoctor)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelling skips the slot check", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		apptID := uuid.New()
		doctorID := uuid.New()
		existing := &entity.Appointment{
			ID:       apptID,
			DoctorID: &doctorID,
			Date:     existingDate,
			Time:     "10:00",
			Status:   entity.AppointmentStatusConfirmed,
		}

		conflictChecked := false
		appointmentRepo := &appointmentRepoMock{
			findByIDFn: func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
				return existing, nil
			},
			findConflictFn: func(db *gorm.DB, date, timeOfDay string, id uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
				conflictChecked = true
				return nil, nil
			},
			updateColumnsFn: func(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
				return nil
			},
		}
		u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, &patientRepoMock{}, &auditServiceMock{})

		payload, err := sqlbuild.DecodePayload(strings.NewReader(`{"status":"Cancelada"}`))
		require.NoError(t, err)

		_, err = u.Update(context.Background(), service.Actor{}, apptID, payload)
		require.NoError(t, err)
		assert.False(t, conflictChecked)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
