package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/service"
	"novadent-crm/internal/usecase"
	"novadent-crm/pkg/sqlbuild"
	"novadent-crm/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type appointmentUsecaseMock struct {
	listFn   func(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	createFn func(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error)
	updateFn func(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Appointment, error)
	deleteFn func(ctx context.Context, actor service.Actor, id uuid.UUID) error
	statsFn  func(ctx context.Context) (*entity.AppointmentStats, error)
}

func (m *appointmentUsecaseMock) List(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return m.listFn(ctx, filter)
}

func (m *appointmentUsecaseMock) Get(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return m.getFn(ctx, id)
}

func (m *appointmentUsecaseMock) Create(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	return m.createFn(ctx, actor, req)
}

func (m *appointmentUsecaseMock) Update(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Appointment, error) {
	return m.updateFn(ctx, actor, id, payload)
}

func (m *appointmentUsecaseMock) Delete(ctx context.Context, actor service.Actor, id uuid.UUID) error {
	return m.deleteFn(ctx, actor, id)
}

func (m *appointmentUsecaseMock) Stats(ctx context.Context) (*entity.AppointmentStats, error) {
	return m.statsFn(ctx)
}

func TestAppointmentHandlerList(t *testing.T) {
	mock := &appointmentUsecaseMock{
		listFn: func(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
			assert.Equal(t, "2026-03-01", filter.StartDate)
			assert.Equal(t, "2026-03-31", filter.EndDate)
			assert.Equal(t, "Confirmada", filter.Status)
			return []entity.Appointment{{ID: uuid.New(), PatientID: uuid.New(), Time: "10:30", Status: "Confirmada"}}, nil
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet,
		"/api/appointments?startDate=2026-03-01&endDate=2026-03-31&status=Confirmada", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
}

func TestAppointmentHandlerCreate(t *testing.T) {
	patientID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mock := &appointmentUsecaseMock{
			createFn: func(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
				assert.Equal(t, patientID.String(), req.PatientID)
				date, _ := time.Parse("2006-01-02", req.Date)
				return &entity.Appointment{ID: uuid.New(), PatientID: patientID, Date: date, Time: req.Time, Status: "Pendiente"}, nil
			},
		}
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments",
			bytes.NewBufferString(`{"patientId":"`+patientID.String()+`","date":"2026-03-10","time":"10:30"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("slot conflict", func(t *testing.T) {
		mock := &appointmentUsecaseMock{
			createFn: func(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
				return nil, usecase.ErrAppointmentConflict
			},
		}
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments",
			bytes.NewBufferString(`{"patientId":"`+patientID.String()+`","doctorId":"`+uuid.NewString()+`","date":"2026-03-10","time":"10:30"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "The doctor already has an appointment at that date and time", decodeBody(t, rec)["error"])
	})

	t.Run("unknown patient", func(t *testing.T) {
		mock := &appointmentUsecaseMock{
			createFn: func(ctx context.Context, actor service.Actor, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
				return nil, usecase.ErrPatientNotFound
			},
		}
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments",
			bytes.NewBufferString(`{"patientId":"`+uuid.NewString()+`","date":"2026-03-10","time":"10:30"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status rejected by validation", func(t *testing.T) {
		h := NewAppointmentHandler(&appointmentUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments",
			bytes.NewBufferString(`{"patientId":"`+patientID.String()+`","date":"2026-03-10","time":"10:30","status":"Agendada"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date rejected by validation", func(t *testing.T) {
		h := NewAppointmentHandler(&appointmentUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/appointments",
			bytes.NewBufferString(`{"patientId":"`+patientID.String()+`","date":"10/03/2026","time":"10:30"}`))
		rec := httptest.NewRecorder()
		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAppointmentHandlerUpdate(t *testing.T) {
	appointmentID := uuid.New()

	t.Run("reschedule conflict", func(t *testing.T) {
		mock := &appointmentUsecaseMock{
			updateFn: func(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Appointment, error) {
				assert.Equal(t, appointmentID, id)
				return nil, usecase.ErrAppointmentConflict
			},
		}
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/appointments/"+appointmentID.String(),
			bytes.NewBufferString(`{"date":"2026-03-11","time":"11:00"}`))
		rec := httptest.NewRecorder()
		h.Update(rec, muxRequest(req, map[string]string{"id": appointmentID.String()}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mock := &appointmentUsecaseMock{
			updateFn: func(ctx context.Context, actor service.Actor, id uuid.UUID, payload sqlbuild.Payload) (*entity.Appointment, error) {
				return nil, usecase.ErrAppointmentNotFound
			},
		}
		h := NewAppointmentHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/appointments/"+appointmentID.String(),
			bytes.NewBufferString(`{"status":"Cancelada"}`))
		rec := httptest.NewRecorder()
		h.Update(rec, muxRequest(req, map[string]string{"id": appointmentID.String()}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAppointmentHandlerStats(t *testing.T) {
	mock := &appointmentUsecaseMock{
		statsFn: func(ctx context.Context) (*entity.AppointmentStats, error) {
			return &entity.AppointmentStats{TotalAppointments: 10, Confirmed: 4, Pending: 3, Completed: 2, Today: 1}, nil
		},
	}
	h := NewAppointmentHandler(mock, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec), "stats")
}
