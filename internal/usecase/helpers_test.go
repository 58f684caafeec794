package usecase

import (
	"context"
	"io"
	"testing"

	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB backs a gorm.DB with a sqlmock connection. Repositories are
// mocked at the interface level, so tests only script the transaction
// boundaries (Begin, Commit, Rollback).
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type auditServiceMock struct {
	actions []string
}

func (m *auditServiceMock) Log(ctx context.Context, tx *gorm.DB, actor service.Actor, action string, entityType string, entityID *uuid.UUID) {
	m.actions = append(m.actions, action)
}

type appointmentRepoMock struct {
	createFn                func(db *gorm.DB, appointment *entity.Appointment) error
	findByIDFn              func(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	findRecentByPatientIDFn func(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error)
	listFn                  func(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	findConflictFn          func(db *gorm.DB, date, timeOfDay string, doctorID uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error)
	updateColumnsFn         func(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	deleteFn                func(db *gorm.DB, id uuid.UUID) (int64, error)
	statsFn                 func(db *gorm.DB) (*entity.AppointmentStats, error)
}

func (m *appointmentRepoMock) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return m.createFn(db, appointment)
}

func (m *appointmentRepoMock) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return m.findByIDFn(db, id)
}

func (m *appointmentRepoMock) FindRecentByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error) {
	return m.findRecentByPatientIDFn(db, patientID, limit)
}

func (m *appointmentRepoMock) List(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return m.listFn(db, filter)
}

func (m *appointmentRepoMock) FindConflict(db *gorm.DB, date, timeOfDay string, doctorID uuid.UUID, excludeID *uuid.UUID) (*entity.Appointment, error) {
	return m.findConflictFn(db, date, timeOfDay, doctorID, excludeID)
}

func (m *appointmentRepoMock) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return m.updateColumnsFn(db, id, assignments)
}

func (m *appointmentRepoMock) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return m.deleteFn(db, id)
}

func (m *appointmentRepoMock) Stats(db *gorm.DB) (*entity.AppointmentStats, error) {
	return m.statsFn(db)
}

type patientRepoMock struct {
	createFn        func(db *gorm.DB, patient *entity.Patient) error
	findByIDFn      func(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	findByPhoneFn   func(db *gorm.DB, phone string) (*entity.Patient, error)
	searchFn        func(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error)
	updateColumnsFn func(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	adjustPointsFn  func(db *gorm.DB, id uuid.UUID, delta int) error
	deleteFn        func(db *gorm.DB, id uuid.UUID) (int64, error)
	statsFn         func(db *gorm.DB) (*entity.PatientStats, error)
}

func (m *patientRepoMock) Create(db *gorm.DB, patient *entity.Patient) error {
	return m.createFn(db, patient)
}

func (m *patientRepoMock) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return m.findByIDFn(db, id)
}

func (m *patientRepoMock) FindByPhone(db *gorm.DB, phone string) (*entity.Patient, error) {
	return m.findByPhoneFn(db, phone)
}

func (m *patientRepoMock) Search(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	return m.searchFn(db, filter)
}

func (m *patientRepoMock) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return m.updateColumnsFn(db, id, assignments)
}

func (m *patientRepoMock) AdjustPoints(db *gorm.DB, id uuid.UUID, delta int) error {
	return m.adjustPointsFn(db, id, delta)
}

func (m *patientRepoMock) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return m.deleteFn(db, id)
}

func (m *patientRepoMock) Stats(db *gorm.DB) (*entity.PatientStats, error) {
	return m.statsFn(db)
}

type inventoryRepoMock struct {
	createItemFn            func(db *gorm.DB, item *entity.InventoryItem) error
	findItemByIDFn          func(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error)
	findItemByCodeFn        func(db *gorm.DB, code string) (*entity.InventoryItem, error)
	listItemsFn             func(db *gorm.DB, filter *entity.InventoryFilter) ([]entity.InventoryItem, int64, error)
	updateItemColumnsFn     func(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error
	adjustStockFn           func(db *gorm.DB, id uuid.UUID, delta int) error
	deleteItemFn            func(db *gorm.DB, id uuid.UUID) (int64, error)
	createMovementFn        func(db *gorm.DB, movement *entity.InventoryMovement) error
	findMovementsByItemIDFn func(db *gorm.DB, itemID uuid.UUID, limit int) ([]entity.InventoryMovement, error)
}

func (m *inventoryRepoMock) CreateItem(db *gorm.DB, item *entity.InventoryItem) error {
	return m.createItemFn(db, item)
}

func (m *inventoryRepoMock) FindItemByID(db *gorm.DB, id uuid.UUID) (*entity.InventoryItem, error) {
	return m.findItemByIDFn(db, id)
}

func (m *inventoryRepoMock) FindItemByCode(db *gorm.DB, code string) (*entity.InventoryItem, error) {
	return m.findItemByCodeFn(db, code)
}

func (m *inventoryRepoMock) ListItems(db *gorm.DB, filter *entity.InventoryFilter) ([]entity.InventoryItem, int64, error) {
	return m.listItemsFn(db, filter)
}

func (m *inventoryRepoMock) UpdateItemColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return m.updateItemColumnsFn(db, id, assignments)
}

func (m *inventoryRepoMock) AdjustStock(db *gorm.DB, id uuid.UUID, delta int) error {
	return m.adjustStockFn(db, id, delta)
}

func (m *inventoryRepoMock) DeleteItem(db *gorm.DB, id uuid.UUID) (int64, error) {
	return m.deleteItemFn(db, id)
}

func (m *inventoryRepoMock) CreateMovement(db *gorm.DB, movement *entity.InventoryMovement) error {
	return m.createMovementFn(db, movement)
}

func (m *inventoryRepoMock) FindMovementsByItemID(db *gorm.DB, itemID uuid.UUID, limit int) ([]entity.InventoryMovement, error) {
	return m.findMovementsByItemIDFn(db, itemID, limit)
}
