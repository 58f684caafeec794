package repository

import (
	"errors"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, activeOnly bool) ([]entity.Doctor, error) {
	q := db.Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var doctors []entity.Doctor
	if err := q.Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) UpdateColumns(db *gorm.DB, id uuid.UUID, assignments map[string]interface{}) error {
	return db.Model(&entity.Doctor{}).Where("id = ?", id).Updates(assignments).Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Doctor{})
	return affected.RowsAffected, affected.Error
}
