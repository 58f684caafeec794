package repository

import (
	"errors"
	"time"

	"novadent-crm/internal/domain/entity"
	domainRepo "novadent-crm/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(db *gorm.DB, id uuid.UUID, hash string) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *userRepository) TouchLastLogin(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}
