package usecase

import (
	"context"
	"errors"
	"fmt"

	"novadent-crm/internal/converter"
	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	Logout(ctx context.Context, actor service.Actor, userID uuid.UUID, tokenID string) error
	ChangePassword(ctx context.Context, actor service.Actor, userID uuid.UUID, req *dto.ChangePasswordRequest) error
	Register(ctx context.Context, actor service.Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByEmail(tx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, tokenID, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	// Token is only valid while its Redis key lives; deleting the key
	// revokes the session.
	tokenKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), tokenID)
	if err := u.redisClient.Set(ctx, tokenKey, "valid", u.jwtService.Expiry()).Err(); err != nil {
		u.log.Warnf("Failed to store token in redis: %+v", err)
		return nil, err
	}

	if err := u.userRepo.TouchLastLogin(tx, user.ID); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, service.Actor{UserID: &user.ID}, entity.AuditActionLogin, "user", &user.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// Logout revokes the session behind the presented token by deleting its
// Redis key. Other sessions of the same user stay valid.
func (u *authUsecase) Logout(ctx context.Context, actor service.Actor, userID uuid.UUID, tokenID string) error {
	tokenKey := fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	if err := u.redisClient.Del(ctx, tokenKey).Err(); err != nil {
		u.log.Warnf("Failed to revoke token: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	u.auditService.Log(ctx, tx, actor, entity.AuditActionLogout, "user", &userID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, actor service.Actor, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	if err := u.userRepo.UpdatePassword(tx, userID, string(hashedPassword)); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionChangePassword, "user", &userID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Revoke every live session for this user so the old credential stops
	// working immediately.
	u.revokeUserTokens(ctx, userID)

	return nil
}

func (u *authUsecase) Register(ctx context.Context, actor service.Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = entity.RoleAdmin
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, tx, actor, entity.AuditActionRegisterUser, "user", &user.ID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// revokeUserTokens deletes every access token key belonging to the user. A
// scan failure is logged; the password change already committed.
func (u *authUsecase) revokeUserTokens(ctx context.Context, userID uuid.UUID) {
	pattern := fmt.Sprintf("access_token:%s:*", userID.String())
	iter := u.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := u.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			u.log.Warnf("Failed to revoke token %s: %+v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		u.log.Warnf("Failed to scan user tokens: %+v", err)
	}
}
