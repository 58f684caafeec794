package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/delivery/http/middleware"
	"novadent-crm/internal/service"
	"novadent-crm/internal/usecase"
	"novadent-crm/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authUsecaseMock struct {
	loginFn          func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	getProfileFn     func(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	logoutFn         func(ctx context.Context, actor service.Actor, userID uuid.UUID, tokenID string) error
	changePasswordFn func(ctx context.Context, actor service.Actor, userID uuid.UUID, req *dto.ChangePasswordRequest) error
	registerFn       func(ctx context.Context, actor service.Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
}

func (m *authUsecaseMock) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *authUsecaseMock) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *authUsecaseMock) Logout(ctx context.Context, actor service.Actor, userID uuid.UUID, tokenID string) error {
	return m.logoutFn(ctx, actor, userID, tokenID)
}

func (m *authUsecaseMock) ChangePassword(ctx context.Context, actor service.Actor, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, actor, userID, req)
}

func (m *authUsecaseMock) Register(ctx context.Context, actor service.Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	return m.registerFn(ctx, actor, req)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		mock := &authUsecaseMock{
			loginFn: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				assert.Equal(t, "admin@novadent.mx", req.Email)
				return &dto.LoginResponse{
					Token: "signed-token",
					User:  &dto.UserResponse{ID: userID, Email: req.Email, Role: "admin", Active: true},
				}, nil
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"admin@novadent.mx","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "signed-token", body["token"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mock := &authUsecaseMock{
			loginFn: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"admin@novadent.mx","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid email or password", decodeBody(t, rec)["error"])
	})

	t.Run("inactive user", func(t *testing.T) {
		mock := &authUsecaseMock{
			loginFn: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				return nil, usecase.ErrUserInactive
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"old@novadent.mx","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		h := NewAuthHandler(&authUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":"not-an-email","password":""}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation failed", decodeBody(t, rec)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuthHandler(&authUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			bytes.NewBufferString(`{"email":`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerGetProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.New()
		mock := &authUsecaseMock{
			getProfileFn: func(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
				assert.Equal(t, userID, id)
				return &dto.UserResponse{ID: id, Name: "Dra. Torres", Role: "staff", Active: true}, nil
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
		rec := httptest.NewRecorder()
		h.GetProfile(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing context", func(t *testing.T) {
		h := NewAuthHandler(&authUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		rec := httptest.NewRecorder()
		h.GetProfile(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	t.Run("revokes the session token", func(t *testing.T) {
		userID := uuid.New()
		mock := &authUsecaseMock{
			logoutFn: func(ctx context.Context, actor service.Actor, id uuid.UUID, tokenID string) error {
				assert.Equal(t, userID, id)
				assert.Equal(t, "token-abc", tokenID)
				return nil
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
		ctx = context.WithValue(ctx, middleware.TokenIDKey, "token-abc")
		rec := httptest.NewRecorder()
		h.Logout(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Logged out", decodeBody(t, rec)["message"])
	})

	t.Run("missing token context", func(t *testing.T) {
		h := NewAuthHandler(&authUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
		rec := httptest.NewRecorder()
		h.Logout(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandlerChangePassword(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		mock := &authUsecaseMock{
			changePasswordFn: func(ctx context.Context, actor service.Actor, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
				return usecase.ErrWrongPassword
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password",
			bytes.NewBufferString(`{"currentPassword":"oldpass12","newPassword":"newpass12"}`))
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
		rec := httptest.NewRecorder()
		h.ChangePassword(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Current password is incorrect", decodeBody(t, rec)["error"])
	})

	t.Run("short new password rejected", func(t *testing.T) {
		h := NewAuthHandler(&authUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/auth/change-password",
			bytes.NewBufferString(`{"currentPassword":"oldpass12","newPassword":"short"}`))
		ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
		rec := httptest.NewRecorder()
		h.ChangePassword(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock := &authUsecaseMock{
			registerFn: func(ctx context.Context, actor service.Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
				return &dto.UserResponse{ID: uuid.New(), Name: req.Name, Email: req.Email, Role: "staff", Active: true}, nil
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewBufferString(`{"name":"Laura Vega","email":"laura@novadent.mx","password":"secret123","role":"staff"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := &authUsecaseMock{
			registerFn: func(ctx context.Context, actor service.Actor, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
		}
		h := NewAuthHandler(mock, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewBufferString(`{"name":"Laura Vega","email":"laura@novadent.mx","password":"secret123"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email already exists", decodeBody(t, rec)["error"])
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		h := NewAuthHandler(&authUsecaseMock{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			bytes.NewBufferString(`{"name":"Laura Vega","email":"laura@novadent.mx","password":"secret123","role":"superadmin"}`))
		rec := httptest.NewRecorder()
		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
