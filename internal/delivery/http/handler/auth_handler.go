package handler

import (
	"encoding/json"
	"net/http"

	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/delivery/http/middleware"
	"novadent-crm/internal/usecase"
	"novadent-crm/pkg/response"
	"novadent-crm/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case usecase.ErrUserInactive:
			response.Unauthorized(w, "User account is inactive")
		default:
			response.InternalServerError(w, "Failed to log in", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{
		"token": result.Token,
		"user":  result.User,
	})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	user, err := h.authUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get profile", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.authUsecase.Logout(r.Context(), actor, userID, tokenID); err != nil {
		response.InternalServerError(w, "Failed to log out", err.Error())
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Logged out"})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	if err := h.authUsecase.ChangePassword(r.Context(), actor, userID, &req); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrWrongPassword:
			response.BadRequest(w, "Current password is incorrect")
		default:
			response.InternalServerError(w, "Failed to change password", err.Error())
		}
		return
	}

	response.Success(w, http.StatusOK, response.Envelope{"message": "Password updated, please log in again"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationFailed(w, h.validator.FormatValidationErrors(err))
		return
	}

	actor := middleware.ActorFromRequest(r)
	user, err := h.authUsecase.Register(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.BadRequest(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to register user", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, response.Envelope{"user": user})
}
