package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"novadent-crm/internal/domain/repository"
	"novadent-crm/internal/service"
	"novadent-crm/pkg/jwt"
	"novadent-crm/pkg/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	UserRoleKey  contextKey = "user_role"
	TokenIDKey   contextKey = "token_id"
)

type AuthMiddleware struct {
	db          *gorm.DB
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	userRepo    repository.UserRepository
}

func NewAuthMiddleware(db *gorm.DB, jwtService *jwt.JWTService, redisClient *redis.Client, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		db:          db,
		jwtService:  jwtService,
		redisClient: redisClient,
		userRepo:    userRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(w, "Token expired, please log in again")
				return
			}
			response.Unauthorized(w, "Invalid token")
			return
		}

		// Check if token exists in Redis (not revoked)
		tokenKey := fmt.Sprintf("access_token:%s:%s", claims.UserID.String(), claims.TokenID)
		exists, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token", err.Error())
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		// A deactivated account loses access even with a live token.
		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), claims.UserID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate user", err.Error())
			return
		}
		if user == nil || !user.IsActive() {
			response.Unauthorized(w, "User account is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRoleFromContext extracts the role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}

// GetTokenIDFromContext extracts the access token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// ActorFromRequest builds the audit actor for the current request: the
// authenticated user plus the client address and user agent.
func ActorFromRequest(r *http.Request) service.Actor {
	actor := service.Actor{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		actor.UserID = &userID
	}
	return actor
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx > 0 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
