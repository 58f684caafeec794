package converter

import (
	"novadent-crm/internal/delivery/dto"
	"novadent-crm/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The password
// hash never leaves this boundary.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.IsActive(),
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}
