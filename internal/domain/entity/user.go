package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a back-office account. The CRM has a single privileged
// role; non-admin accounts can still operate the clinical endpoints.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"type:varchar(255);not null" json:"-"`
	Name      string     `gorm:"type:varchar(200);not null" json:"name"`
	Role      string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	Active    *bool      `gorm:"not null;default:true;index" json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

const RoleAdmin = "admin"

// IsActive treats a missing flag as inactive.
func (u *User) IsActive() bool {
	return u.Active != nil && *u.Active
}
