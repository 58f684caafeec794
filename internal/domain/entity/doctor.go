package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a referential lookup row; appointments keep a nullable reference
// to it so removing a doctor never deletes their appointment history.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Specialty string    `gorm:"type:varchar(150)" json:"specialty,omitempty"`
	Email     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Active    *bool     `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}
