package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a mutating action. Rows are never
// updated or deleted; the user reference degrades to null if the actor is
// removed.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action     string     `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityType *string    `gorm:"type:varchar(50);index" json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entity_id,omitempty"`
	IPAddress  *string    `gorm:"type:varchar(50)" json:"ip_address,omitempty"`
	UserAgent  *string    `gorm:"type:text" json:"user_agent,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action tags, one per mutating operation.
const (
	AuditActionLogin             = "LOGIN"
	AuditActionLogout            = "LOGOUT"
	AuditActionChangePassword    = "CHANGE_PASSWORD"
	AuditActionRegisterUser      = "REGISTER_USER"
	AuditActionCreatePatient     = "CREATE_PATIENT"
	AuditActionUpdatePatient     = "UPDATE_PATIENT"
	AuditActionDeletePatient     = "DELETE_PATIENT"
	AuditActionCreateAppointment = "CREATE_APPOINTMENT"
	AuditActionUpdateAppointment = "UPDATE_APPOINTMENT"
	AuditActionDeleteAppointment = "DELETE_APPOINTMENT"
	AuditActionCreateSite        = "CREATE_SITE"
	AuditActionUpdateSite        = "UPDATE_SITE"
	AuditActionDeleteSite        = "DELETE_SITE"
	AuditActionCreateDoctor      = "CREATE_DOCTOR"
	AuditActionUpdateDoctor      = "UPDATE_DOCTOR"
	AuditActionDeleteDoctor      = "DELETE_DOCTOR"
	AuditActionCreateInvoice     = "CREATE_INVOICE"
	AuditActionUpdateInvoice     = "UPDATE_INVOICE"
	AuditActionDeleteInvoice     = "DELETE_INVOICE"
	AuditActionCreateItem        = "CREATE_INVENTORY_ITEM"
	AuditActionUpdateItem        = "UPDATE_INVENTORY_ITEM"
	AuditActionDeleteItem        = "DELETE_INVENTORY_ITEM"
	AuditActionCreateMovement    = "CREATE_INVENTORY_MOVEMENT"
	AuditActionCreateLead        = "CREATE_LEAD"
	AuditActionUpdateLead        = "UPDATE_LEAD"
	AuditActionDeleteLead        = "DELETE_LEAD"
	AuditActionConvertLead       = "CONVERT_LEAD"
	AuditActionCreateCampaign    = "CREATE_CAMPAIGN"
	AuditActionUpdateCampaign    = "UPDATE_CAMPAIGN"
	AuditActionDeleteCampaign    = "DELETE_CAMPAIGN"
	AuditActionAddLoyaltyPoints  = "ADD_LOYALTY_POINTS"
	AuditActionCreateOdontogram  = "CREATE_ODONTOGRAM"
)

// JSON is a jsonb column helper.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
