package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User describes platform users. Usernames and emails are unique across the
// whole system, not per tenant, so admin credentials can be checked before a
// tenant exists.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	DepartmentID *string     `gorm:"type:uuid" json:"department_id"`
	Department   *Department `json:"department,omitempty"`

	IsActive      bool `gorm:"default:true" json:"is_active"`
	EmailVerified bool `gorm:"default:false" json:"email_verified"`

	Roles []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate ensures a UUID is present before persisting.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
