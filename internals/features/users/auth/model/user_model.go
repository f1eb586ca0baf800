package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleParent      = "parent"
	RoleInstitution = "institution"
	RoleAdmin       = "admin"
)

// UserModel maps the users table. One row per login identity regardless of
// role; institution staff additionally carry user_institution_id.
type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName string    `gorm:"column:user_name;size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	Email    string    `gorm:"column:email;size:255;unique;not null" json:"email" validate:"required,email"`
	Password string    `gorm:"column:password;not null" json:"-"`
	GoogleID *string   `gorm:"column:google_id;size:255;unique" json:"google_id,omitempty"`
	Role     string    `gorm:"column:role;type:varchar(20);not null;default:'parent'" json:"role"`

	// institution scope for staff accounts
	UserInstitutionID *uuid.UUID `gorm:"column:user_institution_id;type:uuid;index" json:"user_institution_id,omitempty"`

	IsActive        bool `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsEmailVerified bool `gorm:"column:is_email_verified;not null;default:false" json:"is_email_verified"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleParent
	}
	return nil
}
