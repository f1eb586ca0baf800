package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is the tenant boundary. Every institution is backed by
// exactly one organization row.
type Organization struct {
	OrganizationID   uuid.UUID `gorm:"column:organization_id;type:uuid;default:gen_random_uuid();primaryKey" json:"organization_id"`
	OrganizationName string    `gorm:"column:organization_name;size:160;not null;uniqueIndex" json:"organization_name"`
	OrganizationSlug string    `gorm:"column:organization_slug;size:160;not null;uniqueIndex" json:"organization_slug"`

	OrganizationCreatedAt time.Time      `gorm:"column:organization_created_at;not null;default:now()" json:"organization_created_at"`
	OrganizationUpdatedAt time.Time      `gorm:"column:organization_updated_at;not null;default:now()" json:"organization_updated_at"`
	OrganizationDeletedAt gorm.DeletedAt `gorm:"column:organization_deleted_at;index" json:"-"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (m *Organization) BeforeCreate(tx *gorm.DB) error {
	if m.OrganizationID == uuid.Nil {
		m.OrganizationID = uuid.New()
	}
	now := time.Now()
	if m.OrganizationCreatedAt.IsZero() {
		m.OrganizationCreatedAt = now
	}
	m.OrganizationUpdatedAt = now
	return nil
}
