package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	InstitutionTypeSchool     = "school"
	InstitutionTypeCollege    = "college"
	InstitutionTypeUniversity = "university"
	InstitutionTypeCoaching   = "coaching"
)

/* ===================== Model ===================== */

// Institution belongs to one Organization (1:1 tenant). The unique name
// index is what turns a concurrent first-submission race into a 409
// instead of two tenants.
type Institution struct {
	InstitutionID             uuid.UUID `gorm:"column:institution_id;type:uuid;default:gen_random_uuid();primaryKey" json:"institution_id"`
	InstitutionOrganizationID uuid.UUID `gorm:"column:institution_organization_id;type:uuid;not null;uniqueIndex" json:"institution_organization_id"`

	InstitutionName string `gorm:"column:institution_name;size:160;not null;uniqueIndex" json:"institution_name"`
	InstitutionType string `gorm:"column:institution_type;type:varchar(20);not null;default:'school'" json:"institution_type"`

	// board/curriculum names, ≥1 once creation completes ("CBSE", "ICSE", ...)
	InstitutionBoards datatypes.JSON `gorm:"column:institution_boards;type:jsonb" json:"institution_boards,omitempty"`

	InstitutionLocations []InstitutionLocation `gorm:"foreignKey:LocationInstitutionID;references:InstitutionID" json:"institution_locations,omitempty"`

	InstitutionCreatedAt time.Time      `gorm:"column:institution_created_at;not null;default:now()" json:"institution_created_at"`
	InstitutionUpdatedAt time.Time      `gorm:"column:institution_updated_at;not null;default:now()" json:"institution_updated_at"`
	InstitutionDeletedAt gorm.DeletedAt `gorm:"column:institution_deleted_at;index" json:"-"`
}

func (Institution) TableName() string {
	return "institutions"
}

func (m *Institution) BeforeCreate(tx *gorm.DB) error {
	if m.InstitutionID == uuid.Nil {
		m.InstitutionID = uuid.New()
	}
	if m.InstitutionOrganizationID == uuid.Nil {
		return fmt.Errorf("institution_organization_id is required")
	}
	now := time.Now()
	if m.InstitutionCreatedAt.IsZero() {
		m.InstitutionCreatedAt = now
	}
	m.InstitutionUpdatedAt = now
	return nil
}

// InstitutionLocation: {city, state, address} rows, ≥1 per institution once
// creation completes (synthesized from onboarding address text if absent).
type InstitutionLocation struct {
	LocationID            uuid.UUID `gorm:"column:location_id;type:uuid;default:gen_random_uuid();primaryKey" json:"location_id"`
	LocationInstitutionID uuid.UUID `gorm:"column:location_institution_id;type:uuid;not null;index" json:"location_institution_id"`

	LocationCity    string `gorm:"column:location_city;size:80;not null" json:"location_city"`
	LocationState   string `gorm:"column:location_state;size:80;not null" json:"location_state"`
	LocationAddress string `gorm:"column:location_address;type:text;not null" json:"location_address"`

	LocationCreatedAt time.Time      `gorm:"column:location_created_at;not null;default:now()" json:"location_created_at"`
	LocationDeletedAt gorm.DeletedAt `gorm:"column:location_deleted_at;index" json:"-"`
}

func (InstitutionLocation) TableName() string {
	return "institution_locations"
}

func (m *InstitutionLocation) BeforeCreate(tx *gorm.DB) error {
	if m.LocationID == uuid.Nil {
		m.LocationID = uuid.New()
	}
	return nil
}
