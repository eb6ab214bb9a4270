package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Slug         string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	LogoURL      string `gorm:"size:500" json:"logo_url"`
	ContactEmail string `gorm:"size:100" json:"contact_email"`
	PhoneNumber  string `gorm:"size:20" json:"phone_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TenantPublic is the projection exposed on the unauthenticated
// by-slug lookup. Anything beyond branding stays private.
type TenantPublic struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	LogoURL      string `json:"logo_url"`
	ContactEmail string `json:"contact_email"`
	PhoneNumber  string `json:"phone_number"`
}

func (t *Tenant) Public() TenantPublic {
	return TenantPublic{
		ID:           t.ID,
		Name:         t.Name,
		Slug:         t.Slug,
		LogoURL:      t.LogoURL,
		ContactEmail: t.ContactEmail,
		PhoneNumber:  t.PhoneNumber,
	}
}
