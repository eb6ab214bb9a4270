package models

import "time"

const (
	RoleCustomer    = "customer"
	RoleClientAdmin = "client_admin"
)

// Profile shares its id with the User identity record. TenantID is nil
// until the user is assigned to a tenant; client_admin profiles always
// belong to exactly one tenant.
type Profile struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	FullName    string  `gorm:"size:100;not null" json:"full_name"`
	PhoneNumber string  `gorm:"size:20" json:"phone_number"`
	Role        string  `gorm:"size:20;default:'customer'" json:"role"`
	TenantID    *string `gorm:"type:uuid;index" json:"tenant_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
