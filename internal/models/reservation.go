package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;index;not null" json:"tenant_id"`

	CarID string `gorm:"type:uuid;index;not null" json:"car_id"`
	Car   *Car   `gorm:"foreignKey:CarID" json:"car,omitempty"`

	CustomerID string   `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   *Profile `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// Calendar dates; start_date < end_date is enforced at creation.
	StartDate time.Time `gorm:"type:date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date" json:"end_date"`

	TotalPrice float64 `json:"total_price"`
	Status     string  `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
