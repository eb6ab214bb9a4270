package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	CarStatusAvailable   = "available"
	CarStatusRented      = "rented"
	CarStatusMaintenance = "maintenance"
)

var CarStatuses = []string{CarStatusAvailable, CarStatusRented, CarStatusMaintenance}

func IsValidCarStatus(s string) bool {
	for _, v := range CarStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Car struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;index;not null" json:"tenant_id"`

	Make         string `gorm:"size:100;not null" json:"make"`
	Model        string `gorm:"size:100;not null" json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `gorm:"size:20" json:"license_plate"`
	Color        string `gorm:"size:50" json:"color"`
	Category     string `gorm:"size:50" json:"category"`

	PricePerDay   float64 `json:"price_per_day"`
	DepositAmount float64 `json:"deposit_amount"`

	Transmission string         `gorm:"size:20" json:"transmission"`
	FuelType     string         `gorm:"size:20" json:"fuel_type"`
	Seats        int            `json:"seats"`
	Features     pq.StringArray `gorm:"type:text[]" json:"features"`

	LocationID *string `gorm:"type:uuid;index" json:"location_id"`

	// Status transitions are admin-driven, never derived from reservations.
	Status string `gorm:"size:20;default:'available'" json:"status"`

	PrimaryImageURL string         `gorm:"size:500" json:"primary_image_url"`
	GalleryURLs     pq.StringArray `gorm:"type:text[]" json:"gallery_urls"`

	RentalCount int `gorm:"default:0" json:"rental_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CarSummary is the slice of car fields embedded in reservation listings.
type CarSummary struct {
	ID              string  `json:"id"`
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	PrimaryImageURL string  `json:"primary_image_url"`
	PricePerDay     float64 `json:"price_per_day"`
}

func (c *Car) Summary() CarSummary {
	return CarSummary{
		ID:              c.ID,
		Make:            c.Make,
		Model:           c.Model,
		Year:            c.Year,
		PrimaryImageURL: c.PrimaryImageURL,
		PricePerDay:     c.PricePerDay,
	}
}
