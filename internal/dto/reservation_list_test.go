package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rentgrid/car-rental-api/internal/models"
)

func TestReservationToDTO(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	res := models.Reservation{
		ID:         "res-1",
		TenantID:   "tenant-1",
		CarID:      "car-1",
		CustomerID: "customer-1",
		StartDate:  start,
		EndDate:    end,
		TotalPrice: 200,
		Status:     "pending",
		Car: &models.Car{
			ID:    "car-1",
			Make:  "Toyota",
			Model: "Corolla",
		},
		Customer: &models.Profile{
			ID:       "customer-1",
			FullName: "Jane Renter",
		},
	}

	out := ReservationToDTO(&res)

	assert.Equal(t, "2026-09-01", out.StartDate)
	assert.Equal(t, "2026-09-05", out.EndDate)
	assert.Equal(t, "Toyota", out.Car.Make)
	assert.Equal(t, "Jane Renter", out.Customer.FullName)
}

func TestReservationToDTO_WithoutPreloads(t *testing.T) {
	res := models.Reservation{
		ID:        "res-1",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}

	out := ReservationToDTO(&res)

	assert.Nil(t, out.Car)
	assert.Nil(t, out.Customer)
}
