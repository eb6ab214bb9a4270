package dto

import (
	"time"

	"github.com/rentgrid/car-rental-api/internal/models"
)

// CustomerSummary is the customer projection embedded in admin listings.
type CustomerSummary struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type ReservationListDTO struct {
	ID         string             `json:"id"`
	TenantID   string             `json:"tenant_id"`
	CarID      string             `json:"car_id"`
	CustomerID string             `json:"customer_id"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	TotalPrice float64            `json:"total_price"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	Car        *models.CarSummary `json:"car,omitempty"`
	Customer   *CustomerSummary   `json:"customer,omitempty"`
}

const dateLayout = "2006-01-02"

// ReservationToDTO is the one mapping between the stored reservation and
// its wire shape.
func ReservationToDTO(r *models.Reservation) ReservationListDTO {
	out := ReservationListDTO{
		ID:         r.ID,
		TenantID:   r.TenantID,
		CarID:      r.CarID,
		CustomerID: r.CustomerID,
		StartDate:  r.StartDate.Format(dateLayout),
		EndDate:    r.EndDate.Format(dateLayout),
		TotalPrice: r.TotalPrice,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}

	if r.Car != nil {
		s := r.Car.Summary()
		out.Car = &s
	}
	if r.Customer != nil {
		out.Customer = &CustomerSummary{
			ID:          r.Customer.ID,
			FullName:    r.Customer.FullName,
			PhoneNumber: r.Customer.PhoneNumber,
		}
	}

	return out
}

func ReservationsToDTO(rs []models.Reservation) []ReservationListDTO {
	out := make([]ReservationListDTO, 0, len(rs))
	for i := range rs {
		out = append(out, ReservationToDTO(&rs[i]))
	}
	return out
}
