package reservation

import (
	"context"
	"time"

	"github.com/rentgrid/car-rental-api/internal/models"
)

// AvailabilityResult is the outcome of the read-only availability check.
type AvailabilityResult struct {
	CarID                   string               `json:"carId"`
	StartDate               string               `json:"startDate"`
	EndDate                 string               `json:"endDate"`
	IsAvailable             bool                 `json:"isAvailable"`
	ConflictingReservations []models.Reservation `json:"conflictingReservations"`
}

type Repository interface {
	// -------- Car --------
	GetCar(ctx context.Context, carID string) (*models.Car, error)

	// -------- Reservation (create / conflict) --------

	// CreateWithConflictCheck runs the overlap check and the insert in a
	// single transaction, locking conflicting rows, and fails with a
	// date_conflict business error when a non-cancelled reservation for
	// the same car intersects the requested range.
	CreateWithConflictCheck(ctx context.Context, r *models.Reservation) error

	// ListOverlapping returns non-cancelled reservations for the car whose
	// closed date interval intersects [start, end].
	ListOverlapping(ctx context.Context, carID string, start, end time.Time) ([]models.Reservation, error)

	// -------- Reservation (queries) --------
	ListByTenant(ctx context.Context, tenantID string) ([]models.Reservation, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error)
	GetForTenant(ctx context.Context, id, tenantID string) (*models.Reservation, error)

	// -------- Reservation (mutations) --------
	UpdateStatus(ctx context.Context, id, tenantID, status string) (*models.Reservation, error)
	Delete(ctx context.Context, id, tenantID string) (string, error)
}
