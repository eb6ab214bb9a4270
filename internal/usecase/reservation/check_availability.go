package reservation

import (
	"context"

	domain "github.com/rentgrid/car-rental-api/internal/domain/reservation"
	"github.com/rentgrid/car-rental-api/internal/httperr"
)

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

// Execute is the read-only predicate: it reports every non-cancelled
// reservation intersecting the requested range. No caching; each call
// re-queries the full overlap set.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	carID string,
	startDate string,
	endDate string,
) (*domain.AvailabilityResult, error) {

	start, err := domain.ParseDate(startDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_date")
	}
	end, err := domain.ParseDate(endDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end_date")
	}

	conflicts, err := uc.repo.ListOverlapping(ctx, carID, start, end)
	if err != nil {
		return nil, err
	}

	return &domain.AvailabilityResult{
		CarID:                   carID,
		StartDate:               startDate,
		EndDate:                 endDate,
		IsAvailable:             len(conflicts) == 0,
		ConflictingReservations: conflicts,
	}, nil
}
