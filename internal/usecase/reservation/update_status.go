package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/audit"
	domain "github.com/rentgrid/car-rental-api/internal/domain/reservation"
	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStatus(repo domain.Repository, audit *audit.Dispatcher) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
	}
}

// Execute sets any of the four reservation statuses. The status field is
// a free enumeration maintained by trusted admin actors; there is no
// transition graph.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	reservationID string,
	status string,
) (*models.Reservation, error) {

	if tenantID == "" {
		return nil, httperr.ErrBusiness("tenant_required")
	}

	if !domain.IsValidStatus(status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	res, err := uc.repo.UpdateStatus(ctx, reservationID, tenantID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  &actorID,
		Action:   "reservation_status_changed",
		Entity:   "reservation",
		EntityID: &res.ID,
		Metadata: map[string]any{"status": status},
	})

	return res, nil
}
