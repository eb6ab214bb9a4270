package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/audit"
	domain "github.com/rentgrid/car-rental-api/internal/domain/reservation"
	"github.com/rentgrid/car-rental-api/internal/httperr"
)

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(repo domain.Repository, audit *audit.Dispatcher) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: audit,
	}
}

// Execute hard-deletes a reservation scoped to the tenant and returns
// the deleted id.
func (uc *Cancel) Execute(
	ctx context.Context,
	tenantID string,
	actorID string,
	reservationID string,
) (string, error) {

	if tenantID == "" {
		return "", httperr.ErrBusiness("tenant_required")
	}

	id, err := uc.repo.Delete(ctx, reservationID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", httperr.ErrBusiness("reservation_not_found")
		}
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  &actorID,
		Action:   "reservation_deleted",
		Entity:   "reservation",
		EntityID: &id,
	})

	return id, nil
}
