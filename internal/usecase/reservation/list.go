package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/rentgrid/car-rental-api/internal/domain/reservation"
	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/models"
)

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

// ByTenant returns every reservation of the tenant with car and customer
// summaries, newest first. Admin view.
func (uc *List) ByTenant(ctx context.Context, tenantID string) ([]models.Reservation, error) {
	if tenantID == "" {
		return nil, httperr.ErrBusiness("tenant_required")
	}
	return uc.repo.ListByTenant(ctx, tenantID)
}

// ByCustomer returns only the caller's own reservations.
func (uc *List) ByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error) {
	if customerID == "" {
		return nil, httperr.ErrBusiness("customer_required")
	}
	return uc.repo.ListByCustomer(ctx, customerID)
}

type Get struct {
	repo domain.Repository
}

func NewGet(repo domain.Repository) *Get {
	return &Get{repo: repo}
}

func (uc *Get) Execute(ctx context.Context, tenantID, reservationID string) (*models.Reservation, error) {
	if tenantID == "" {
		return nil, httperr.ErrBusiness("tenant_required")
	}

	res, err := uc.repo.GetForTenant(ctx, reservationID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}

	return res, nil
}
