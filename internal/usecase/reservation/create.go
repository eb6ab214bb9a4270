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

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	// Derived from the authenticated session, never client-supplied.
	TenantID   string
	CustomerID string

	CarID     string
	StartDate string
	EndDate   string

	// Optional price override; nil means days * car.price_per_day.
	TotalPrice *float64
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreate(repo domain.Repository, audit *audit.Dispatcher) *Create {
	return &Create{
		repo:  repo,
		audit: audit,
	}
}

func (uc *Create) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Reservation, error) {

	if in.TenantID == "" {
		return nil, httperr.ErrBusiness("tenant_required")
	}
	if in.CustomerID == "" {
		return nil, httperr.ErrBusiness("customer_required")
	}

	start, err := domain.ParseDate(in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_date")
	}
	end, err := domain.ParseDate(in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end_date")
	}

	car, err := uc.repo.GetCar(ctx, in.CarID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("car_not_found")
		}
		return nil, err
	}

	// A car in another tenant is reported exactly like a missing one so
	// existence never leaks across tenants.
	if car.TenantID != in.TenantID {
		return nil, httperr.ErrBusiness("car_not_found")
	}

	if car.Status != models.CarStatusAvailable {
		return nil, httperr.ErrBusiness("car_not_available")
	}

	days := domain.Days(start, end)
	if days <= 0 {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	res := &models.Reservation{
		TenantID:   in.TenantID,
		CarID:      car.ID,
		CustomerID: in.CustomerID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: domain.TotalPrice(days, car.PricePerDay, in.TotalPrice),
		Status:     string(domain.InitialStatus()),
	}

	// Conflict check and insert run in one transaction; an overlapping
	// non-cancelled reservation aborts with date_conflict.
	if err := uc.repo.CreateWithConflictCheck(ctx, res); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		ActorID:  &in.CustomerID,
		Action:   "reservation_created",
		Entity:   "reservation",
		EntityID: &res.ID,
	})

	return res, nil
}
