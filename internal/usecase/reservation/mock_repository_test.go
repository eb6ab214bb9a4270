package reservation

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/rentgrid/car-rental-api/internal/domain/reservation"
	"github.com/rentgrid/car-rental-api/internal/models"
)

type mockRepository struct {
	mock.Mock
}

var _ domain.Repository = (*mockRepository)(nil)

func (m *mockRepository) GetCar(ctx context.Context, carID string) (*models.Car, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *mockRepository) CreateWithConflictCheck(ctx context.Context, r *models.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRepository) ListOverlapping(ctx context.Context, carID string, start, end time.Time) ([]models.Reservation, error) {
	args := m.Called(ctx, carID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Reservation, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Reservation, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *mockRepository) GetForTenant(ctx context.Context, id, tenantID string) (*models.Reservation, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id, tenantID, status string) (*models.Reservation, error) {
	args := m.Called(ctx, id, tenantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id, tenantID string) (string, error) {
	args := m.Called(ctx, id, tenantID)
	return args.String(0), args.Error(1)
}
