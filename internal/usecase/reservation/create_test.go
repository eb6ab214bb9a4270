package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/models"
)

func availableCar() *models.Car {
	return &models.Car{
		ID:          "car-1",
		TenantID:    "tenant-1",
		Make:        "Toyota",
		Model:       "Corolla",
		PricePerDay: 3.0,
		Status:      models.CarStatusAvailable,
	}
}

func TestCreate_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending reservation with derived price", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetCar", ctx, "car-1").Return(availableCar(), nil)
		repo.On("CreateWithConflictCheck", ctx, mock.AnythingOfType("*models.Reservation")).Return(nil)

		uc := NewCreate(repo, nil)

		res, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-26",
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", res.Status)
		assert.Equal(t, 75.0, res.TotalPrice) // 25 days * 3.0
		assert.Equal(t, "tenant-1", res.TenantID)
		repo.AssertExpectations(t)
	})

	t.Run("honors an explicit price override", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetCar", ctx, "car-1").Return(availableCar(), nil)
		repo.On("CreateWithConflictCheck", ctx, mock.AnythingOfType("*models.Reservation")).Return(nil)

		uc := NewCreate(repo, nil)

		override := 199.99
		res, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-05",
			TotalPrice: &override,
		})

		require.NoError(t, err)
		assert.Equal(t, 199.99, res.TotalPrice)
	})

	t.Run("rejects end date not after start date", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetCar", ctx, "car-1").Return(availableCar(), nil)

		uc := NewCreate(repo, nil)

		_, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-05",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "invalid_date_range", code)
		repo.AssertNotCalled(t, "CreateWithConflictCheck", mock.Anything, mock.Anything)
	})

	t.Run("rejects unparseable dates", func(t *testing.T) {
		repo := new(mockRepository)
		uc := NewCreate(repo, nil)

		_, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "01/09/2026",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "invalid_start_date", code)
	})

	t.Run("missing car maps to car_not_found", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetCar", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		uc := NewCreate(repo, nil)

		_, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "ghost",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "car_not_found", code)
	})

	t.Run("another tenant's car looks like a missing car", func(t *testing.T) {
		car := availableCar()
		car.TenantID = "tenant-2"

		repo := new(mockRepository)
		repo.On("GetCar", ctx, "car-1").Return(car, nil)

		uc := NewCreate(repo, nil)

		_, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "car_not_found", code)
	})

	t.Run("rejects a car under maintenance", func(t *testing.T) {
		car := availableCar()
		car.Status = models.CarStatusMaintenance

		repo := new(mockRepository)
		repo.On("GetCar", ctx, "car-1").Return(car, nil)

		uc := NewCreate(repo, nil)

		_, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "car_not_available", code)
	})

	t.Run("propagates date_conflict from the repository", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("GetCar", ctx, "car-1").Return(availableCar(), nil)
		repo.On("CreateWithConflictCheck", ctx, mock.AnythingOfType("*models.Reservation")).
			Return(httperr.ErrBusiness("date_conflict"))

		uc := NewCreate(repo, nil)

		_, err := uc.Execute(ctx, CreateInput{
			TenantID:   "tenant-1",
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "date_conflict", code)
	})

	t.Run("requires a tenant context", func(t *testing.T) {
		uc := NewCreate(new(mockRepository), nil)

		_, err := uc.Execute(ctx, CreateInput{
			CustomerID: "customer-1",
			CarID:      "car-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-05",
		})

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "tenant_required", code)
	})
}
