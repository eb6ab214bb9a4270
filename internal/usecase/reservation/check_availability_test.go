package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/models"
)

func TestCheckAvailability_Execute(t *testing.T) {
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	t.Run("available when nothing overlaps", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListOverlapping", ctx, "car-1", start, end).Return([]models.Reservation{}, nil)

		uc := NewCheckAvailability(repo)

		result, err := uc.Execute(ctx, "car-1", "2026-09-01", "2026-09-05")

		require.NoError(t, err)
		assert.True(t, result.IsAvailable)
		assert.Empty(t, result.ConflictingReservations)
		assert.Equal(t, "car-1", result.CarID)
	})

	t.Run("unavailable with the overlapping reservations listed", func(t *testing.T) {
		conflicts := []models.Reservation{
			{ID: "res-1", CarID: "car-1", Status: "confirmed"},
		}

		repo := new(mockRepository)
		repo.On("ListOverlapping", ctx, "car-1", start, end).Return(conflicts, nil)

		uc := NewCheckAvailability(repo)

		result, err := uc.Execute(ctx, "car-1", "2026-09-01", "2026-09-05")

		require.NoError(t, err)
		assert.False(t, result.IsAvailable)
		assert.Len(t, result.ConflictingReservations, 1)
	})

	t.Run("rejects malformed dates before touching the repository", func(t *testing.T) {
		repo := new(mockRepository)
		uc := NewCheckAvailability(repo)

		_, err := uc.Execute(ctx, "car-1", "not-a-date", "2026-09-05")

		code, ok := httperr.BusinessCode(err)
		require.True(t, ok)
		assert.Equal(t, "invalid_start_date", code)
		repo.AssertNotCalled(t, "ListOverlapping")
	})
}
