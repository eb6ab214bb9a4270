package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/cache"
	"github.com/rentgrid/car-rental-api/internal/dto"
	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/models"
)

const statsCacheTTL = 60 * time.Second

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewDashboardHandler(db *gorm.DB, cacheClient *cache.Client) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cacheClient}
}

type DashboardStats struct {
	TotalCars           int64                    `json:"total_cars"`
	AvailableCars       int64                    `json:"available_cars"`
	TotalReservations   int64                    `json:"total_reservations"`
	PendingReservations int64                    `json:"pending_reservations"`
	TotalRevenue        float64                  `json:"total_revenue"`
	RecentReservations  []dto.ReservationListDTO `json:"recent_reservations"`
}

// Stats aggregates the tenant's fleet and booking numbers. Results are
// cached briefly; reservation writes invalidate the entry.
func (h *DashboardHandler) Stats(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "User does not have a tenant associated.")
		return
	}

	if h.cache != nil {
		cached, err := h.cache.GetStats(c.Request.Context(), tenantID)
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
		if !cache.IsMiss(err) {
			zap.L().Warn("dashboard stats cache read failed",
				zap.String("tenant_id", tenantID), zap.Error(err))
		}
	}

	stats, err := h.compute(c, tenantID)
	if err != nil {
		zap.L().Error("failed to compute dashboard stats",
			zap.String("tenant_id", tenantID), zap.Error(err))
		httperr.Internal(c, "failed_to_fetch_stats", "Failed to fetch dashboard stats.")
		return
	}

	if h.cache != nil {
		if payload, mErr := json.Marshal(stats); mErr == nil {
			if sErr := h.cache.SetStats(c.Request.Context(), tenantID, string(payload), statsCacheTTL); sErr != nil {
				zap.L().Warn("dashboard stats cache write failed",
					zap.String("tenant_id", tenantID), zap.Error(sErr))
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) compute(c *gin.Context, tenantID string) (*DashboardStats, error) {
	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)

	stats := &DashboardStats{}

	if err := db.Model(&models.Car{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalCars).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Car{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.CarStatusAvailable).
		Count(&stats.AvailableCars).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Reservation{}).
		Where("tenant_id = ?", tenantID).
		Count(&stats.TotalReservations).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Reservation{}).
		Where("tenant_id = ? AND status = ?", tenantID, "pending").
		Count(&stats.PendingReservations).Error; err != nil {
		return nil, err
	}

	// Revenue counts completed rentals only.
	if err := db.Model(&models.Reservation{}).
		Where("tenant_id = ? AND status = ?", tenantID, "completed").
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	var recent []models.Reservation
	if err := db.
		Preload("Car").
		Preload("Customer").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, err
	}
	stats.RecentReservations = dto.ReservationsToDTO(recent)

	return stats, nil
}
