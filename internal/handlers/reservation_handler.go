package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentgrid/car-rental-api/internal/cache"
	"github.com/rentgrid/car-rental-api/internal/dto"
	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/httpresp"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/models"
	ucReservation "github.com/rentgrid/car-rental-api/internal/usecase/reservation"
)

type ReservationHandler struct {
	create       *ucReservation.Create
	list         *ucReservation.List
	get          *ucReservation.Get
	updateStatus *ucReservation.UpdateStatus
	cancel       *ucReservation.Cancel
	cache        *cache.Client
}

func NewReservationHandler(
	create *ucReservation.Create,
	list *ucReservation.List,
	get *ucReservation.Get,
	updateStatus *ucReservation.UpdateStatus,
	cancel *ucReservation.Cancel,
	cacheClient *cache.Client,
) *ReservationHandler {
	return &ReservationHandler{
		create:       create,
		list:         list,
		get:          get,
		updateStatus: updateStatus,
		cancel:       cancel,
		cache:        cacheClient,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	CarID      string   `json:"carId" binding:"required"`
	StartDate  string   `json:"startDate" binding:"required"`
	EndDate    string   `json:"endDate" binding:"required"`
	TotalPrice *float64 `json:"totalPrice"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	userID := middleware.UserID(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucReservation.CreateInput{
		TenantID:   tenantID,
		CustomerID: userID,
		CarID:      req.CarID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidateStats(c, tenantID)
	httpresp.Created(c, res)
}

// List is role-aware: admins see the whole tenant with car and customer
// summaries, customers see only their own bookings.
func (h *ReservationHandler) List(c *gin.Context) {
	role := middleware.Role(c)

	if role == models.RoleClientAdmin {
		tenantID, _ := middleware.TenantID(c)
		reservations, err := h.list.ByTenant(c.Request.Context(), tenantID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		httpresp.List(c, dto.ReservationsToDTO(reservations))
		return
	}

	userID := middleware.UserID(c)
	reservations, err := h.list.ByCustomer(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, dto.ReservationsToDTO(reservations))
}

func (h *ReservationHandler) GetOne(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	id := c.Param("id")

	res, err := h.get.Execute(c.Request.Context(), tenantID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.OK(c, dto.ReservationToDTO(res))
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	userID := middleware.UserID(c)
	id := c.Param("id")

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.updateStatus.Execute(c.Request.Context(), tenantID, userID, id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidateStats(c, tenantID)
	httpresp.OK(c, dto.ReservationToDTO(res))
}

func (h *ReservationHandler) Delete(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	userID := middleware.UserID(c)
	id := c.Param("id")

	deletedID, err := h.cancel.Execute(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidateStats(c, tenantID)
	httpresp.OK(c, gin.H{"id": deletedID})
}

// ======================================================
// HELPERS
// ======================================================

// writeError maps use-case business errors onto HTTP statuses. Anything
// else is a 500.
func (h *ReservationHandler) writeError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		zap.L().Error("reservation operation failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch code {
	case "car_not_found", "reservation_not_found":
		httperr.NotFound(c, code, "Resource not found.")
	case "date_conflict":
		httperr.BadRequest(c, code, "The car is already reserved for the selected dates.")
	default:
		httperr.BadRequest(c, code, "Request could not be processed.")
	}
}

// Stale dashboard numbers are tolerable; a failed invalidation is only
// logged.
func (h *ReservationHandler) invalidateStats(c *gin.Context, tenantID string) {
	if h.cache == nil || tenantID == "" {
		return
	}
	if err := h.cache.InvalidateStats(c.Request.Context(), tenantID); err != nil {
		zap.L().Warn("failed to invalidate dashboard stats cache",
			zap.String("tenant_id", tenantID), zap.Error(err))
	}
}
