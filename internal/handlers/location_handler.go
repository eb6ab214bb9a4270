package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/httpresp"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/models"
)

type LocationHandler struct {
	db *gorm.DB
}

func NewLocationHandler(db *gorm.DB) *LocationHandler {
	return &LocationHandler{db: db}
}

type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	City     string `json:"city" binding:"required"`
	Address  string `json:"address"`
	ImageURL string `json:"imageUrl"`
}

func (h *LocationHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "Tenant context is required to create locations.")
		return
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	location := models.Location{
		TenantID: tenantID,
		Name:     req.Name,
		City:     req.City,
		Address:  req.Address,
		ImageURL: req.ImageURL,
	}

	if err := h.db.Create(&location).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "Failed to create location.")
		return
	}

	httpresp.Created(c, location)
}

// List is public so storefronts can render pickup points.
func (h *LocationHandler) List(c *gin.Context) {
	tenantID := c.Query("tenantId")
	if tenantID == "" {
		httperr.BadRequest(c, "missing_tenant_id", "tenantId query parameter is required.")
		return
	}

	var locations []models.Location
	if err := h.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&locations).Error; err != nil {
		httperr.Internal(c, "failed_to_fetch_locations", "Failed to fetch locations.")
		return
	}

	httpresp.List(c, locations)
}

func (h *LocationHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "Tenant context is required to delete locations.")
		return
	}
	id := c.Param("id")

	result := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Location{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_location", "Failed to delete location.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "location_not_found", "Location not found.")
		return
	}

	httpresp.OK(c, gin.H{"id": id})
}
