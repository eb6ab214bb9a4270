package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/httpresp"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/models"
	"github.com/rentgrid/car-rental-api/internal/storage"
)

type TenantHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewTenantHandler(db *gorm.DB, uploader *storage.Uploader) *TenantHandler {
	return &TenantHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type CreateTenantRequest struct {
	Name         string `form:"name" binding:"required"`
	Slug         string `form:"slug" binding:"required"`
	ContactEmail string `form:"contactEmail"`
	PhoneNumber  string `form:"phoneNumber"`
}

type UpdateTenantRequest struct {
	Name         *string `form:"name"`
	ContactEmail *string `form:"contactEmail"`
	PhoneNumber  *string `form:"phoneNumber"`
}

// --------- Handlers ---------

// Create registers a tenant and binds the creator as its client_admin.
// The logo upload is a non-critical step: failures are logged, never
// surfaced.
func (h *TenantHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateTenantRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "A tenant with this slug already exists.")
		return
	}

	tenant := models.Tenant{
		Name:         req.Name,
		Slug:         slug,
		ContactEmail: req.ContactEmail,
		PhoneNumber:  req.PhoneNumber,
	}

	// A tenant must never exist without its admin: the insert and the
	// creator binding commit or roll back together.
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		return tx.Model(&models.Profile{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"tenant_id": tenant.ID,
				"role":      models.RoleClientAdmin,
			}).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_tenant", "Failed to create tenant.")
		return
	}

	if file, err := c.FormFile("file"); err == nil && file != nil {
		folder := fmt.Sprintf("tenants/%s/branding", tenant.ID)
		logoURL, upErr := h.uploader.UploadImage(c.Request.Context(), file, folder)
		if upErr != nil {
			zap.L().Warn("tenant logo upload failed",
				zap.String("tenant_id", tenant.ID), zap.Error(upErr))
		} else {
			h.db.Model(&tenant).Update("logo_url", logoURL)
			tenant.LogoURL = logoURL
		}
	}

	httpresp.Created(c, tenant)
}

func (h *TenantHandler) List(c *gin.Context) {
	var tenants []models.Tenant
	if err := h.db.Order("created_at DESC").Find(&tenants).Error; err != nil {
		httperr.Internal(c, "failed_to_fetch_tenants", "Failed to fetch tenants.")
		return
	}

	httpresp.List(c, tenants)
}

// BySlug is the public storefront lookup; it only exposes branding fields.
func (h *TenantHandler) BySlug(c *gin.Context) {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "tenant_not_found", "Tenant not found.")
			return
		}
		httperr.Internal(c, "failed_to_fetch_tenant", "Failed to fetch tenant.")
		return
	}

	httpresp.OK(c, tenant.Public())
}

func (h *TenantHandler) GetMe(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "User does not have a tenant associated.")
		return
	}

	var tenant models.Tenant
	if err := h.db.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Tenant not found.")
		return
	}

	httpresp.OK(c, tenant)
}

func (h *TenantHandler) UpdateMe(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "User does not have a tenant associated.")
		return
	}

	var tenant models.Tenant
	if err := h.db.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Tenant not found.")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactEmail != nil {
		updates["contact_email"] = *req.ContactEmail
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}

	// Replacing the logo deletes the previous object best-effort.
	if file, err := c.FormFile("file"); err == nil && file != nil {
		if tenant.LogoURL != "" {
			if delErr := h.uploader.DeleteByURL(c.Request.Context(), tenant.LogoURL); delErr != nil {
				zap.L().Warn("failed to delete old tenant logo",
					zap.String("tenant_id", tenant.ID), zap.Error(delErr))
			}
		}

		folder := fmt.Sprintf("tenants/%s/branding", tenant.ID)
		logoURL, upErr := h.uploader.UploadImage(c.Request.Context(), file, folder)
		if upErr != nil {
			zap.L().Warn("tenant logo upload failed",
				zap.String("tenant_id", tenant.ID), zap.Error(upErr))
		} else {
			updates["logo_url"] = logoURL
		}
	}

	if len(updates) == 0 {
		httpresp.OK(c, tenant)
		return
	}

	if err := h.db.Model(&tenant).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_tenant", "Failed to update tenant.")
		return
	}

	httpresp.OK(c, tenant)
}
