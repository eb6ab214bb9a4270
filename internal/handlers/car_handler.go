package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/httpresp"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/models"
	"github.com/rentgrid/car-rental-api/internal/storage"
	ucReservation "github.com/rentgrid/car-rental-api/internal/usecase/reservation"
)

const maxGalleryImages = 10

type CarHandler struct {
	db           *gorm.DB
	uploader     *storage.Uploader
	availability *ucReservation.CheckAvailability
}

func NewCarHandler(
	db *gorm.DB,
	uploader *storage.Uploader,
	availability *ucReservation.CheckAvailability,
) *CarHandler {
	return &CarHandler{
		db:           db,
		uploader:     uploader,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCarRequest struct {
	Make         string   `form:"make" binding:"required"`
	Model        string   `form:"model" binding:"required"`
	Year         int      `form:"year" binding:"required,min=1900"`
	LicensePlate string   `form:"licensePlate" binding:"required"`
	Color        string   `form:"color"`
	Category     string   `form:"category" binding:"required"`
	PricePerDay  float64  `form:"pricePerDay" binding:"required,min=0"`
	Deposit      float64  `form:"depositAmount"`
	Transmission string   `form:"transmission"`
	FuelType     string   `form:"fuelType"`
	Seats        int      `form:"seats"`
	Features     []string `form:"features"`
	LocationID   *string  `form:"locationId"`
}

type UpdateCarRequest struct {
	Make         *string  `form:"make"`
	Model        *string  `form:"model"`
	Year         *int     `form:"year"`
	LicensePlate *string  `form:"licensePlate"`
	Color        *string  `form:"color"`
	Category     *string  `form:"category"`
	PricePerDay  *float64 `form:"pricePerDay"`
	Deposit      *float64 `form:"depositAmount"`
	Transmission *string  `form:"transmission"`
	FuelType     *string  `form:"fuelType"`
	Seats        *int     `form:"seats"`
	Features     []string `form:"features"`
	LocationID   *string  `form:"locationId"`
	Status       *string  `form:"status"`
}

type SearchCarsQuery struct {
	TenantID      string   `form:"tenantId" binding:"required"`
	Search        string   `form:"search"`
	Brand         string   `form:"brand"`
	Type          string   `form:"type"`
	StartingPrice *float64 `form:"startingPrice"`
	EndingPrice   *float64 `form:"endingPrice"`
	Transmission  string   `form:"transmission"`
	FuelType      string   `form:"fuelType"`
	LocationID    string   `form:"locationId"`
	Status        string   `form:"status"`
}

type UpdateCarStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *CarHandler) Create(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "Tenant context is required to create cars.")
		return
	}

	var req CreateCarRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	car := models.Car{
		TenantID:      tenantID,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		LicensePlate:  req.LicensePlate,
		Color:         req.Color,
		Category:      req.Category,
		PricePerDay:   req.PricePerDay,
		DepositAmount: req.Deposit,
		Transmission:  req.Transmission,
		FuelType:      req.FuelType,
		Seats:         req.Seats,
		Features:      pq.StringArray(req.Features),
		LocationID:    req.LocationID,
		Status:        models.CarStatusAvailable,
	}

	form, _ := c.MultipartForm()
	if form != nil {
		if primary := form.File["primaryImage"]; len(primary) > 0 {
			folder := fmt.Sprintf("tenants/%s/cars/primary", tenantID)
			imageURL, _, err := h.uploader.UploadImageWithThumbnail(c.Request.Context(), primary[0], folder)
			if err != nil {
				httperr.BadRequest(c, "image_upload_failed", err.Error())
				return
			}
			car.PrimaryImageURL = imageURL
		}

		gallery := form.File["galleryImages"]
		if len(gallery) > maxGalleryImages {
			httperr.BadRequest(c, "too_many_gallery_images", "At most 10 gallery images are allowed.")
			return
		}
		for _, file := range gallery {
			folder := fmt.Sprintf("tenants/%s/cars/gallery", tenantID)
			url, err := h.uploader.UploadImage(c.Request.Context(), file, folder)
			if err != nil {
				httperr.BadRequest(c, "image_upload_failed", err.Error())
				return
			}
			car.GalleryURLs = append(car.GalleryURLs, url)
		}
	}

	if err := h.db.Create(&car).Error; err != nil {
		httperr.Internal(c, "failed_to_create_car", "Failed to create car.")
		return
	}

	httpresp.Created(c, car)
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *CarHandler) List(c *gin.Context) {
	tenantID := c.Query("tenantId")
	if tenantID == "" {
		httperr.BadRequest(c, "missing_tenant_id", "tenantId query parameter is required.")
		return
	}

	q := h.db.Where("tenant_id = ?", tenantID)

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if locationID := c.Query("locationId"); locationID != "" {
		q = q.Where("location_id = ?", locationID)
	}

	var cars []models.Car
	if err := q.Order("created_at DESC").Find(&cars).Error; err != nil {
		httperr.Internal(c, "failed_to_fetch_cars", "Failed to fetch cars.")
		return
	}

	httpresp.List(c, cars)
}

// Search is the storefront browse endpoint: free text over
// make/model/category plus conditional filters, most-rented first.
func (h *CarHandler) Search(c *gin.Context) {
	var q SearchCarsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	query := h.db.Where("tenant_id = ?", q.TenantID)

	if q.Search != "" {
		term := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(category) LIKE ?",
			term, term, term,
		)
	}
	if q.Brand != "" {
		query = query.Where("make = ?", q.Brand)
	}
	if q.Type != "" {
		query = query.Where("category = ?", q.Type)
	}
	if q.StartingPrice != nil {
		query = query.Where("price_per_day >= ?", *q.StartingPrice)
	}
	if q.EndingPrice != nil {
		query = query.Where("price_per_day <= ?", *q.EndingPrice)
	}
	if q.Transmission != "" {
		query = query.Where("transmission = ?", q.Transmission)
	}
	if q.FuelType != "" {
		query = query.Where("fuel_type = ?", q.FuelType)
	}
	if q.LocationID != "" {
		query = query.Where("location_id = ?", q.LocationID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	} else {
		query = query.Where("status = ?", models.CarStatusAvailable)
	}

	var cars []models.Car
	if err := query.Order("rental_count DESC").Find(&cars).Error; err != nil {
		httperr.Internal(c, "failed_to_search_cars", "Failed to search cars.")
		return
	}

	httpresp.List(c, cars)
}

func (h *CarHandler) GetOne(c *gin.Context) {
	id := c.Param("id")

	var car models.Car
	if err := h.db.Where("id = ?", id).First(&car).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	httpresp.OK(c, car)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *CarHandler) Update(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "Tenant context is required to update cars.")
		return
	}
	id := c.Param("id")

	var car models.Car
	if err := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&car).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if req.Make != nil {
		updates["make"] = *req.Make
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.LicensePlate != nil {
		updates["license_plate"] = *req.LicensePlate
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.PricePerDay != nil {
		updates["price_per_day"] = *req.PricePerDay
	}
	if req.Deposit != nil {
		updates["deposit_amount"] = *req.Deposit
	}
	if req.Transmission != nil {
		updates["transmission"] = *req.Transmission
	}
	if req.FuelType != nil {
		updates["fuel_type"] = *req.FuelType
	}
	if req.Seats != nil {
		updates["seats"] = *req.Seats
	}
	if req.Features != nil {
		updates["features"] = pq.StringArray(req.Features)
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if req.Status != nil {
		if !models.IsValidCarStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_status", "Status must be one of: available, rented, maintenance.")
			return
		}
		updates["status"] = *req.Status
	}

	form, _ := c.MultipartForm()
	if form != nil {
		if primary := form.File["primaryImage"]; len(primary) > 0 {
			folder := fmt.Sprintf("tenants/%s/cars/primary", tenantID)
			imageURL, _, err := h.uploader.UploadImageWithThumbnail(c.Request.Context(), primary[0], folder)
			if err != nil {
				httperr.BadRequest(c, "image_upload_failed", err.Error())
				return
			}
			updates["primary_image_url"] = imageURL
		}

		if gallery := form.File["galleryImages"]; len(gallery) > 0 {
			if len(gallery) > maxGalleryImages {
				httperr.BadRequest(c, "too_many_gallery_images", "At most 10 gallery images are allowed.")
				return
			}
			urls := make([]string, 0, len(gallery))
			for _, file := range gallery {
				folder := fmt.Sprintf("tenants/%s/cars/gallery", tenantID)
				url, err := h.uploader.UploadImage(c.Request.Context(), file, folder)
				if err != nil {
					httperr.BadRequest(c, "image_upload_failed", err.Error())
					return
				}
				urls = append(urls, url)
			}
			updates["gallery_urls"] = pq.StringArray(urls)
		}
	}

	if len(updates) > 0 {
		if err := h.db.Model(&car).Updates(updates).Error; err != nil {
			httperr.Internal(c, "failed_to_update_car", "Failed to update car.")
			return
		}
	}

	httpresp.OK(c, car)
}

func (h *CarHandler) Delete(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "Tenant context is required to delete cars.")
		return
	}
	id := c.Param("id")

	result := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Car{})
	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_car", "Failed to delete car.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	httpresp.OK(c, gin.H{"id": id})
}

// ======================================================
// STATUS
// ======================================================

func (h *CarHandler) UpdateStatus(c *gin.Context) {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		httperr.BadRequest(c, "tenant_required", "Tenant context is required.")
		return
	}
	id := c.Param("id")

	var req UpdateCarStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Rejected before any persistence call.
	if !models.IsValidCarStatus(req.Status) {
		httperr.BadRequest(c, "invalid_status", "Status must be one of: available, rented, maintenance.")
		return
	}

	var car models.Car
	if err := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&car).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	car.Status = req.Status
	if err := h.db.Save(&car).Error; err != nil {
		httperr.Internal(c, "failed_to_update_car_status", "Failed to update car status.")
		return
	}

	httpresp.OK(c, car)
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability is public: it reports non-cancelled reservations whose
// date range intersects the requested one.
func (h *CarHandler) Availability(c *gin.Context) {
	id := c.Param("id")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate == "" || endDate == "" {
		httperr.BadRequest(c, "missing_dates", "startDate and endDate query parameters are required.")
		return
	}

	result, err := h.availability.Execute(c.Request.Context(), id, startDate, endDate)
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Invalid date range.")
			return
		}
		zap.L().Error("availability check failed", zap.String("car_id", id), zap.Error(err))
		httperr.Internal(c, "failed_to_check_availability", "Failed to check availability.")
		return
	}

	httpresp.OK(c, result)
}
