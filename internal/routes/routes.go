package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentgrid/car-rental-api/internal/audit"
	"github.com/rentgrid/car-rental-api/internal/cache"
	"github.com/rentgrid/car-rental-api/internal/config"
	"github.com/rentgrid/car-rental-api/internal/handlers"
	"github.com/rentgrid/car-rental-api/internal/infra/repository"
	"github.com/rentgrid/car-rental-api/internal/metrics"
	"github.com/rentgrid/car-rental-api/internal/middleware"
	"github.com/rentgrid/car-rental-api/internal/storage"
	ucReservation "github.com/rentgrid/car-rental-api/internal/usecase/reservation"
)

// RegisterRoutes wires repositories, use cases and handlers onto the
// gin engine. cacheClient may be nil when redis is unavailable.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	uploader *storage.Uploader,
	cacheClient *cache.Client,
) {
	// ======================================================
	// DEPENDENCIES
	// ======================================================

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	reservationRepo := repository.NewReservationGormRepository(db)

	createReservation := ucReservation.NewCreate(reservationRepo, auditDispatcher)
	listReservations := ucReservation.NewList(reservationRepo)
	getReservation := ucReservation.NewGet(reservationRepo)
	updateReservationStatus := ucReservation.NewUpdateStatus(reservationRepo, auditDispatcher)
	cancelReservation := ucReservation.NewCancel(reservationRepo, auditDispatcher)
	checkAvailability := ucReservation.NewCheckAvailability(reservationRepo)

	authHandler := handlers.NewAuthHandler(db, cfg)
	tenantHandler := handlers.NewTenantHandler(db, uploader)
	carHandler := handlers.NewCarHandler(db, uploader, checkAvailability)
	locationHandler := handlers.NewLocationHandler(db)
	reservationHandler := handlers.NewReservationHandler(
		createReservation,
		listReservations,
		getReservation,
		updateReservationStatus,
		cancelReservation,
		cacheClient,
	)
	dashboardHandler := handlers.NewDashboardHandler(db, cacheClient)

	// ======================================================
	// OPERATIONAL
	// ======================================================

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// PUBLIC (storefront)
	// ======================================================

	public := r.Group("/api")
	{
		public.GET("/tenants/by-slug/:slug", tenantHandler.BySlug)

		public.GET("/cars", carHandler.List)
		public.GET("/cars/search", carHandler.Search)
		public.GET("/cars/:id", carHandler.GetOne)
		public.GET("/cars/:id/availability", carHandler.Availability)

		public.GET("/locations", locationHandler.List)
	}

	// ======================================================
	// AUTH
	// ======================================================

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// ======================================================
	// AUTHENTICATED
	// ======================================================

	secured := r.Group("/api")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/auth/me", authHandler.Me)
		secured.POST("/auth/refresh", authHandler.Refresh)
		secured.POST("/auth/change-password", authHandler.ChangePassword)

		secured.POST("/tenants", tenantHandler.Create)
		secured.GET("/tenants", tenantHandler.List)
		secured.GET("/tenants/me", tenantHandler.GetMe)
		secured.PATCH("/tenants/me", tenantHandler.UpdateMe)

		// Fleet management is tenant-scoped; handlers enforce the tenant
		// match on every row they touch.
		secured.POST("/cars", carHandler.Create)
		secured.PATCH("/cars/:id", carHandler.Update)
		secured.DELETE("/cars/:id", carHandler.Delete)
		secured.PATCH("/cars/:id/status", carHandler.UpdateStatus)

		secured.POST("/locations", locationHandler.Create)
		secured.DELETE("/locations/:id", locationHandler.Delete)

		secured.POST("/reservations", reservationHandler.Create)
		secured.GET("/reservations", reservationHandler.List)
		secured.GET("/reservations/:id", reservationHandler.GetOne)

		secured.GET("/dashboard/stats", dashboardHandler.Stats)

		// Booking lifecycle decisions are restricted to tenant admins.
		admin := secured.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)
			admin.DELETE("/reservations/:id", reservationHandler.Delete)
		}
	}
}
