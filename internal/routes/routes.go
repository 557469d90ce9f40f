package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberhub/booking-api/internal/audit"
	"github.com/barberhub/booking-api/internal/cache"
	"github.com/barberhub/booking-api/internal/config"
	"github.com/barberhub/booking-api/internal/handlers"
	infraRepo "github.com/barberhub/booking-api/internal/infra/repository"
	"github.com/barberhub/booking-api/internal/middleware"
	"github.com/barberhub/booking-api/internal/models"
	"github.com/barberhub/booking-api/internal/payments"
	"github.com/barberhub/booking-api/internal/roles"
	"github.com/barberhub/booking-api/internal/storage"
	ucBooking "github.com/barberhub/booking-api/internal/usecase/booking"
	ucCatalog "github.com/barberhub/booking-api/internal/usecase/catalog"
	ucStore "github.com/barberhub/booking-api/internal/usecase/store"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	storeRepo := infraRepo.NewStoreGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	rdb := cache.NewClient(cfg)
	appointmentCache := cache.NewAppointmentCache(rdb, log)

	s3Storage := storage.NewS3(cfg)
	roleChecker := roles.NewChecker(db)

	var mpClient *payments.Client
	if cfg.MercadoPagoToken != "" {
		client, err := payments.New(cfg.MercadoPagoToken)
		if err != nil {
			log.Warn("mercado pago client unavailable", zap.Error(err))
		} else {
			mpClient = client
		}
	}

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	submitBookingUC := ucBooking.NewSubmitBooking(
		bookingRepo,
		auditDispatcher,
		appointmentCache,
	)

	confirmAppointmentUC := ucBooking.NewConfirmAppointment(
		bookingRepo,
		auditDispatcher,
		appointmentCache,
	)

	completeAppointmentUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		auditDispatcher,
		appointmentCache,
	)

	cancelAppointmentUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
		appointmentCache,
	)

	listUserAppointmentsUC := ucBooking.NewListUserAppointments(
		bookingRepo,
		appointmentCache,
	)

	barberTimelineUC := ucBooking.NewBarberTimeline(bookingRepo)

	// ======================================================
	// USE CASES — CATALOG / STORE
	// ======================================================
	listBarbersUC := ucCatalog.NewListActiveBarbers(bookingRepo)
	listServicesUC := ucCatalog.NewListActiveServices(bookingRepo)

	checkoutUC := ucStore.NewCheckout(storeRepo, mpClient, auditDispatcher, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, roleChecker, s3Storage)

	catalogHandler := handlers.NewCatalogHandler(listBarbersUC, listServicesUC, bookingRepo)
	productHandler := handlers.NewProductHandler(db)
	planHandler := handlers.NewPlanHandler(db, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		submitBookingUC,
		listUserAppointmentsUC,
		cancelAppointmentUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		bookingRepo,
		barberTimelineUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
	)

	orderHandler := handlers.NewOrderHandler(db, checkoutUC)

	adminBarberHandler := handlers.NewAdminBarberHandler(db, auditDispatcher, s3Storage)
	adminServiceHandler := handlers.NewAdminServiceHandler(db, auditDispatcher)
	adminProductHandler := handlers.NewAdminProductHandler(db, auditDispatcher, s3Storage)
	adminOrderHandler := handlers.NewAdminOrderHandler(db, auditDispatcher)
	adminPlanHandler := handlers.NewAdminPlanHandler(db, auditDispatcher)
	adminUserHandler := handlers.NewAdminUserHandler(db, auditDispatcher)
	auditLogHandler := handlers.NewAuditLogHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/barbers", catalogHandler.ListBarbers)
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/slots", catalogHandler.ListSlots)

		api.GET("/products", productHandler.List)
		api.GET("/products/categories", productHandler.Categories)

		api.GET("/plans", planHandler.ListActive)

		// ------------------------------
		// PRIVATE (any authenticated user)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateProfile)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.POST("/orders", orderHandler.Checkout)
			secured.GET("/orders", orderHandler.ListMine)

			secured.POST("/subscriptions", planHandler.Subscribe)
			secured.GET("/subscriptions/me", planHandler.MySubscription)

			// ------------------------------
			// BARBER (staff chair linked to the login)
			// ------------------------------
			barberArea := secured.Group("/schedule")
			barberArea.Use(middleware.RequireRole(roleChecker, models.RoleBarber))
			{
				barberArea.GET("/week", scheduleHandler.Week)
				barberArea.PATCH("/appointments/:id/confirm", scheduleHandler.Confirm)
				barberArea.PATCH("/appointments/:id/complete", scheduleHandler.Complete)
				barberArea.PATCH("/appointments/:id/cancel", scheduleHandler.Cancel)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(roleChecker, models.RoleAdmin))
			{
				admin.GET("/barbers", adminBarberHandler.List)
				admin.POST("/barbers", adminBarberHandler.Create)
				admin.PATCH("/barbers/:id", adminBarberHandler.Update)
				admin.POST("/barbers/:id/image", adminBarberHandler.UploadImage)

				admin.GET("/services", adminServiceHandler.List)
				admin.POST("/services", adminServiceHandler.Create)
				admin.PATCH("/services/:id", adminServiceHandler.Update)

				admin.GET("/products", adminProductHandler.List)
				admin.POST("/products", adminProductHandler.Create)
				admin.PATCH("/products/:id", adminProductHandler.Update)
				admin.POST("/products/:id/image", adminProductHandler.UploadImage)

				admin.GET("/orders", adminOrderHandler.List)
				admin.PATCH("/orders/:id/status", adminOrderHandler.UpdateStatus)

				admin.GET("/plans", adminPlanHandler.List)
				admin.POST("/plans", adminPlanHandler.Create)
				admin.PATCH("/plans/:id", adminPlanHandler.Update)

				admin.GET("/users", adminUserHandler.List)
				admin.POST("/users/:id/roles", adminUserHandler.GrantRole)
				admin.DELETE("/users/:id/roles/:role", adminUserHandler.RevokeRole)

				admin.GET("/audit-logs", auditLogHandler.List)
			}
		}
	}
}
