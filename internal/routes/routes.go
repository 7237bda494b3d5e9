package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/equipment-lending/internal/audit"
	"github.com/BruksfildServices01/equipment-lending/internal/config"
	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/handlers"
	"github.com/BruksfildServices01/equipment-lending/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/equipment-lending/internal/infra/repository"
	"github.com/BruksfildServices01/equipment-lending/internal/logger"
	"github.com/BruksfildServices01/equipment-lending/internal/metrics"
	"github.com/BruksfildServices01/equipment-lending/internal/middleware"
	"github.com/BruksfildServices01/equipment-lending/internal/storage"
	"github.com/BruksfildServices01/equipment-lending/internal/suggest"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
	ucEquipment "github.com/BruksfildServices01/equipment-lending/internal/usecase/equipment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	var m *metrics.Metrics
	if cfg.EnableMetrics {
		m = metrics.New()
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	equipmentRepo := infraRepo.NewEquipmentGormRepository(db)

	clock := timezone.SystemClock(cfg.Timezone)
	auditLogger := audit.New(clock, m, logger.New("audit"))

	var locker lock.Locker = lock.NewLocal(cfg.LockWait)
	if cfg.RedisURL != "" {
		redisLock, err := lock.NewRedisFromURL(context.Background(), cfg.RedisURL, cfg.LockTTL, cfg.LockWait)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		locker = redisLock
	}

	var suggester suggest.Suggester = suggest.Disabled{}
	if cfg.SuggestAPIURL != "" {
		suggester = suggest.NewClient(cfg.SuggestAPIURL, cfg.SuggestAPIKey, cfg.SuggestModel, cfg.SuggestTimeout)
	}

	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		uploader = storage.NewS3Uploader(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	// ======================================================
	// 🧠 USE CASES - EQUIPMENT
	// ======================================================
	uc := &handlers.UseCases{
		Register:     ucEquipment.NewRegister(equipmentRepo, auditLogger, clock),
		BulkRegister: ucEquipment.NewBulkRegister(equipmentRepo, auditLogger, clock),
		Checkout: ucEquipment.NewCheckout(
			equipmentRepo,
			locker,
			auditLogger,
			clock,
			domain.LoanPolicy{StudioPlace: cfg.StudioPlaceLabel},
		),
		Checkin:      ucEquipment.NewCheckin(equipmentRepo, locker, auditLogger),
		ReportRepair: ucEquipment.NewReportRepair(equipmentRepo, locker, auditLogger),
		MarkRepaired: ucEquipment.NewMarkRepaired(equipmentRepo, locker, auditLogger),
		Update:       ucEquipment.NewUpdateDetails(equipmentRepo, locker, auditLogger),
		Delete:       ucEquipment.NewDelete(equipmentRepo, locker, logger.New("equipment")),
		FollowUp: ucEquipment.NewFollowUpCheck(
			equipmentRepo,
			locker,
			clock,
			cfg.FollowUpDays,
			m,
			logger.New("followup"),
		),
		Queries: ucEquipment.NewQueries(equipmentRepo),
		Suggest: ucEquipment.NewSuggestReplacement(equipmentRepo, suggester),
		Export:  ucEquipment.NewExport(equipmentRepo, uploader, clock, cfg.PublicBaseURL),

		Location:      timezone.Location(cfg.Timezone),
		PublicBaseURL: cfg.PublicBaseURL,
		Log:           logger.New("handlers"),
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	registerAPI(r, uc, middleware.AuthMiddleware(cfg), authHandler, meHandler)
}

func registerAPI(
	r *gin.Engine,
	uc *handlers.UseCases,
	auth gin.HandlerFunc,
	authHandler *handlers.AuthHandler,
	meHandler *handlers.MeHandler,
) {
	equipmentHandler := handlers.NewEquipmentHandler(uc)
	publicHandler := handlers.NewPublicHandler(uc)
	dashboardHandler := handlers.NewDashboardHandler(uc)
	historyHandler := handlers.NewHistoryHandler(uc)
	exportHandler := handlers.NewExportHandler(uc)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 QR ACTION PAGE (PUBLIC)
		// ------------------------------
		publicAPI := api.Group("/public/equipment")
		{
			publicAPI.GET("/:id", publicHandler.Get)
			publicAPI.POST("/:id/checkout", publicHandler.Checkout)
			publicAPI.POST("/:id/checkin", publicHandler.Checkin)
			publicAPI.POST("/:id/report-repair", publicHandler.ReportRepair)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 ADMIN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(auth)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/dashboard", dashboardHandler.Get)

			secured.GET("/equipment", equipmentHandler.List)
			secured.POST("/equipment", equipmentHandler.Create)
			secured.POST("/equipment/bulk", equipmentHandler.BulkCreate)
			secured.POST("/equipment/bulk/upload", equipmentHandler.BulkUpload)
			secured.GET("/equipment/template", equipmentHandler.Template)

			secured.GET("/equipment/:id", equipmentHandler.Get)
			secured.PUT("/equipment/:id", equipmentHandler.Update)
			secured.DELETE("/equipment/:id", equipmentHandler.Delete)
			secured.GET("/equipment/:id/logs", equipmentHandler.Logs)

			// ------------------------------
			// TRANSITIONS
			// ------------------------------
			secured.POST("/equipment/:id/checkout", equipmentHandler.Checkout)
			secured.POST("/equipment/:id/checkin", equipmentHandler.Checkin)
			secured.POST("/equipment/:id/report-repair", equipmentHandler.ReportRepair)
			secured.POST("/equipment/:id/mark-repaired", equipmentHandler.MarkRepaired)

			// ------------------------------
			// HISTORY + EXPORTS
			// ------------------------------
			secured.GET("/history", historyHandler.List)
			secured.GET("/history/export", exportHandler.History)
			secured.GET("/qr-codes/export", exportHandler.QRCodes)
		}
	}
}
