package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ahmedbr1/zapvent-courts/api/swagger"
	"github.com/ahmedbr1/zapvent-courts/internal/handler"
	"github.com/ahmedbr1/zapvent-courts/internal/middleware"
	"github.com/ahmedbr1/zapvent-courts/internal/models"
	"github.com/ahmedbr1/zapvent-courts/internal/repository"
	"github.com/ahmedbr1/zapvent-courts/internal/service"
	"github.com/ahmedbr1/zapvent-courts/pkg/cache"
	"github.com/ahmedbr1/zapvent-courts/pkg/config"
	"github.com/ahmedbr1/zapvent-courts/pkg/database"
	"github.com/ahmedbr1/zapvent-courts/pkg/export"
	"github.com/ahmedbr1/zapvent-courts/pkg/logger"
	corsmiddleware "github.com/ahmedbr1/zapvent-courts/pkg/middleware/cors"
	reqidmiddleware "github.com/ahmedbr1/zapvent-courts/pkg/middleware/requestid"
)

// @title Zapvent Courts API
// @version 1.0.0
// @description Court availability and reservation service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Availability.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, court cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	courtRepo := repository.NewCourtRepository(db)
	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, redisClient != nil)
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	courtSvc := service.NewCourtService(courtRepo, validate, logr, service.CourtDefaults{
		SlotMinutes:   cfg.Courts.SlotMinutes,
		BufferMinutes: cfg.Courts.BufferMinutes,
		Timezone:      cfg.Courts.Timezone,
	})
	availabilitySvc := service.NewAvailabilityService(courtRepo, reservationRepo, cacheSvc, cfg.Availability.CacheTTL, metricsSvc, validate, logr)
	bookings := service.NewReservationValidator(courtRepo, userRepo, reservationRepo, validate, logr)
	reservationSvc := service.NewReservationService(bookings, courtRepo, reservationRepo, export.NewRenderer(), metricsSvc, validate, logr)

	courtHandler := handler.NewCourtHandler(courtSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admins := middleware.RequireRoles(models.RoleAdmin, models.RoleEventsOffice)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))
	{
		api.GET("/courts", courtHandler.List)
		api.POST("/courts", admins, courtHandler.Create)
		api.GET("/courts/:courtId", courtHandler.Get)
		api.GET("/courts/:courtId/availability", availabilityHandler.Get)
		api.POST("/courts/:courtId/reservations", reservationHandler.Reserve)
		api.GET("/courts/:courtId/reservations", admins, reservationHandler.ListForCourt)
		api.GET("/courts/:courtId/reservations/export", admins, reservationHandler.Export)
		api.GET("/reservations/me", reservationHandler.ListMine)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
