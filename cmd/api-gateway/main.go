package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/summit-sms/timetable-engine/api/swagger"
	internalhandler "github.com/summit-sms/timetable-engine/internal/handler"
	internalmiddleware "github.com/summit-sms/timetable-engine/internal/middleware"
	"github.com/summit-sms/timetable-engine/internal/repository"
	"github.com/summit-sms/timetable-engine/internal/service"
	"github.com/summit-sms/timetable-engine/pkg/cache"
	"github.com/summit-sms/timetable-engine/pkg/config"
	"github.com/summit-sms/timetable-engine/pkg/logger"
	corsmiddleware "github.com/summit-sms/timetable-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/summit-sms/timetable-engine/pkg/middleware/requestid"
)

// @title Timetable Engine API
// @version 1.0.0
// @description Weekly school timetable generation, validation and sorting over a boolean constraint solver
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	var cacheRepo service.CacheRepository
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("schedule result cache disabled", "error", err)
	} else {
		defer client.Close() //nolint:errcheck
		cacheRepo = repository.NewCacheRepository(client, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.CacheTTL, logr, cacheRepo != nil)

	schedulerSvc := service.NewScheduleGeneratorService(
		cacheSvc,
		metricsSvc,
		nil,
		logr,
		service.ScheduleGeneratorConfig{
			Days:        cfg.Scheduler.Days,
			Periods:     cfg.Scheduler.Periods,
			TimeLimit:   cfg.Scheduler.TimeLimit,
			Workers:     cfg.Scheduler.Workers,
			OverloadCap: cfg.Scheduler.OverloadCap,
			CacheTTL:    cfg.Scheduler.CacheTTL,
		},
	)
	schedulerHandler := internalhandler.NewScheduleGeneratorHandler(schedulerSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.POST("/schedule", schedulerHandler.Generate)
	api.POST("/validate", schedulerHandler.Validate)
	api.POST("/optimize", schedulerHandler.Optimize)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
