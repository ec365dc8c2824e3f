package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dsf-platform/advisor-api/api/swagger"
	"github.com/dsf-platform/advisor-api/internal/handler"
	"github.com/dsf-platform/advisor-api/internal/middleware"
	"github.com/dsf-platform/advisor-api/internal/repository"
	"github.com/dsf-platform/advisor-api/internal/schedule"
	"github.com/dsf-platform/advisor-api/internal/service"
	"github.com/dsf-platform/advisor-api/pkg/cache"
	"github.com/dsf-platform/advisor-api/pkg/config"
	"github.com/dsf-platform/advisor-api/pkg/database"
	"github.com/dsf-platform/advisor-api/pkg/logger"
	corsmiddleware "github.com/dsf-platform/advisor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dsf-platform/advisor-api/pkg/middleware/requestid"
)

// @title Course Advisor API
// @version 0.1.0
// @description Course eligibility, section selection and schedule assembly service
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to warehouse", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to session store", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	students := repository.NewStudentRepository(db)
	offerings := repository.NewOfferingRepository(db)
	sessions := repository.NewSessionRepository(redisClient, cfg.Sessions.KeyPrefix, cfg.Sessions.TTL, logr)

	builder := schedule.NewBuilder(cfg.Advisor.SectionSeparator, cfg.Advisor.ApplyConstraints, logr)

	sessionSvc := service.NewSessionService(sessions, validate, logr)
	advisorSvc := service.NewAdvisorService(students, offerings, sessions, builder, metricsSvc, validate, logr)
	exportSvc := service.NewExportService(sessions, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	sessionHandler := handler.NewSessionHandler(sessionSvc)
	advisorHandler := handler.NewAdvisorHandler(advisorSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.DELETE("/sessions/:id", sessionHandler.Delete)
		api.PUT("/sessions/:id/constraints", sessionHandler.SetConstraints)
		api.GET("/sessions/:id/student", advisorHandler.StudentDetails)
		api.POST("/sessions/:id/selections", advisorHandler.SelectCourses)
		api.POST("/sessions/:id/schedule", advisorHandler.FinalizeSchedule)
		api.GET("/students/:id/enrollable-courses", advisorHandler.EnrollableCourses)
		api.GET("/courses/:id/sections", advisorHandler.CourseSections)
		if cfg.Export.Enabled {
			api.GET("/sessions/:id/schedule/export", exportHandler.Export)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
