package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hireflow/assessment-api/config"
	"github.com/hireflow/assessment-api/database"
	adminctrl "github.com/hireflow/assessment-api/internal/controller/admin"
	candidatectrl "github.com/hireflow/assessment-api/internal/controller/candidate"
	"github.com/hireflow/assessment-api/internal/logger"
	"github.com/hireflow/assessment-api/internal/model"
	"github.com/hireflow/assessment-api/internal/repository"
	"github.com/hireflow/assessment-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Assessment Platform API
// @version 1.0
// @description Applicant assessment platform: test authoring, candidate invitations and the submission scoring pipeline with AI-judged written answers.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewTestRepository,
			repository.NewResultRepository,
			repository.NewInvitationRepository,
			repository.NewStudentRepository,
			repository.NewCandidateRepository,
			repository.NewStatsRepository,
		),

		// Services
		fx.Provide(
			service.NewGeminiJudge,
			func(cfg *config.Config, judge service.JudgeClient) service.EvaluatorRegistry {
				return service.NewEvaluatorRegistry(judge, cfg.AIMinScore)
			},
			service.NewNameResolver,
			service.NewSubmissionService,
			service.NewAdminService,
			service.NewCandidateTestService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminController,
			candidatectrl.NewSubmissionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Tag every request with an id so pipeline logs can be correlated.
	r.Use(func(ctx *gin.Context) {
		requestID := ctx.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set("request_id", requestID)
		ctx.Header("X-Request-ID", requestID)
		ctx.Next()
	})

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("http_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	submissionCtrl *candidatectrl.SubmissionController,
) {
	adminGroup := router.Group("/api/v1/admin")
	{
		adminGroup.POST("/tests", adminCtrl.CreateTest)
		adminGroup.POST("/invitations", adminCtrl.CreateInvitation)
	}

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/tests/:test_id", submissionCtrl.GetTest)
		apiGroup.GET("/tests/:test_id/results", submissionCtrl.ListResults)
		apiGroup.POST("/submissions", submissionCtrl.Submit)
		apiGroup.GET("/results/:result_id", submissionCtrl.GetResult)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Section{},
		&model.Question{},
		&model.Invitation{},
		&model.Student{},
		&model.Candidate{},
		&model.CandidateStats{},
		&model.Result{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
