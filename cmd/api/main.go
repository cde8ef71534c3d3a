package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/noah-isme/teamfit-api/api/swagger"
	"github.com/noah-isme/teamfit-api/internal/handler"
	"github.com/noah-isme/teamfit-api/internal/middleware"
	"github.com/noah-isme/teamfit-api/internal/repository"
	"github.com/noah-isme/teamfit-api/internal/service"
	"github.com/noah-isme/teamfit-api/pkg/cache"
	"github.com/noah-isme/teamfit-api/pkg/config"
	"github.com/noah-isme/teamfit-api/pkg/database"
	"github.com/noah-isme/teamfit-api/pkg/export"
	"github.com/noah-isme/teamfit-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/teamfit-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/teamfit-api/pkg/middleware/requestid"
	"github.com/noah-isme/teamfit-api/pkg/storage"
)

// @title TeamFit API
// @version 1.0.0
// @description Team training, weekly routines and athlete metrics.
// @BasePath /api
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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		_ = db.Close()
		logr.Fatal("failed to connect to redis", zap.Error(err))
	}

	engine, err := buildEngine(cfg, logr, db, redisClient)
	if err != nil {
		_ = closeAll(db, redisClient)
		logr.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	if err := serve(ctx, srv, cfg.ShutdownTimeout, logr, db, redisClient); err != nil {
		logr.Error("server stopped with error", zap.Error(err))
	}
}

func buildEngine(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client) (*gin.Engine, error) {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := cfg.Location()

	telemetry := service.NewTelemetryService()

	sportRepo := repository.NewSportRepository(db)
	coachRepo := repository.NewCoachRepository(db)
	athleteRepo := repository.NewAthleteRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	scheduleRepo := repository.NewRoutineExerciseRepository(db)
	statsRepo := repository.NewExerciseStatsRepository(db)
	metricRepo := repository.NewMetricRepository(db)
	assignmentRepo := repository.NewAthleteMetricRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	formulas := repository.NewFormulaCatalog(repository.NewFormulaRepository(db), cfg.Cache.FormulaCacheSizeMB, cfg.Cache.FormulaCacheTTL, logr)
	cacheRepo := repository.NewCacheRepository(redisClient)

	cacheSvc := service.NewCacheService(cacheRepo, telemetry, cfg.Cache.MetricBoardTTL, logr, cfg.Cache.Enabled)
	sportSvc := service.NewSportService(sportRepo, nil, logr)
	coachSvc := service.NewCoachService(coachRepo, nil, logr)
	athleteSvc := service.NewAthleteService(athleteRepo, nil, logr)
	teamSvc := service.NewTeamService(teamRepo, athleteRepo, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, teamRepo, athleteRepo, nil, logr)
	exerciseSvc := service.NewExerciseService(exerciseRepo, nil, logr)
	routineSvc := service.NewRoutineService(routineRepo, scheduleRepo, athleteRepo, exerciseRepo, nil, logr, loc)
	statsSvc := service.NewExerciseStatsService(statsRepo, scheduleRepo, athleteRepo, telemetry, nil, logr, loc)
	metricSvc := service.NewMetricService(metricRepo, formulas, cacheSvc, logr)
	assignmentSvc := service.NewAthleteMetricService(assignmentRepo, metricRepo, athleteRepo, formulas, cacheSvc, telemetry, nil, logr)
	reportSvc := service.NewReportService(assignmentSvc, athleteRepo, export.NewRenderer(), logr)

	store, err := storage.NewMediaStore(cfg.Media.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init media store: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Media.SignedURLSecret, cfg.Media.SignedURLTTL)
	mediaSvc := service.NewMediaService(photoRepo, exerciseRepo, store, signer, cfg.Media.MaxUploadBytes, cfg.APIPrefix, logr)

	system := handler.NewSystemHandler(telemetry, map[string]handler.Check{
		"postgres": db.PingContext,
		"redis":    cacheRepo.Ping,
	})

	r := gin.New()
	r.MaxMultipartMemory = cfg.Media.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(middleware.Actor(cfg.DefaultActor))
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(telemetry))
	r.Use(middleware.WithResponseMeta())

	handler.RegisterOps(r, system)
	handler.Register(r.Group(cfg.APIPrefix), handler.Handlers{
		Sports:         handler.NewSportHandler(sportSvc),
		Coaches:        handler.NewCoachHandler(coachSvc, teamSvc),
		Athletes:       handler.NewAthleteHandler(athleteSvc, teamSvc),
		Teams:          handler.NewTeamHandler(teamSvc),
		Enrollments:    handler.NewEnrollmentHandler(enrollmentSvc),
		Exercises:      handler.NewExerciseHandler(exerciseSvc),
		Routines:       handler.NewRoutineHandler(routineSvc),
		Metrics:        handler.NewMetricHandler(metricSvc),
		AthleteMetrics: handler.NewAthleteMetricHandler(assignmentSvc, reportSvc),
		ExerciseStats:  handler.NewExerciseStatsHandler(statsSvc),
		Media:          handler.NewMediaHandler(mediaSvc),
		System:         system,
	})

	if cfg.Env != config.EnvProduction {
		swagger.SwaggerInfo.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r, nil
}

// serve runs srv until ctx is done, then drains in-flight requests within
// timeout and closes the given resources.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logr *zap.Logger, closers ...io.Closer) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case err := <-errCh:
		runErr = err
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		runErr = multierr.Append(runErr, fmt.Errorf("shutdown http server: %w", err))
	}
	for range errCh {
	}
	return multierr.Append(runErr, closeAll(closers...))
}

func closeAll(closers ...io.Closer) error {
	var err error
	for _, c := range closers {
		if c == nil {
			continue
		}
		err = multierr.Append(err, c.Close())
	}
	return err
}
