package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sanavia/clinica/internal/config"
	v1 "github.com/sanavia/clinica/internal/handler/v1"
	"github.com/sanavia/clinica/internal/offline"
	"github.com/sanavia/clinica/internal/repository"
	"github.com/sanavia/clinica/internal/service"
	"github.com/sanavia/clinica/pkg/auth"
	"github.com/sanavia/clinica/pkg/database"
	"github.com/sanavia/clinica/pkg/logger"
	"github.com/sanavia/clinica/pkg/metrics"
	"github.com/sanavia/clinica/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(cfg.Tracing)
		if err != nil {
			log.Fatal("tracer init failed", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("database migration failed", zap.Error(err))
	}

	col := metrics.NewCollector(cfg.App.Name)
	jwtManager := auth.NewJWTManager(cfg.JWT)

	patientRepo := repository.NewPatientRepo(db)
	vitalsRepo := repository.NewVitalsRepo(db)
	traceRepo := repository.NewTraceRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	buffer := offline.NewBuffer(cfg.Offline.Path, cfg.Offline.MaxRetryDelay)
	sweeper := offline.NewSweeper(buffer, vitalsRepo, cfg.Offline.SweepInterval, log, col)

	traceSvc := service.NewTraceService(traceRepo, log, col)
	patientSvc := service.NewPatientService(patientRepo, historyRepo, traceSvc, log, col)
	vitalsSvc := service.NewVitalsService(vitalsRepo, patientRepo, historyRepo, traceSvc, buffer, cfg.Vitals, log, col)
	userSvc := service.NewUserService(userRepo, jwtManager, log)

	router := v1.NewRouter(v1.RouterDeps{
		Patients:   v1.NewPatientHandler(patientSvc, traceSvc),
		Vitals:     v1.NewVitalsHandler(vitalsSvc),
		Traces:     v1.NewTraceHandler(traceSvc),
		Users:      v1.NewUserHandler(userSvc),
		JWTManager: jwtManager,
		Collector:  col,
		Log:        log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped")
}
