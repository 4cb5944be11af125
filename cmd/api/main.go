// @title       Kanso Planner API
// @version     1.0
// @description Weekly habit planner: habit lists, a seven-day schedule and a habit library.
// @BasePath    /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	adapterHTTP "github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/ws"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-planner/internal/config"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
	"github.com/comitanigiacomo/kanso-planner/internal/core/workers"
	"github.com/comitanigiacomo/kanso-planner/internal/logging"
)

type application struct {
	router   *gin.Engine
	backend  *repository.Backend
	worker   *workers.ReconcileWorker
	hub      *ws.Hub
	schedule *services.ScheduleService
}

func newApplication(ctx context.Context, cfg *config.Config, clock domain.Clock, logger *slog.Logger) (*application, error) {
	startTime := time.Now()

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)

	listService := services.NewListService(backend.Store, logger)
	listService.SetNotifier(hub)

	scheduleService := services.NewScheduleService(backend.Store, listService, clock, logger)
	scheduleService.SetNotifier(hub)

	libraryService := services.NewLibraryService(backend.Store, logger)
	libraryService.SetNotifier(hub)

	if err := scheduleService.LoadAndReconcile(ctx); err != nil {
		logger.Warn("initial schedule load failed, starting unassigned", "error", err)
	}
	if _, err := libraryService.Load(ctx); err != nil {
		logger.Warn("initial library load failed, using defaults", "error", err)
	}

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(cfg.Auth.OwnerPasswordHash, tokenService)
	if !authService.Enabled() {
		logger.Warn("OWNER_PASSWORD_HASH not set, API is unauthenticated")
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService),
		ListHandler:     adapterHTTP.NewListHandler(listService),
		ScheduleHandler: adapterHTTP.NewScheduleHandler(scheduleService),
		LibraryHandler:  adapterHTTP.NewLibraryHandler(libraryService),
		AuthService:     authService,
		TokenService:    tokenService,
		ChangeFeed:      ws.Handler(hub, nil),
		Store:           backend.Store,
		Redis:           backend.Redis,
		KeyPrefix:       cfg.Redis.KeyPrefix,
		RateLimit:       cfg.RateLimit,
		RateWindow:      cfg.RateWindow,
		StartTime:       startTime,
		Logger:          logger,
	})

	return &application{
		router:   router,
		backend:  backend,
		worker:   workers.NewReconcileWorker(scheduleService, cfg.ReconcileInterval, logger),
		hub:      hub,
		schedule: scheduleService,
	}, nil
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default: $PLANNER_CONFIG)")
	envFile := flag.String("env-file", ".env", "path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, domain.SystemClock{Location: loc}, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.backend.Close()

	app.worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("kanso planner listening", "addr", "http://localhost:"+cfg.Port, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	<-app.worker.Done()

	logger.Info("server stopped gracefully")
}
