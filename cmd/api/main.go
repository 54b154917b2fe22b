package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/staffdesk/admin/internal/api"
	"github.com/staffdesk/admin/internal/api/handlers"
	mw "github.com/staffdesk/admin/internal/api/middleware"
	"github.com/staffdesk/admin/internal/api/validators"
	"github.com/staffdesk/admin/internal/flash"
	"github.com/staffdesk/admin/internal/repository"
	"github.com/staffdesk/admin/internal/services"
	"github.com/staffdesk/admin/internal/web"
	"github.com/staffdesk/admin/pkg/config"
	"github.com/staffdesk/admin/pkg/database"
	"github.com/staffdesk/admin/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting staffdesk admin",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_driver", cfg.DBDriver),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Connect to database
	db, err := database.Open(ctx, database.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		Verbose:         cfg.IsDevelopment(),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()
	log.Info("Database connected successfully")

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	flashes, closeFlashes := newFlashStore(ctx, cfg, log)
	defer closeFlashes()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}
	base := handlers.NewBase(renderer, flashes, validators.New())

	var limiter *mw.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.TrustProxy = cfg.RateLimitTrustProxy
		go limiter.Run(ctx)
	}

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		RateLimiter:      limiter,
		HealthHandler:    handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		EmployeesHandler: handlers.NewEmployeesHandler(base, services.NewEmployeeService(employeeRepo, lookupRepo)),
		ClientsHandler:   handlers.NewClientsHandler(base, services.NewClientService(clientRepo)),
		ProjectsHandler:  handlers.NewProjectsHandler(base, services.NewProjectService(projectRepo, clientRepo)),
		MembersHandler:   handlers.NewMembersHandler(base, services.NewMemberService(projectRepo, employeeRepo, memberRepo)),
		TasksHandler:     handlers.NewTasksHandler(base, services.NewTaskService(taskRepo, projectRepo, employeeRepo)),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}

// newFlashStore picks the flash backend named by FLASH_STORE. The returned
// func releases whatever the store holds open.
func newFlashStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (flash.Store, func()) {
	secure := !cfg.IsDevelopment()

	if cfg.FlashStore != "redis" {
		s := flash.NewCookieStore([]byte(cfg.FlashSecret), cfg.FlashTTL)
		s.Secure = secure
		return s, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.RedisAddr))
	}
	log.Info("Redis connected successfully", zap.String("addr", cfg.RedisAddr))

	s := flash.NewRedisStore(client, cfg.FlashTTL)
	s.Secure = secure
	return s, func() { _ = client.Close() }
}
