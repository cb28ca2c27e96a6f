package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Varun5711/taskflow/internal/auth"
	"github.com/Varun5711/taskflow/internal/config"
	"github.com/Varun5711/taskflow/internal/database"
	"github.com/Varun5711/taskflow/internal/events"
	"github.com/Varun5711/taskflow/internal/handlers"
	"github.com/Varun5711/taskflow/internal/lock"
	"github.com/Varun5711/taskflow/internal/logger"
	"github.com/Varun5711/taskflow/internal/middleware"
	redisclient "github.com/Varun5711/taskflow/internal/redis"
	"github.com/Varun5711/taskflow/internal/service"
	"github.com/Varun5711/taskflow/internal/storage"
)

func main() {
	log := logger.New("auth-service")
	log.SetStdLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set, using the development default")
	}

	rdb := redisclient.ConnectOptional(ctx, redisclient.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	if rdb != nil {
		defer func() {
			log.Debug("Redis pool stats at shutdown: %v", redisclient.Stats(rdb))
			rdb.Close()
		}()
	}

	users, closeStore, err := openStore(ctx, cfg, rdb, log)
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Services.StorageDriver, err)
	}
	defer closeStore()

	router, err := newRouter(cfg, users, rdb, log)
	if err != nil {
		log.Fatal("Failed to build router: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Services.Port,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("TaskFlow API listening on :%s (storage=%s)", cfg.Services.Port, cfg.Services.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down auth service...")
	case err := <-serverErr:
		log.Error("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Services.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown: %v", err)
		os.Exit(1)
	}

	log.Info("Auth service stopped")
}

// newRouter wires services, handlers and middleware over users. rdb may be
// nil, which disables rate limiting and event publishing.
func newRouter(cfg *config.Config, users storage.UserStore, rdb *goredis.Client, log *logger.Logger) (*handlers.Router, error) {
	proxies, err := middleware.NewProxyTrust(cfg.Services.TrustedProxies)
	if err != nil {
		return nil, err
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, auth.TokenTTL)
	authService := service.NewAuthService(users, jwtManager, auth.NewPasswordHasher(cfg.Auth.BcryptCost))

	var publisher events.Publisher = events.NopPublisher{}
	var limiter *middleware.RateLimiter
	if rdb != nil {
		publisher = events.NewStreamProducer(rdb, cfg.Redis.StreamName, cfg.Redis.StreamMaxLen)
		if cfg.RateLimit.Enabled {
			limiter = middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, log.With("component", "ratelimit"))
		}
	}

	return &handlers.Router{
		Auth:        handlers.NewAuthHandler(authService, publisher, log.With("component", "auth-handler")),
		Health:      handlers.NewHealthHandler(),
		Docs:        handlers.NewSwaggerHandler(),
		RequireAuth: middleware.NewAuthMiddleware(jwtManager, log.With("component", "auth-middleware")),
		RateLimiter: limiter,
		Proxies:     proxies,
		Log:         log.With("component", "http"),
	}, nil
}

// openStore returns the configured UserStore and a func releasing it.
func openStore(ctx context.Context, cfg *config.Config, rdb *goredis.Client, log *logger.Logger) (storage.UserStore, func(), error) {
	if cfg.Services.StorageDriver == config.DriverMemory {
		log.Warn("Using in-memory storage; users are lost on restart")
		return storage.NewMemoryStorage(), func() {}, nil
	}

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("Connected to Postgres (%d replicas)", len(cfg.Database.ReplicaDSNs))

	if cfg.Database.AutoMigrate {
		var locker database.Locker
		if rdb != nil {
			locker = lock.NewDistributedLock(rdb, cfg.Redis.LockKey, cfg.Redis.LockTTL)
		}

		migrateCtx, cancel := context.WithTimeout(ctx, cfg.Redis.LockTTL)
		defer cancel()

		sqlDB := dbManager.SQLDB()
		defer sqlDB.Close()

		if err := database.RunMigrations(migrateCtx, sqlDB, locker, 500*time.Millisecond, log.Slog()); err != nil {
			dbManager.Close()
			return nil, nil, err
		}
		log.Info("Database schema is up to date")
	}

	return storage.NewUserStorage(dbManager), func() {
		log.Debug("DB pool stats at shutdown: %v", dbManager.Stats())
		dbManager.Close()
	}, nil
}
