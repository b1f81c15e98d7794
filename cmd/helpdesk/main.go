package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk/internal/api/http"
	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/web"
	"github.com/spec-kit/helpdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var (
		userRepo   repository.UserRepository
		ticketRepo repository.TicketRepository
	)
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		ticketRepo = repository.NewTicketRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
		ticketRepo = repository.NewMemoryTicketRepository()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	var sessionStorage fiber.Storage
	if redis != nil {
		sessionStorage = persistence.NewSessionStorage(redis, cfg.Redis.SessionPrefix)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Hasher:     hasher,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	authService := service.NewAuthService(userRepo, hasher)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	if _, err := service.EnsureAdmin(ctx, userService, cfg.Bootstrap.AdminUsername, os.Stdout); err != nil {
		logger.Fatal("failed to bootstrap admin user", zap.Error(err))
	}

	cookieKey := cfg.Auth.SessionSecret
	if cookieKey == "" {
		logger.Warn("SESSION_SECRET not provided; sessions will not survive a restart")
		cookieKey = encryptcookie.GenerateKey()
	}

	views, err := web.NewViews()
	if err != nil {
		logger.Fatal("failed to load views", zap.Error(err))
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        views,
		Immutable:    true,
		ErrorHandler: httptransport.ErrorHandler,
	})

	sessions := auth.NewSessionBinder(auth.NewSessionStore(cfg.Auth, sessionStorage), userService, logger)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:    logger,
		Metrics:   metrics,
		Timeout:   cfg.App.RequestTimeout(),
		CookieKey: cookieKey,
		Sessions:  sessions,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService, sessions),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Users:   handlers.NewUsersHandler(userService),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("server listening", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
