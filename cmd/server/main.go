package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventrsvp/config"
	_ "eventrsvp/docs"
	"eventrsvp/internal/adapters/auth"
	"eventrsvp/internal/adapters/blocklist"
	httpdelivery "eventrsvp/internal/delivery/http"
	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/repository/postgres"
	"eventrsvp/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Event RSVP API
// @version 1.0
// @description Events, tags, accounts and RSVPs.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return err
	}

	revoked, closeBlocklist, err := newBlocklist(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBlocklist()

	authenticator := auth.NewJWTAuthenticator(auth.JWTConfig{
		Secret:       cfg.JWTSecret,
		AccessTTL:    cfg.AccessTTL,
		RefreshTTL:   cfg.RefreshTTL,
		AdminUserIDs: cfg.AdminUserIDs,
	}, revoked)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)

	// Services
	userService := services.NewUserService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), authenticator)
	eventService := services.NewEventService(eventRepo, tagRepo)
	tagService := services.NewTagService(tagRepo, eventRepo)
	rsvpService := services.NewRSVPService(rsvpRepo, eventRepo)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:  controllers.NewAuthController(logger, userService),
		User:  controllers.NewUserController(logger, userService),
		Event: controllers.NewEventController(logger, eventService),
		Tag:   controllers.NewTagController(logger, tagService),
		RSVP:  controllers.NewRSVPController(logger, rsvpService),
	}, authenticator, logger)

	var handler http.Handler = router
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.Logging(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newBlocklist returns the Redis blocklist when REDIS_URL is set so revocations
// are shared across processes, and an in-memory one otherwise.
func newBlocklist(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Blocklist, func(), error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set; token revocations are kept in memory and not shared between instances")
		return blocklist.NewMemory(), func() {}, nil
	}
	rdb, err := blocklist.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using redis token blocklist")
	return blocklist.NewRedis(rdb), func() { _ = rdb.Close() }, nil
}
