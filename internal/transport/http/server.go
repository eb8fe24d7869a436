package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"skitourspots/internal/cache"
	"skitourspots/internal/captcha"
	"skitourspots/internal/config"
	"skitourspots/internal/database"
	"skitourspots/internal/handler"
	"skitourspots/internal/logger"
	"skitourspots/internal/redis"
	"skitourspots/internal/repository"
	"skitourspots/internal/service"
)

// Run assembles the application and serves HTTP until the listener fails.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *repository.Store
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage, all data is lost on restart")
		store = repository.NewMemoryStore()
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		store = repository.NewPostgresStore(db)
	}

	var spotCache cache.SpotCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer redisClient.Close()

		if err := redisClient.Ping(ctx); err != nil {
			return err
		}
		spotCache = cache.NewSpotCache(redisClient.Client, log)
	} else {
		log.Info("redis not configured, spot catalog cache disabled")
	}

	var verifier captcha.Verifier
	if cfg.HCaptchaSecret != "" {
		verifier = captcha.NewHCaptchaVerifier(cfg.HCaptchaSecret)
	} else {
		log.Warn("hcaptcha secret not configured, accepting any non-empty captcha token")
		verifier = captcha.StaticVerifier{}
	}

	authService := service.NewAuthService(store.Users, store.Sessions, verifier)
	spotService := service.NewSpotService(store.Spots, spotCache, log)
	reportService := service.NewReportService(store.Reports)
	favoriteService := service.NewFavoriteService(store.Favorites, store.Spots)
	followService := service.NewFollowService(store.Follows, store.Users)
	userService := service.NewUserService(store)

	routerCfg := RouterConfig{
		AuthHandler:     handler.NewAuthHandler(authService, cfg),
		SpotHandler:     handler.NewSpotHandler(spotService),
		ReportHandler:   handler.NewReportHandler(reportService),
		UserHandler:     handler.NewUserHandler(userService),
		FavoriteHandler: handler.NewFavoriteHandler(favoriteService),
		FollowHandler:   handler.NewFollowHandler(followService),
		Authenticator:   authService,
	}

	if cfg.MediaConfigured() {
		mediaService, err := service.NewMediaService(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create media service: %w", err)
		}
		routerCfg.MediaHandler = handler.NewMediaHandler(mediaService)
	} else {
		log.Info("object storage not configured, image uploads disabled")
	}

	go sweepExpiredSessions(ctx, store.Sessions, log)

	router := NewRouter(routerCfg)

	addr := ":" + cfg.ServerPort
	srv := &stdhttp.Server{Addr: addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", addr), zap.String("storage", cfg.StorageBackend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// sweepExpiredSessions periodically removes sessions past their absolute
// expiry. Lookups already treat expired rows as absent; this only keeps the
// table from growing without bound.
func sweepExpiredSessions(ctx context.Context, sessions repository.SessionRepository, log *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("swept expired sessions", zap.Int64("removed", removed))
			}
		}
	}
}
