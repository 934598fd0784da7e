package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/book-review-service/internal/config"
	"github.com/iliyamo/book-review-service/internal/database"
	"github.com/iliyamo/book-review-service/internal/handler"
	"github.com/iliyamo/book-review-service/internal/logger"
	"github.com/iliyamo/book-review-service/internal/middleware"
	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/queue"
	"github.com/iliyamo/book-review-service/internal/repository"
	"github.com/iliyamo/book-review-service/internal/router"
	"github.com/iliyamo/book-review-service/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	books, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("load catalog")
	}
	catalog := repository.NewBookRepo(books)
	log.Info().Int("books", len(books)).Bool("mysql", cfg.UseMySQL()).Msg("catalog loaded")

	rdb := config.NewRedisClient()
	var sessions repository.SessionStore
	if rdb != nil {
		defer rdb.Close()
		sessions = repository.NewRedisSessionRepo(rdb)
	} else {
		log.Warn().Msg("redis unavailable; using in-memory sessions and no response cache")
		mem := repository.NewMemorySessionRepo(nil)
		go mem.Run(ctx, time.Minute)
		sessions = mem
	}

	users := repository.NewUserRepo(cfg.BcryptCost)
	auth := service.NewAuthService(users, sessions, cfg.JWTSecret)
	reviews := &service.ReviewService{
		Identity: auth,
		Books:    catalog,
		Reviews:  repository.NewReviewRepo(catalog),
		Log:      log,
	}
	if cfg.EventsEnabled {
		reviews.Events = &service.AMQPPublisher{URL: cfg.AMQPURL}
		consumer := &queue.ReviewLogConsumer{URL: cfg.AMQPURL, LogPath: filepath.Join("logs", "review.log"), Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("review consumer stopped")
			}
		}()
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logger.RequestLogger(log))
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, &handler.AuthHandler{
		Users:        users,
		Auth:         auth,
		Sessions:     sessions,
		CookieName:   cfg.CookieName,
		CookieSecure: cfg.CookieSecure,
		Log:          log,
	})
	reviewHandler := &handler.ReviewHandler{Reviews: reviews, Log: log}
	router.RegisterPublic(e, &handler.PublicHandler{Books: catalog}, reviewHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterReviews(e, reviewHandler, middleware.LoadSession(sessions, auth, cfg.CookieName, log))

	serve(ctx, e, ":"+cfg.Port, cfg.Env, log)
}

// loadCatalog reads the books table when MySQL is configured and falls
// back to the embedded catalog otherwise.
func loadCatalog(ctx context.Context, cfg config.Config) ([]model.Book, error) {
	if !cfg.UseMySQL() {
		return repository.SeedBooks()
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return repository.LoadBooks(ctx, db)
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// with a grace period.
func serve(ctx context.Context, e *echo.Echo, addr, env string, log zerolog.Logger) {
	go func() {
		log.Info().Str("addr", addr).Str("env", env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
