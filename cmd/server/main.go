package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/config"
	"github.com/samuelhany-cpu/blogging-platform/internal/handlers"
	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/httpserver"
	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
	authmw "github.com/samuelhany-cpu/blogging-platform/internal/middleware/auth"
	loggingmw "github.com/samuelhany-cpu/blogging-platform/internal/middleware/logging"
	"github.com/samuelhany-cpu/blogging-platform/internal/middleware/ratelimit"
	"github.com/samuelhany-cpu/blogging-platform/internal/mykafka"
	"github.com/samuelhany-cpu/blogging-platform/internal/repo"
	"github.com/samuelhany-cpu/blogging-platform/internal/revocation"
	"github.com/samuelhany-cpu/blogging-platform/internal/service"
	"github.com/samuelhany-cpu/blogging-platform/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var registry revocation.Registry
	if cfg.RedisURL != "" {
		registry, err = revocation.NewRedis(cfg.RedisURL, cfg.RevocationWindow)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		logger.Info("using redis revocation registry")
	} else {
		registry = revocation.NewMemory(cfg.RevocationWindow)
		logger.Info("using in-memory revocation registry",
			"note", "revocations do not survive restarts or span instances")
	}
	defer registry.Close()

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	tokenSvc := tokens.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := &repo.UserRepo{DB: db}
	articleRepo := &repo.ArticleRepo{DB: db}
	commentRepo := &repo.CommentRepo{DB: db}

	authSvc := &service.AuthService{
		Users:    userRepo,
		Tokens:   tokenSvc,
		Registry: registry,
		Producer: producer,
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperr.ErrorHandler
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{Svc: authSvc},
		ArticleHandler: &handlers.ArticleHandler{Articles: articleRepo},
		CommentHandler: &handlers.CommentHandler{Comments: commentRepo, Articles: articleRepo},
		UserHandler:    &handlers.UserHandler{Users: userRepo, Articles: articleRepo},
		Auth:           authmw.NewMiddleware(tokenSvc, registry),
		LoginLimiter:   ratelimit.New(cfg.LoginRateMax, cfg.LoginRateWindow),
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
}
