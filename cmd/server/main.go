package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	docs "github.com/tazhibayda/markpad/docs"
	"github.com/tazhibayda/markpad/internal/config"
	api "github.com/tazhibayda/markpad/internal/http"
	"github.com/tazhibayda/markpad/internal/log"
	"github.com/tazhibayda/markpad/internal/metrics"
	"github.com/tazhibayda/markpad/internal/oauth"
	"github.com/tazhibayda/markpad/internal/profile"
	"github.com/tazhibayda/markpad/internal/queue"
	"github.com/tazhibayda/markpad/internal/render"
	"github.com/tazhibayda/markpad/internal/repo"
	"github.com/tazhibayda/markpad/internal/security"
	"github.com/tazhibayda/markpad/internal/session"
)

// @title Markpad API
// @version 0.1.0
// @description Markdown editor with live preview behind Google sign-in.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.LogDev)
	if err != nil {
		stdlog.Fatalf("logger init: %v", err)
	}
	defer log.Sync()

	traceService := ""
	if cfg.DDEnabled {
		tracer.Start(tracer.WithService(cfg.DDService))
		defer tracer.Stop()
		traceService = cfg.DDService
	}

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health := map[string]api.Pinger{}

	var profiles profile.Repository
	if cfg.MongoURI == "memory" {
		log.Infof("profile store: in-memory")
		profiles = profile.NewMemory(nil)
	} else {
		store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatal("mongo connect", zap.Error(err))
		}
		defer store.Close(context.Background())
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Fatal("mongo indexes", zap.Error(err))
		}
		profiles = store
		health["mongo"] = store
	}

	rds := repo.NewRedis(cfg.RedisAddr)
	defer rds.Close()
	if err := rds.Ping(ctx); err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}
	health["redis"] = rds

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		if pub, err = queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange); err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
	}
	defer pub.Close()

	google, err := oauth.NewGoogle(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	if err != nil {
		logger.Fatal("google oauth", zap.Error(err))
	}

	docs.SwaggerInfo.BasePath = "/"

	h := api.NewHandler(api.Options{
		Profiles:        profile.NewService(profiles, pub),
		Sessions:        session.NewManager(session.NewRedisStore(rds.C), cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour),
		Provider:        google,
		State:           security.NewStateSigner(cfg.OAuthStateSecret),
		Admins:          security.NewAdminSet(cfg.AdminEmails),
		Renderer:        render.New(),
		Limiter:         rds,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Cookie:          session.CookieOptions{Secure: cfg.CookieSecure},
		Health:          health,
		TraceService:    traceService,
		TrustedProxies:  cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()

	log.Infof("markpad listening on :%s", cfg.Port)

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server error: %v", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
