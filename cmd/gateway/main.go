// Courtside auth gateway: the edge in front of the Courtside platform API.
// It owns bearer tokens and session records, guards page navigation, and
// proxies API traffic upstream with the stored token attached.
//
// @title        Courtside Auth Gateway
// @version      1.0
// @description  Edge authentication gateway for the Courtside platform.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtside/auth-gateway/internal/api"
	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/service"
	"github.com/courtside/auth-gateway/internal/infrastructure/db/mongo"
	"github.com/courtside/auth-gateway/internal/infrastructure/db/redis"
	"github.com/courtside/auth-gateway/internal/infrastructure/queue"
	"github.com/courtside/auth-gateway/internal/infrastructure/upstream"
	"github.com/courtside/auth-gateway/internal/pkg/config"
	"github.com/courtside/auth-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	tokens := redis.NewTokenStore(rdb)
	sessions := mongo.NewSessionRepository(db)
	if err := sessions.EnsureIndexes(ctx, cfg.Session.TokenTTL); err != nil {
		log.Fatal().Err(err).Msg("session index creation failed")
	}

	// --- Audit pipeline ---
	auditLog := logger.For("audit")
	auditSvc := service.NewAuditService(mongo.NewAuditRepository(db), auditLog)
	dispatcher := queue.NewDispatcher(cfg.Session.AuditWorkers, auditSvc, auditLog)
	dispatcher.Start(ctx)

	// --- Upstream + auth service ---
	client := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, logger.For("upstream"))

	authSvc := service.NewAuthService(tokens, sessions, client, dispatcher, cfg.Session.TokenTTL, log)

	// The 401 policy destroys whichever session made the call.
	client.SetOnUnauthorized(func(ctx context.Context) {
		sid, ok := domain.SessionIDFromContext(ctx)
		if !ok {
			return
		}
		if err := authSvc.Invalidate(ctx, sid); err != nil {
			log.Error().Err(err).Str("sid", sid).Msg("session invalidation failed")
		}
	})

	upstreamURL, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid upstream base url")
	}
	// Without a frontend the gateway still serves the auth and proxy routes.
	var frontendURL *url.URL
	if cfg.Frontend.BaseURL != "" {
		frontendURL, err = url.Parse(cfg.Frontend.BaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid frontend base url")
		}
	}

	e := api.NewRouter(api.Deps{
		Log:      log,
		Mongo:    db,
		Redis:    rdb,
		Auth:     authSvc,
		Tokens:   tokens,
		Upstream: upstreamURL,
		Frontend: frontendURL,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
