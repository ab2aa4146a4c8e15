package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"discord_rps/internal/config"
	"discord_rps/internal/db"
	"discord_rps/internal/discord"
	"discord_rps/internal/game"
	httpServer "discord_rps/internal/http"
	"discord_rps/internal/http/handlers"
	"discord_rps/internal/interactions"
	"discord_rps/internal/logger"
	"discord_rps/internal/ratelimit"
	"discord_rps/internal/repository"
	"discord_rps/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactions endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return oops.In("main").Wrapf(err, "load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	if err := game.ValidateTable(); err != nil {
		return oops.In("main").Wrapf(err, "invalid rules table")
	}

	client, err := discord.New(cfg.BotToken, cfg.AppID)
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.SessionTTL)
	if err := prometheus.Register(interactions.NewActiveSessionsGauge(store)); err != nil {
		logger.Warn("active sessions gauge not registered", "error", err)
	}

	opts := interactions.Options{GuildID: cfg.GuildID}
	checks := map[string]handlers.Pinger{}

	if cfg.ChallengeRateLimit > 0 {
		limiter, redisLimiter := newLimiter(cfg)
		opts.Limiter = limiter
		if redisLimiter != nil {
			defer redisLimiter.Close()
			checks["redis"] = redisLimiter
		}
	}

	var matches handlers.MatchLister
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := repository.NewMatchRepository(pool)
		opts.Recorder = repo
		matches = repo
		checks["database"] = pool
	}

	router := interactions.NewRouter(store, client, opts)
	followUps := interactions.NewFollowUps(cfg.FollowUpTimeout)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := httpServer.NewEngine(httpServer.Deps{
		Router:    router,
		FollowUps: followUps,
		PublicKey: cfg.PublicKey,
		Sessions:  store,
		Matches:   matches,
		Checks:    checks,
		Version:   Version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		regCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if _, err := client.EnsureCommands(regCtx, cfg.GuildID, interactions.Commands()); err != nil {
			logger.Error("command registration failed", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return oops.In("main").Wrapf(err, "listen")
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return oops.In("main").Wrapf(err, "server forced to shutdown")
	}
	if err := followUps.Wait(shutdownCtx); err != nil {
		logger.Warn("follow-up calls still pending at shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}

// newLimiter prefers Redis and falls back to a process-local limiter when
// Redis is not configured or not reachable.
func newLimiter(cfg *config.Config) (interactions.Limiter, *ratelimit.RedisLimiter) {
	if cfg.RedisAddr != "" {
		l, err := ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.ChallengeRateLimit, cfg.ChallengeRateWindow)
		if err == nil {
			logger.Info("challenge rate limiter using redis", "addr", cfg.RedisAddr)
			return l, l
		}
		logger.Warn("redis unavailable, using in-memory rate limiter", "error", err)
	}
	return ratelimit.NewMemoryLimiter(cfg.ChallengeRateLimit, cfg.ChallengeRateWindow), nil
}
