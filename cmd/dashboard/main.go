package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/api"
	"github.com/khatahub/khata-dashboard/internal/credential"
	"github.com/khatahub/khata-dashboard/internal/gateway"
	"github.com/khatahub/khata-dashboard/internal/pkg/config"
	"github.com/khatahub/khata-dashboard/internal/probe"
	"github.com/khatahub/khata-dashboard/internal/session"
	"github.com/khatahub/khata-dashboard/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds := buildCredentialStore(ctx, cfg, log)

	gw, err := gateway.New(cfg.APIBaseURL, creds, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build gateway client")
	}

	sess := session.NewStore(gw, creds, log)
	gw.SetUnauthorizedHook(sess.Invalidate)

	// Ask the remote service for its CSRF cookie so mutating requests can
	// echo it back. Best-effort; the service may be down right now.
	if err := gw.PrimeCSRF(ctx); err != nil {
		log.Debug().Err(err).Msg("csrf priming failed")
	}

	// The initial identity check must resolve before any route-gated
	// content is served.
	sess.Initialize(ctx)
	log.Info().Str("status", string(sess.Status())).Msg("session initialized")

	prober := probe.New(gw.Health, cfg.ProbeInterval, log)
	prober.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Session: sess,
		Data:    gw,
		Prober:  prober,
		Secret:  cfg.SessionSecret,
		Log:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("api", cfg.APIBaseURL).Msg("khata dashboard listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func buildCredentialStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) credential.Store {
	switch cfg.Credential.Backend {
	case "redis":
		store, err := credential.NewRedisStore(ctx, credential.RedisConfig{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis credential store")
		}
		return store
	default:
		store, err := credential.NewFileStore(cfg.Credential.File)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open file credential store")
		}
		return store
	}
}
