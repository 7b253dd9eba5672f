package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	jwttoken "sift/internal/jwt_token"
	"sift/internal/platform/config"
	"sift/internal/platform/health"
	"sift/internal/platform/httpserver"
	"sift/internal/platform/logger"
	"sift/internal/screening/domain/match"
	"sift/internal/screening/handler"
	screeningmetrics "sift/internal/screening/metrics"
	"sift/internal/screening/service"
	"sift/internal/screening/tracer"
	httptransport "sift/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing sift",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"auth_disabled", cfg.AuthDisabled,
	)

	weights := match.DefaultWeights()
	bands := match.DefaultBands()

	evaluator, err := service.New(weights, bands, match.DefaultThresholds(),
		service.WithLogger(log),
		service.WithMetrics(screeningmetrics.New()),
		service.WithTracer(tracer.NewOTel()),
	)
	if err != nil {
		log.Error("invalid scoring configuration", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(
		cfg.JWTSigningKey,
		jwttoken.DefaultIssuer,
		jwttoken.DefaultAudience,
		cfg.TokenTTL,
	).WithEnv(cfg.Environment)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("weights", weights.Validate)
	healthHandler.RegisterCheck("bands", bands.Validate)

	router := httptransport.NewRouter(
		cfg,
		handler.New(evaluator, log),
		healthHandler,
		httptransport.NewTokenValidator(jwtService),
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
