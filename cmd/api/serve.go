package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	appassist "github.com/bryanwahyu/marineiq/internal/application/assistant"
	appcorr "github.com/bryanwahyu/marineiq/internal/application/correlation"
	"github.com/bryanwahyu/marineiq/internal/application/dashboard"
	"github.com/bryanwahyu/marineiq/internal/infra/ai/openai"
	"github.com/bryanwahyu/marineiq/internal/infra/analysis"
	"github.com/bryanwahyu/marineiq/internal/infra/grpcserver"
	"github.com/bryanwahyu/marineiq/internal/infra/httpserver"
	"github.com/bryanwahyu/marineiq/internal/metrics"
	"github.com/bryanwahyu/marineiq/internal/middleware"
)

const healthProbeInterval = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard, metrics and gRPC health listeners",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting marineiq",
		zap.String("address", cfg.Server.Address),
		zap.String("catalog", cfg.Catalog.Backend),
	)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}
	recorder := metrics.Recorder{}

	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer be.Close()
	if err := be.load(ctx, logger, true); err != nil {
		return err
	}
	if err := be.repo.Check(ctx); err != nil {
		logger.Warn("catalog not ready, run `marineiq catalog seed`?", zap.Error(err))
	}

	analyzer := &analysis.Simulated{Latency: cfg.Analysis.Latency, Jitter: cfg.Analysis.Jitter}
	corrLogger := logger.Named("correlation")
	store := dashboard.NewStore(dashboard.StoreConfig{
		IdleTimeout: cfg.Sessions.IdleTimeout,
		Logger:      logger.Named("sessions"),
		Gauge:       recorder,
		NewWorkflow: func() *appcorr.Workflow {
			return appcorr.NewWorkflow(appcorr.Deps{
				Catalog:  be.repo,
				Analyzer: analyzer,
				Logger:   corrLogger,
				Observer: recorder,
			})
		},
	})
	defer store.Close()

	assistant := &appassist.Service{Catalog: be.repo, Observer: recorder}
	if cfg.OpenAI.APIKey != "" {
		if cfg.OpenAI.BaseURL != "" {
			assistant.Client = openai.NewClientWithBaseURL(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
		} else {
			assistant.Client = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		}
	} else {
		logger.Info("ocean assistant disabled, no openai.apiKey")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: cfg.Server.Address,
		Handler: httpserver.NewRouter(httpserver.Options{
			Dashboard:      &dashboard.Service{Catalog: be.repo},
			Sessions:       store,
			Assistant:      assistant,
			Limiter:        limiter,
			Health:         map[string]middleware.HealthChecker{"catalog": be.repo},
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger.Named("http"),
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
	}

	var grpcSrv *grpcserver.Server
	if cfg.Server.GRPCAddress != "" {
		grpcSrv, err = grpcserver.New(cfg.Server.GRPCAddress, be.repo, logger.Named("grpc"))
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", zap.String("address", srv.Addr))
		return listen(srv)
	})
	if metricsSrv != nil {
		g.Go(func() error {
			logger.Info("metrics server listening", zap.String("address", metricsSrv.Addr))
			return listen(metricsSrv)
		})
	}
	if grpcSrv != nil {
		g.Go(func() error {
			logger.Info("gRPC health listening", zap.String("address", grpcSrv.Address()))
			return grpcSrv.Serve()
		})
		g.Go(func() error {
			grpcSrv.Watch(gctx, healthProbeInterval)
			return nil
		})
	}
	g.Go(func() error {
		store.Run(gctx, cfg.Sessions.SweepInterval)
		return nil
	})
	if be.watch != nil {
		g.Go(func() error {
			if err := be.watch(gctx); err != nil {
				logger.Warn("catalog watch stopped", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}
		if grpcSrv != nil {
			grpcSrv.Shutdown(shutdownCtx)
		}
		return nil
	})

	err = g.Wait()
	logger.Info("marineiq stopped")
	return err
}

func listen(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
