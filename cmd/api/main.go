package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/peoplefinder/internal/config"
	"github.com/octobees/peoplefinder/internal/handler"
	"github.com/octobees/peoplefinder/internal/logger"
	"github.com/octobees/peoplefinder/internal/metrics"
	middlewarepkg "github.com/octobees/peoplefinder/internal/middleware"
	"github.com/octobees/peoplefinder/internal/pdl"
	"github.com/octobees/peoplefinder/internal/router"
	"github.com/octobees/peoplefinder/internal/service"
	"github.com/octobees/peoplefinder/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "peoplefinder: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New("peoplefinder", cfg.Env)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	if cfg.PDLAPIKey == "" {
		log.Warn("PDL_API_KEY is not set; searches will fail until it is configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	searchMetrics, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		return err
	}

	pdlClient := pdl.NewClient(&http.Client{Timeout: cfg.PDLTimeout}, cfg.PDLBaseURL)
	searchService := service.NewSearchService(pdlClient, cfg.APIKeyProvider(),
		service.WithLogger(log.Named("search")),
		service.WithMetrics(searchMetrics),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.HTTPErrorHandler(log)

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log.Named("http")))
	e.Use(echoMiddleware.Recover())

	router.Register(e, reg, router.Handlers{
		Search: handler.NewSearchHandler(searchService),
		Page:   handler.NewPageHandler(ui.NewGatewayClient(nil, cfg.GatewayBaseURL)),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
