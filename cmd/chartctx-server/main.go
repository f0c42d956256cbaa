package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chartctx/chartctx/internal/clincontext"
	"github.com/chartctx/chartctx/internal/config"
	"github.com/chartctx/chartctx/internal/platform/fhir"
	"github.com/chartctx/chartctx/internal/platform/middleware"
	"github.com/chartctx/chartctx/internal/platform/sandbox"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chartctx-server",
		Short: "Clinical context aggregation server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(composeCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the context API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

// composeCmd builds a context summary from a JSON file without running the
// server. The input is either a compose request body or, with --fhir, a
// FHIR R4 bundle. --demo generates a synthetic record instead of reading a
// file.
func composeCmd() *cobra.Command {
	var (
		fhirInput bool
		demo      bool
		seed      int64
	)
	cmd := &cobra.Command{
		Use:   "compose [file]",
		Short: "Compose a context summary from a record file",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			var patient clincontext.PatientSummary
			var records *clincontext.RecordSet
			opts := clincontext.DefaultOptions()

			switch {
			case demo:
				cfg := sandbox.DefaultSeedConfig()
				cfg.Seed = seed
				patient = sandbox.GeneratePatient(cfg, now)
				records = sandbox.GenerateRecordSet(cfg, now)
			case len(args) != 1:
				return fmt.Errorf("expected exactly one input file (or --demo)")
			default:
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				if fhirInput {
					patient, records, err = fhir.MapBundle(data, now)
					if err != nil {
						return err
					}
				} else {
					var req clincontext.ComposeRequest
					if err := json.Unmarshal(data, &req); err != nil {
						return fmt.Errorf("parse request: %w", err)
					}
					patient = req.Patient
					records = req.Records
					if req.Options != nil {
						opts = *req.Options
					}
				}
			}

			sections, err := clincontext.Compose(patient, records, opts, now)
			if err != nil {
				return err
			}
			fmt.Println(clincontext.Format(sections))
			return nil
		},
	}
	cmd.Flags().BoolVar(&fhirInput, "fhir", false, "treat the input file as a FHIR R4 bundle")
	cmd.Flags().BoolVar(&demo, "demo", false, "compose from generated synthetic data")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for --demo data generation")
	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	e := newServer(cfg, logger)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer assembles the echo instance with all middleware and routes.
// Split from runServer so tests can drive it through httptest.
func newServer(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// API group: authenticated and rate limited
	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RequireAuth(cfg.AuthSecret))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	clincontext.NewHandler().RegisterRoutes(apiV1)
	if cfg.SandboxEnabled {
		sandbox.NewHandler(cfg.SandboxSeed).RegisterRoutes(apiV1)
	}

	return e
}
