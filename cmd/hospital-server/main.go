package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehospitality/hospital-api/internal/config"
	"github.com/ehospitality/hospital-api/internal/domain/availability"
	"github.com/ehospitality/hospital-api/internal/domain/billing"
	"github.com/ehospitality/hospital-api/internal/domain/facility"
	"github.com/ehospitality/hospital-api/internal/domain/healthresource"
	"github.com/ehospitality/hospital-api/internal/domain/identity"
	"github.com/ehospitality/hospital-api/internal/domain/prescription"
	"github.com/ehospitality/hospital-api/internal/domain/records"
	"github.com/ehospitality/hospital-api/internal/domain/scheduling"
	"github.com/ehospitality/hospital-api/internal/platform/auth"
	"github.com/ehospitality/hospital-api/internal/platform/db"
	"github.com/ehospitality/hospital-api/internal/platform/middleware"
)

// billCreatorAdapter adapts the billing service to the
// prescription.BillCreator interface, avoiding a direct import between the
// two domain packages.
type billCreatorAdapter struct {
	svc *billing.Service
}

func (a *billCreatorAdapter) CreateConsultationBill(ctx context.Context, patientID, prescriptionID uuid.UUID) error {
	_, err := a.svc.CreateConsultationBill(ctx, patientID, prescriptionID)
	return err
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-server",
		Short: "Hospital operations API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the hospital API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		logger.Warn().Msg("development auth active; all requests get admin access unless overridden")
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			JWKSURL:    cfg.AuthJWKSURL,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeout) * time.Second))

	// Identity
	identitySvc := identity.NewService(identity.NewDoctorRepoPG(pool), identity.NewPatientRepoPG(pool))
	resolver := identity.NewResolver(identitySvc)
	identity.NewHandler(identitySvc).RegisterRoutes(apiV1)

	// Availability
	availabilitySvc := availability.NewService(availability.NewRepoPG(pool))
	availability.NewHandler(availabilitySvc, resolver).RegisterRoutes(apiV1)

	// Scheduling
	schedulingSvc := scheduling.NewService(scheduling.NewRepoPG(pool))
	scheduling.NewHandler(schedulingSvc, resolver, resolver).RegisterRoutes(apiV1)

	// Billing
	billingSvc := billing.NewService(billing.NewRepoPG(pool))
	billing.NewHandler(billingSvc, resolver).RegisterRoutes(apiV1)

	// Prescriptions raise consultation bills through the billing service.
	prescriptionSvc := prescription.NewService(prescription.NewRepoPG(pool), &billCreatorAdapter{svc: billingSvc})
	prescription.NewHandler(prescriptionSvc, resolver, resolver).RegisterRoutes(apiV1)

	// Medical history
	recordsSvc := records.NewService(records.NewRepoPG(pool))
	records.NewHandler(recordsSvc, resolver).RegisterRoutes(apiV1)

	// Facilities and health resources
	facilitySvc := facility.NewService(facility.NewRepoPG(pool))
	facility.NewHandler(facilitySvc).RegisterRoutes(apiV1)

	resourceSvc := healthresource.NewService(healthresource.NewRepoPG(pool))
	healthresource.NewHandler(resourceSvc).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", func(c echo.Context) error {
		h := db.CheckHealth(c.Request().Context(), pool)
		code := http.StatusOK
		if !h.OK {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, h)
	})

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
