package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.Logging, os.Stdout)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	log.Info().Str("path", cfg.Database.Path).Str("version", version.Version).Msg("connected to database")

	if cfg.Auth.InternalAPIKey == "" {
		log.Warn().Msg("INTERNAL_API_KEY is not set, clear and import endpoints are disabled")
	}

	// Create repositories
	investmentRepo := repository.NewInvestmentRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	investmentService := service.NewInvestmentService(db, investmentRepo, service.SystemClock)
	exportService := service.NewExportService(investmentService, cfg.Display.ExportFilename)
	chartService := service.NewChartService(investmentService, cfg.Display.Currency)
	snapshotService := service.NewSnapshotService(investmentService, snapshotRepo)
	systemService := service.NewSystemService(db, map[string]bool{
		"snapshots": cfg.Snapshot.Enabled,
		"import":    cfg.Auth.InternalAPIKey != "",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.SeedDefaults {
		if _, err := investmentService.SeedDefaults(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to seed default investments")
		}
	}

	if cfg.Snapshot.Enabled {
		if err := snapshotService.Start(cfg.Snapshot.Schedule); err != nil {
			log.Fatal().Err(err).Msg("failed to start snapshot scheduler")
		}
		defer snapshotService.Stop()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Investment: investmentService,
		Export:     exportService,
		Chart:      chartService,
		Snapshot:   snapshotService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}

	log.Info().Msg("server exited")
}
