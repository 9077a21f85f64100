package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// common holds the flags shared by every command.
type common struct {
	dbPath string
	out    io.Writer
}

func (c *common) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "SQLite database path (default from configuration)")
}

func (c *common) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// app is the set of services a command works with.
type app struct {
	cfg        *config.Config
	db         *sql.DB
	investment *service.InvestmentService
	export     *service.ExportService
	chart      *service.ChartService
	snapshot   *service.SnapshotService
}

// open loads the configuration, opens the database and wires the services.
// Logs go to stderr so command output stays clean.
func (c *common) open() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	logging.Setup(cfg.Logging, os.Stderr)

	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	investmentService := service.NewInvestmentService(db, repository.NewInvestmentRepository(db), service.SystemClock)

	return &app{
		cfg:        cfg,
		db:         db,
		investment: investmentService,
		export:     service.NewExportService(investmentService, cfg.Display.ExportFilename),
		chart:      service.NewChartService(investmentService, cfg.Display.Currency),
		snapshot:   service.NewSnapshotService(investmentService, repository.NewSnapshotRepository(db)),
	}, nil
}

func (a *app) close() {
	a.db.Close()
}
