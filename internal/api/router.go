package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System     *service.SystemService
	Investment *service.InvestmentService
	Export     *service.ExportService
	Chart      *service.ChartService
	Snapshot   *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.NewCORS(cfg.CORS))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/investment", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(services.Investment)
			r.Get("/", investmentHandler.GetInvestments)
			r.Post("/", investmentHandler.CreateInvestment)
			r.Get("/catalog", investmentHandler.Catalog)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)
				r.Delete("/", investmentHandler.ClearInvestments)
				r.Post("/import", investmentHandler.ImportInvestments)
			})

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.Put("/", investmentHandler.UpdateInvestment)
				r.Delete("/", investmentHandler.DeleteInvestment)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(
				services.Investment,
				services.Export,
				services.Chart,
				services.Snapshot,
			)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/export", portfolioHandler.Export)
			r.Get("/allocation/chart", portfolioHandler.AllocationChart)
			r.Get("/history", portfolioHandler.History)
			r.Post("/snapshot", portfolioHandler.CaptureSnapshot)
		})
	})

	return r
}
