package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
)

// Clock returns the reference instant used for valuations.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// Catalog lists the category and tag options offered when entering an investment.
type Catalog struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// InvestmentService is the single update path for the investment ledger.
// Every mutation goes through it; derived values are recomputed on each read.
type InvestmentService struct {
	db             *sql.DB
	investmentRepo *repository.InvestmentRepository
	clock          Clock
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependencies.
// A nil clock defaults to SystemClock.
func NewInvestmentService(
	db *sql.DB,
	investmentRepo *repository.InvestmentRepository,
	clock Clock,
) *InvestmentService {
	if clock == nil {
		clock = SystemClock
	}
	return &InvestmentService{
		db:             db,
		investmentRepo: investmentRepo,
		clock:          clock,
	}
}

// ListInvestments returns every stored investment in ledger order.
func (s *InvestmentService) ListInvestments() ([]model.Investment, error) {
	return s.investmentRepo.GetInvestments()
}

// GetInvestment returns a single investment by ID.
func (s *InvestmentService) GetInvestment(id string) (model.Investment, error) {
	return s.investmentRepo.GetInvestment(id)
}

// CreateInvestment stores a new investment at the front of the ledger.
// A UUID is assigned when req.ID is empty. Negative amounts are stored as zero.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (*model.Investment, error) {
	now := s.clock()

	inv := &model.Investment{
		ID:                      strings.TrimSpace(req.ID),
		Name:                    strings.TrimSpace(req.Name),
		Category:                req.Category,
		InvestedPrincipal:       amount(req.Invested),
		ManualCurrentValue:      amount(req.Current),
		StartDate:               parseDate(req.Date),
		AnnualRatePercent:       finite(req.Roi),
		RecurringType:           model.ParseRecurringType(req.RecurringType),
		RecurringAmount:         amount(req.Sip),
		RecurringIntervalMonths: max(req.RecurringInterval, 0),
		Tag:                     req.Tag,
		Notes:                   req.Notes,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}

	if err := s.investmentRepo.InsertInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	return inv, nil
}

// UpdateInvestment applies the non-nil fields of req to an existing investment.
// An empty date clears the start date.
func (s *InvestmentService) UpdateInvestment(ctx context.Context, id string, req request.UpdateInvestmentRequest) (*model.Investment, error) {
	inv, err := s.investmentRepo.GetInvestment(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		inv.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		inv.Category = *req.Category
	}
	if req.Invested != nil {
		inv.InvestedPrincipal = amount(*req.Invested)
	}
	if req.Current != nil {
		inv.ManualCurrentValue = amount(*req.Current)
	}
	if req.Date != nil {
		inv.StartDate = parseDate(*req.Date)
	}
	if req.Roi != nil {
		inv.AnnualRatePercent = finite(*req.Roi)
	}
	if req.RecurringType != nil {
		inv.RecurringType = model.ParseRecurringType(*req.RecurringType)
	}
	if req.Sip != nil {
		inv.RecurringAmount = amount(*req.Sip)
	}
	if req.RecurringInterval != nil {
		inv.RecurringIntervalMonths = max(*req.RecurringInterval, 0)
	}
	if req.Tag != nil {
		inv.Tag = *req.Tag
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	inv.UpdatedAt = s.clock()

	if err := s.investmentRepo.UpdateInvestment(ctx, &inv); err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}

	return &inv, nil
}

// DeleteInvestment removes an investment by ID.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, id string) error {
	return s.investmentRepo.DeleteInvestment(ctx, id)
}

// ClearInvestments removes every investment and returns how many were removed.
func (s *InvestmentService) ClearInvestments(ctx context.Context) (int64, error) {
	deleted, err := s.investmentRepo.DeleteAllInvestments(ctx)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("deleted", deleted).Msg("cleared investment ledger")
	return deleted, nil
}

// SaveInvestments replaces the whole ledger with investments, in order, inside one transaction.
func (s *InvestmentService) SaveInvestments(ctx context.Context, investments []model.Investment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := s.investmentRepo.WithTx(tx).ReplaceAll(ctx, investments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ImportLegacy imports a JSON array of loosely typed ledger records, as kept by
// the browser version of the tracker. Numbers may arrive as strings and ids as
// numbers; every field is coerced on its own and a field that cannot be read
// falls back to its default. Ids that are not UUIDs are replaced.
//
// With replace set the imported records become the whole ledger; otherwise they
// are placed in front of the existing investments. Returns the imported records.
func (s *InvestmentService) ImportLegacy(ctx context.Context, data []byte, replace bool) ([]model.Investment, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidImport, err)
	}

	now := s.clock()
	imported := make([]model.Investment, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, rec := range raw {
		inv := legacyInvestment(rec, now)
		if seen[inv.ID] {
			inv.ID = uuid.New().String()
		}
		seen[inv.ID] = true
		imported = append(imported, inv)
	}

	investments := imported
	if !replace {
		existing, err := s.investmentRepo.GetInvestments()
		if err != nil {
			return nil, err
		}
		for _, inv := range existing {
			if seen[inv.ID] {
				return nil, fmt.Errorf("%w: investment %s", apperrors.ErrDuplicateEntry, inv.ID)
			}
		}
		investments = append(append([]model.Investment{}, imported...), existing...)
	}

	if err := s.SaveInvestments(ctx, investments); err != nil {
		return nil, fmt.Errorf("failed to import investments: %w", err)
	}

	log.Info().Int("count", len(imported)).Bool("replace", replace).Msg("imported legacy ledger")
	return imported, nil
}

// legacyInvestment converts one loosely typed ledger record.
func legacyInvestment(rec map[string]any, now time.Time) model.Investment {
	id := text(rec["id"])
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}

	return model.Investment{
		ID:                      id,
		Name:                    strings.TrimSpace(text(rec["name"])),
		Category:                text(rec["category"]),
		InvestedPrincipal:       repository.CoerceAmount(text(rec["invested"])),
		ManualCurrentValue:      repository.CoerceAmount(text(rec["current"])),
		StartDate:               parseDate(text(rec["date"])),
		AnnualRatePercent:       repository.CoerceNumber(text(rec["roi"])),
		RecurringType:           model.ParseRecurringType(text(rec["recurringType"])),
		RecurringAmount:         repository.CoerceAmount(text(rec["sip"])),
		RecurringIntervalMonths: max(int(repository.CoerceNumber(text(rec["recurringInterval"]))), 0),
		Tag:                     text(rec["tag"]),
		Notes:                   text(rec["notes"]),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// DefaultInvestments are the example records offered to a new ledger.
func DefaultInvestments(now time.Time) []model.Investment {
	hdfcStart := time.Date(2023, time.April, 10, 0, 0, 0, 0, time.UTC)
	fdStart := time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC)

	return []model.Investment{
		{
			ID:                uuid.New().String(),
			Name:              "HDFC Long Term",
			Category:          "Kite (Stocks, MF, SGB)",
			InvestedPrincipal: 100000,
			StartDate:         &hdfcStart,
			AnnualRatePercent: 10,
			RecurringType:     model.RecurringMonthly,
			RecurringAmount:   5000,
			Tag:               "long term",
			Notes:             "SIP started 2020",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
		{
			ID:                uuid.New().String(),
			Name:              "ICICI Bank FD",
			Category:          "FD",
			InvestedPrincipal: 200000,
			StartDate:         &fdStart,
			AnnualRatePercent: 4.5,
			RecurringType:     model.RecurringNone,
			Tag:               "short term",
			CreatedAt:         now,
			UpdatedAt:         now,
		},
	}
}

// SeedDefaults stores DefaultInvestments when the ledger is empty.
// Reports whether anything was inserted.
func (s *InvestmentService) SeedDefaults(ctx context.Context) (bool, error) {
	count, err := s.investmentRepo.CountInvestments()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.SaveInvestments(ctx, DefaultInvestments(s.clock())); err != nil {
		return false, fmt.Errorf("failed to seed investments: %w", err)
	}

	log.Info().Msg("seeded investment ledger with default records")
	return true, nil
}

// GetPortfolio loads the ledger and aggregates it at the current instant.
func (s *InvestmentService) GetPortfolio(filterTag string, sortKey portfolio.SortKey) (portfolio.Result, error) {
	investments, err := s.investmentRepo.GetInvestments()
	if err != nil {
		return portfolio.Result{}, err
	}

	return portfolio.Aggregate(investments, s.clock(), filterTag, sortKey), nil
}

// Catalog returns the category and tag options.
func (s *InvestmentService) Catalog() Catalog {
	return Catalog{
		Categories: append([]string(nil), model.CategoryOptions...),
		Tags:       append([]string(nil), model.TagOptions...),
	}
}

// Now returns the service's reference instant.
func (s *InvestmentService) Now() time.Time {
	return s.clock()
}

// amount returns v when finite and non-negative, 0 otherwise.
func amount(v float64) float64 {
	return math.Max(0, finite(v))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseDate returns the calendar date in s, or nil when s is empty or malformed.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := repository.ParseTime(s)
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// text renders a decoded JSON value as a string. Numbers keep their shortest form.
func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
