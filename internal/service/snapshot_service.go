package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/portfolio"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// snapshotTimeout bounds a single scheduled capture.
const snapshotTimeout = 30 * time.Second

// SnapshotService records the portfolio totals once per day.
// Snapshots are a history log only; current values are always recomputed.
type SnapshotService struct {
	investmentService *InvestmentService
	snapshotRepo      *repository.SnapshotRepository
	scheduler         *cron.Cron
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	investmentService *InvestmentService,
	snapshotRepo *repository.SnapshotRepository,
) *SnapshotService {
	return &SnapshotService{
		investmentService: investmentService,
		snapshotRepo:      snapshotRepo,
	}
}

// Capture aggregates the ledger and stores the totals for the current UTC date,
// replacing an earlier capture of the same day.
func (s *SnapshotService) Capture(ctx context.Context) (*model.Snapshot, error) {
	investments, err := s.investmentService.ListInvestments()
	if err != nil {
		return nil, err
	}

	now := s.investmentService.Now().UTC()
	totals := portfolio.Summarize(portfolio.Views(investments, now))

	snapshot := &model.Snapshot{
		ID:        uuid.New().String(),
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Invested:  totals.Invested,
		Current:   totals.Current,
		Profit:    totals.Profit,
		Count:     len(investments),
		CreatedAt: now,
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to capture snapshot: %w", err)
	}

	return snapshot, nil
}

// History returns the snapshots between start and end inclusive, oldest first.
func (s *SnapshotService) History(start, end time.Time) ([]model.Snapshot, error) {
	if err := validation.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.snapshotRepo.GetSnapshots(start, end)
}

// Start schedules Capture with the given cron spec (e.g. "@daily").
// Errors from the scheduled job are logged.
func (s *SnapshotService) Start(spec string) error {
	if s.scheduler != nil {
		return fmt.Errorf("snapshot scheduler already started")
	}

	scheduler := cron.New(cron.WithLocation(time.UTC))
	_, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		snapshot, err := s.Capture(ctx)
		if err != nil {
			log.Error().Err(err).Msg("scheduled snapshot failed")
			return
		}
		log.Info().
			Str("date", snapshot.Date.Format(model.DateLayout)).
			Float64("current", snapshot.Current).
			Msg("captured portfolio snapshot")
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}

	scheduler.Start()
	s.scheduler = scheduler
	log.Info().Str("schedule", spec).Msg("snapshot scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running capture to finish.
func (s *SnapshotService) Stop() {
	if s.scheduler == nil {
		return
	}
	<-s.scheduler.Stop().Done()
	s.scheduler = nil
}
