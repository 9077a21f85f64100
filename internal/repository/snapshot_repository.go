package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot stores the snapshot for its date, replacing any earlier capture of the same day.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s *model.Snapshot) error {
	query := `
		INSERT INTO portfolio_snapshot (id, date, invested, current_value, profit, investment_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			invested = excluded.invested,
			current_value = excluded.current_value,
			profit = excluded.profit,
			investment_count = excluded.investment_count,
			created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Date.Format("2006-01-02"),
		s.Invested,
		s.Current,
		s.Profit,
		s.Count,
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio_snapshot: %w", err)
	}

	return nil
}

// GetSnapshots retrieves snapshots between startDate and endDate inclusive, oldest first.
// Returns an empty slice if none exist in the range.
func (r *SnapshotRepository) GetSnapshots(startDate, endDate time.Time) ([]model.Snapshot, error) {
	query := `
		SELECT id, date, invested, current_value, profit, investment_count, created_at
		FROM portfolio_snapshot
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}

	for rows.Next() {
		var s model.Snapshot
		var date string
		var createdAt sql.NullString

		if err := rows.Scan(&s.ID, &date, &s.Invested, &s.Current, &s.Profit, &s.Count, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_snapshot table results: %w", err)
		}

		s.Date, err = ParseTime(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
		}
		s.CreatedAt = coerceTimestamp(createdAt)

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_snapshot table: %w", err)
	}

	return snapshots, nil
}
