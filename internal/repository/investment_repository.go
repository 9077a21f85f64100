package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment table.
// The stored sequence order is kept in the position column; new investments are
// placed in front of the existing ones.
type InvestmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// WithTx returns a new InvestmentRepository scoped to the provided transaction.
func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *InvestmentRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const investmentColumns = `
	id, name, category, invested, current_value, start_date, roi,
	recurring_type, sip, recurring_interval, tag, notes, created_at, updated_at
`

// scanInvestment reads one investment row. Every field is coerced independently
// so a malformed value falls back to its default instead of failing the row.
func scanInvestment(scan func(dest ...any) error) (model.Investment, error) {
	var (
		inv                                      model.Investment
		name, category, recurringType, tag, note sql.NullString
		invested, current, roi, sip, interval    sql.NullString
		startDate, createdAt, updatedAt          sql.NullString
	)

	err := scan(
		&inv.ID,
		&name,
		&category,
		&invested,
		&current,
		&startDate,
		&roi,
		&recurringType,
		&sip,
		&interval,
		&tag,
		&note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.Investment{}, err
	}

	inv.Name = name.String
	inv.Category = category.String
	inv.InvestedPrincipal = coerceFloat(invested)
	inv.ManualCurrentValue = coerceFloat(current)
	inv.StartDate = coerceDate(startDate)
	inv.AnnualRatePercent = coerceRate(roi)
	inv.RecurringType = model.ParseRecurringType(recurringType.String)
	inv.RecurringAmount = coerceFloat(sip)
	inv.RecurringIntervalMonths = coerceInt(interval)
	inv.Tag = tag.String
	inv.Notes = note.String
	inv.CreatedAt = coerceTimestamp(createdAt)
	inv.UpdatedAt = coerceTimestamp(updatedAt)

	return inv, nil
}

// GetInvestments retrieves every investment in stored order.
// Returns an empty slice if there are no investments.
func (r *InvestmentRepository) GetInvestments() ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment ORDER BY position ASC, created_at DESC`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// GetInvestment retrieves a single investment by ID.
// Returns apperrors.ErrInvestmentNotFound when no row matches.
func (r *InvestmentRepository) GetInvestment(id string) (model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE id = ?`

	inv, err := scanInvestment(r.getQuerier().QueryRow(query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment: %w", err)
	}

	return inv, nil
}

// CountInvestments returns the number of stored investments.
func (r *InvestmentRepository) CountInvestments() (int, error) {
	var count int
	if err := r.getQuerier().QueryRow(`SELECT COUNT(*) FROM investment`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count investments: %w", err)
	}
	return count, nil
}

func investmentArgs(inv *model.Investment) []any {
	return []any{
		inv.Name,
		inv.Category,
		inv.InvestedPrincipal,
		inv.ManualCurrentValue,
		formatDate(inv.StartDate),
		inv.AnnualRatePercent,
		string(inv.RecurringType),
		inv.RecurringAmount,
		inv.RecurringIntervalMonths,
		inv.Tag,
		inv.Notes,
	}
}

// InsertInvestment stores a new investment in front of the existing ones.
// Returns apperrors.ErrDuplicateEntry when the ID is already taken.
func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
		INSERT INTO investment (
			id, name, category, invested, current_value, start_date, roi,
			recurring_type, sip, recurring_interval, tag, notes,
			position, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MIN(position), 0) - 1 FROM investment), ?, ?)
	`

	args := append([]any{inv.ID}, investmentArgs(inv)...)
	args = append(args, formatTimestamp(inv.CreatedAt), formatTimestamp(inv.UpdatedAt))

	_, err := r.getQuerier().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: investment %s", apperrors.ErrDuplicateEntry, inv.ID)
		}
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// UpdateInvestment overwrites the stored fields of an existing investment.
// Returns apperrors.ErrInvestmentNotFound when no row matches.
func (r *InvestmentRepository) UpdateInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
		UPDATE investment
		SET name = ?, category = ?, invested = ?, current_value = ?, start_date = ?, roi = ?,
			recurring_type = ?, sip = ?, recurring_interval = ?, tag = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	args := append(investmentArgs(inv), formatTimestamp(inv.UpdatedAt), inv.ID)

	result, err := r.getQuerier().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// DeleteInvestment removes an investment by ID.
// Returns apperrors.ErrInvestmentNotFound when no row matches.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, id string) error {
	query := `DELETE FROM investment WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// DeleteAllInvestments removes every investment and returns the number removed.
func (r *InvestmentRepository) DeleteAllInvestments(ctx context.Context) (int64, error) {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM investment`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete investments: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// ReplaceAll stores investments as the complete collection, in the given order.
// Existing rows are removed first. The caller is expected to run this inside a
// transaction (see WithTx) so a failure leaves the previous collection intact.
func (r *InvestmentRepository) ReplaceAll(ctx context.Context, investments []model.Investment) error {
	if _, err := r.DeleteAllInvestments(ctx); err != nil {
		return err
	}

	query := `
		INSERT INTO investment (
			id, name, category, invested, current_value, start_date, roi,
			recurring_type, sip, recurring_interval, tag, notes,
			position, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for i := range investments {
		inv := &investments[i]
		args := append([]any{inv.ID}, investmentArgs(inv)...)
		args = append(args, i, formatTimestamp(inv.CreatedAt), formatTimestamp(inv.UpdatedAt))

		if _, err := r.getQuerier().ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: investment %s", apperrors.ErrDuplicateEntry, inv.ID)
			}
			return fmt.Errorf("failed to insert investment %s: %w", inv.ID, err)
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite unique or primary key constraint failure.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
