// Package sqlitestore implements domain.PantryRepository over SQLite.
// Quantities are stored as integer thousandths of the canonical base unit,
// which keeps 3-decimal-place amounts exact in SQL comparisons.
package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/prepsense/backend/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// milliFactor converts between decimal amounts and stored thousandths.
var milliFactor = decimal.NewFromInt(1000)

// Store is a SQLite-backed pantry repository.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite database at dbPath and applies
// pending migrations.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer connection sidesteps SQLITE_BUSY between concurrent
	// deduction batches; sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Store{db: db}, nil
}

// runMigrations applies database migrations using golang-migrate.
func runMigrations(dbPath string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// ItemsForOwner returns the owner's inventory snapshot
func (s *Store) ItemsForOwner(ctx context.Context, ownerID string) ([]domain.PantryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, raw_name, canonical_name, category, quantity_milli, unit, expiration
		FROM pantry_items
		WHERE owner_id = ?
		ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query pantry items: %w", err)
	}
	defer rows.Close()

	var items []domain.PantryItem
	for rows.Next() {
		var (
			item       domain.PantryItem
			milli      int64
			unit       string
			expiration sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.RawName, &item.CanonicalName,
			&item.Category, &milli, &unit, &expiration); err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		item.Quantity = domain.CanonicalQuantity{
			Amount: fromMilli(milli),
			Unit:   domain.CanonicalUnit(unit),
		}
		if expiration.Valid {
			t, err := time.Parse(time.RFC3339, expiration.String)
			if err != nil {
				return nil, fmt.Errorf("parse expiration: %w", err)
			}
			item.Expiration = &t
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddItem inserts a pantry item; an existing id is replaced.
func (s *Store) AddItem(ctx context.Context, item domain.PantryItem) error {
	if item.ID == "" || item.OwnerID == "" {
		return domain.ErrInvalidRequest
	}
	if item.Quantity.Amount.IsNegative() {
		return domain.ErrNegativeAmount
	}

	var expiration interface{}
	if item.Expiration != nil {
		expiration = item.Expiration.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO pantry_items
			(id, owner_id, raw_name, canonical_name, category, quantity_milli, unit, expiration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.RawName, item.CanonicalName, item.Category,
		toMilli(item.Quantity.Amount), string(item.Quantity.Unit), expiration)
	if err != nil {
		return fmt.Errorf("insert pantry item: %w", err)
	}
	return nil
}

// Deduct executes one deduction batch in a single serializable transaction.
// Every line issues a conditional update that decrements only while the row
// still covers the amount; a failed predicate marks the line insufficient
// without aborting the batch (partial-commit policy). Audit rows are written
// in the same transaction, so a rollback leaves no trace of failed batches.
func (s *Store) Deduct(ctx context.Context, ownerID string, lines []domain.DeductionLine, reason string) (domain.DeductionOutcome, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return domain.DeductionOutcome{}, translateTxError(err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var outcome domain.DeductionOutcome
	for _, line := range lines {
		milli := toMilli(line.Amount)

		res, err := tx.ExecContext(ctx, `
			UPDATE pantry_items
			SET quantity_milli = quantity_milli - ?
			WHERE id = ? AND owner_id = ? AND quantity_milli >= ?`,
			milli, line.PantryItemID, ownerID, milli)
		if err != nil {
			return domain.DeductionOutcome{}, translateTxError(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return domain.DeductionOutcome{}, fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			// Stale precondition or unknown item: report, keep going.
			outcome.Insufficient = append(outcome.Insufficient, line)
			continue
		}

		var unit string
		if err := tx.QueryRowContext(ctx,
			`SELECT unit FROM pantry_items WHERE id = ? AND owner_id = ?`,
			line.PantryItemID, ownerID).Scan(&unit); err != nil {
			return domain.DeductionOutcome{}, translateTxError(err)
		}

		record := domain.DeductionRecord{
			ID:            uuid.NewString(),
			PantryItemID:  line.PantryItemID,
			OwnerID:       ownerID,
			AmountRemoved: line.Amount,
			Unit:          domain.CanonicalUnit(unit),
			Timestamp:     now,
			Reason:        reason,
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO deduction_records (id, pantry_item_id, owner_id, amount_milli, unit, ts, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.PantryItemID, record.OwnerID, milli, unit,
			now.Format(time.RFC3339Nano), reason); err != nil {
			return domain.DeductionOutcome{}, translateTxError(err)
		}
		outcome.Succeeded = append(outcome.Succeeded, record)
	}

	if err := tx.Commit(); err != nil {
		return domain.DeductionOutcome{}, translateTxError(err)
	}
	return outcome, nil
}

// Records returns the owner's audit rows, oldest first
func (s *Store) Records(ctx context.Context, ownerID string) ([]domain.DeductionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pantry_item_id, owner_id, amount_milli, unit, ts, reason
		FROM deduction_records
		WHERE owner_id = ?
		ORDER BY ts, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query deduction records: %w", err)
	}
	defer rows.Close()

	var records []domain.DeductionRecord
	for rows.Next() {
		var (
			record domain.DeductionRecord
			milli  int64
			unit   string
			ts     string
		)
		if err := rows.Scan(&record.ID, &record.PantryItemID, &record.OwnerID,
			&milli, &unit, &ts, &record.Reason); err != nil {
			return nil, fmt.Errorf("scan deduction record: %w", err)
		}
		record.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse record timestamp: %w", err)
		}
		record.AmountRemoved = fromMilli(milli)
		record.Unit = domain.CanonicalUnit(unit)
		records = append(records, record)
	}
	return records, rows.Err()
}

// translateTxError maps store-level failures onto the domain taxonomy so
// callers can decide whether to retry.
func translateTxError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case strings.Contains(err.Error(), "database is locked"),
		strings.Contains(err.Error(), "SQLITE_BUSY"):
		return fmt.Errorf("%w: %v", domain.ErrTransactionConflict, err)
	default:
		return fmt.Errorf("deduction transaction: %w", err)
	}
}

func toMilli(amount decimal.Decimal) int64 {
	return amount.Mul(milliFactor).Round(0).IntPart()
}

func fromMilli(milli int64) decimal.Decimal {
	return decimal.NewFromInt(milli).Div(milliFactor)
}
