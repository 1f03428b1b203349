package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/foxowl-ops/digital-twin/internal/store"
)

// Store is the SQLite-backed transaction log, the default durable backend.
// Records survive process restarts; the log is the single source of truth
// for analytics.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and ensures the
// schema exists.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("New: creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("New: opening sqlite db: %w", err)
	}

	// A single connection keeps appends serialized and avoids SQLITE_BUSY
	// under concurrent writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("New: migrating schema: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS transactions (
			transaction_id  TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL,
			amount          REAL NOT NULL,
			currency        TEXT NOT NULL,
			merchant_id     TEXT NOT NULL,
			timestamp       TEXT NOT NULL,
			is_fraud        INTEGER NOT NULL,
			payment_gateway TEXT NOT NULL,
			latency_ms      INTEGER NOT NULL,
			status          TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append implements store.Store.
func (s *Store) Append(ctx context.Context, rec *store.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			transaction_id, user_id, amount, currency, merchant_id,
			timestamp, is_fraud, payment_gateway, latency_ms, status
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.TransactionID, rec.UserID, rec.Amount, rec.Currency, rec.MerchantID,
		rec.Timestamp.UTC().Format(time.RFC3339Nano), bool(rec.IsFraud),
		rec.PaymentGateway, rec.LatencyMS, string(rec.Status))
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
			return &store.DuplicateIDError{TransactionID: rec.TransactionID}
		}
		return &store.PersistenceError{Op: "sqlite append", Err: err}
	}
	return nil
}

// ListAll implements store.Store. Rowid order is insertion order.
func (s *Store) ListAll(ctx context.Context) ([]*store.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT transaction_id, user_id, amount, currency, merchant_id,
		       timestamp, is_fraud, payment_gateway, latency_ms, status
		FROM transactions
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, &store.PersistenceError{Op: "sqlite list", Err: err}
	}
	defer rows.Close()

	var records []*store.Record
	for rows.Next() {
		var (
			rec     store.Record
			ts      string
			isFraud bool
			status  string
		)
		if err := rows.Scan(&rec.TransactionID, &rec.UserID, &rec.Amount,
			&rec.Currency, &rec.MerchantID, &ts, &isFraud,
			&rec.PaymentGateway, &rec.LatencyMS, &status); err != nil {
			return nil, &store.PersistenceError{Op: "sqlite scan", Err: err}
		}

		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("ListAll: parsing timestamp of %s: %w", rec.TransactionID, err)
		}
		rec.IsFraud = store.Flag(isFraud)
		rec.Status = store.Status(status)

		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &store.PersistenceError{Op: "sqlite list", Err: err}
	}

	return records, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ store.Store = (*Store)(nil)
