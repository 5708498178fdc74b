package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"myexpense/internal/core"
	applog "myexpense/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; SQLite would otherwise report SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements backend.Appender
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		ID:          t.ID,
		Name:        t.Name,
		AmountCents: t.Amount.Cents,
		OccurredAt:  t.Date.UnixMicro(),
		Type:        t.Type.String(),
		Category:    t.Category,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create transaction %s: %w", t.ID, core.ErrDuplicateID)
		}
		return fmt.Errorf("create transaction: %w", err)
	}

	applog.FromContext(ctx).WithComponent(applog.ComponentStorage).
		DebugContext(ctx, "Transaction saved to SQLite", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(t.ID, t.Name, t.Amount.Cents, t.Type.String(), t.Category).
			ToSlice()...)

	return nil
}

// Delete implements backend.Deleter. The row is kept as a tombstone so the
// id stays taken.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.queries.DeleteTransaction(ctx, DeleteTransactionParams{
		ID:        id,
		DeletedAt: time.Now().UnixMicro(),
	})
	if err != nil {
		return false, fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return n > 0, nil
}

// All implements backend.Lister
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		out[i] = core.Transaction{
			ID:       row.ID,
			Name:     row.Name,
			Amount:   core.Money{Cents: row.AmountCents},
			Date:     time.UnixMicro(row.OccurredAt).UTC(),
			Type:     core.TransactionType(row.Type),
			Category: row.Category,
		}
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
