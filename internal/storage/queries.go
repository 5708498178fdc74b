package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Transaction is a row of the transactions table.
type Transaction struct {
	Seq         int64
	ID          string
	Name        string
	AmountCents int64
	OccurredAt  int64 // unix microseconds
	Type        string
	Category    string
}

const createTransaction = `
INSERT INTO transactions (id, name, amount_cents, occurred_at, type, category)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateTransactionParams struct {
	ID          string
	Name        string
	AmountCents int64
	OccurredAt  int64
	Type        string
	Category    string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		arg.ID,
		arg.Name,
		arg.AmountCents,
		arg.OccurredAt,
		arg.Type,
		arg.Category,
	)
	return err
}

const deleteTransaction = `
UPDATE transactions
SET deleted_at = ?
WHERE id = ? AND deleted_at IS NULL
`

type DeleteTransactionParams struct {
	ID        string
	DeletedAt int64 // unix microseconds
}

// DeleteTransaction tombstones a live row and reports how many rows changed.
func (q *Queries) DeleteTransaction(ctx context.Context, arg DeleteTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, arg.DeletedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listTransactions = `
SELECT seq, id, name, amount_cents, occurred_at, type, category
FROM transactions
WHERE deleted_at IS NULL
ORDER BY occurred_at DESC, seq DESC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.Seq,
			&i.ID,
			&i.Name,
			&i.AmountCents,
			&i.OccurredAt,
			&i.Type,
			&i.Category,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
