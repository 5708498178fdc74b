package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"myexpense/internal/backend"
	"myexpense/internal/core"
	applog "myexpense/internal/log"
	"myexpense/internal/stats"
)

// Quick add inserts this fixed sample transaction.
const (
	QuickAddName     = "Test Expense"
	QuickAddCents    = 1050
	QuickAddCategory = "General"
	QuickAddType     = core.Expense
)

// Options tune a TransactionService. Zero values select defaults.
type Options struct {
	Calendar    stats.Calendar
	Now         func() time.Time
	TopN        int
	RecentLimit int
	Logger      *applog.Logger
}

// TransactionService is the single writer of a record store and the entry
// point for every derived view. Mutations are serialized; reads work on the
// store's last committed snapshot and run concurrently.
type TransactionService struct {
	store  backend.Store
	cal    stats.Calendar
	now    func() time.Time
	topN   int
	recent int
	logger *applog.Logger

	writeMu sync.Mutex
}

func NewTransactionService(store backend.Store, opts Options) *TransactionService {
	s := &TransactionService{
		store:  store,
		cal:    opts.Calendar,
		now:    opts.Now,
		topN:   opts.TopN,
		recent: opts.RecentLimit,
		logger: opts.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.topN <= 0 {
		s.topN = stats.DefaultTopN
	}
	if s.recent <= 0 {
		s.recent = stats.DefaultRecentLimit
	}
	if s.logger == nil {
		s.logger = applog.FromContext(context.Background())
	}
	s.logger = s.logger.WithComponent(applog.ComponentService)
	return s
}

// Form is the raw entry form as typed by the user.
type Form struct {
	Name     string
	Amount   string
	Date     time.Time
	Type     string
	Category string
}

// Submit parses and validates a form, then stores the resulting transaction.
func (s *TransactionService) Submit(ctx context.Context, f Form) (core.Transaction, error) {
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return core.Transaction{}, &core.ValidationError{Field: "amount", Err: err}
	}
	typ, err := core.ParseType(f.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	return s.Add(ctx, core.Input{
		Name:     f.Name,
		Amount:   amount,
		Date:     f.Date,
		Type:     typ,
		Category: f.Category,
	})
}

// Add normalizes in and stores it. Nothing is written when validation fails.
func (s *TransactionService) Add(ctx context.Context, in core.Input) (core.Transaction, error) {
	t, err := core.NewTransaction(in, s.now())
	if err != nil {
		s.logger.WarnContext(ctx, "Transaction rejected", applog.NewFields().
			WithOperation(applog.OpValidate).
			WithErrorType(applog.ErrorTypeValidation).
			WithError(err).
			ToSlice()...)
		return core.Transaction{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Append(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save transaction", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithErrorType(applog.ErrorTypeDatabase).
			WithTransaction(t.ID, t.Name, t.Amount.Cents, t.Type.String(), t.Category).
			WithError(err).
			ToSlice()...)
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction created", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithTransaction(t.ID, t.Name, t.Amount.Cents, t.Type.String(), t.Category).
		ToSlice()...)
	return t, nil
}

// QuickAdd stores the fixed sample expense dated now.
func (s *TransactionService) QuickAdd(ctx context.Context) (core.Transaction, error) {
	return s.Add(ctx, core.Input{
		Name:     QuickAddName,
		Amount:   core.Money{Cents: QuickAddCents},
		Type:     QuickAddType,
		Category: QuickAddCategory,
	})
}

// Delete removes a transaction. An unknown id succeeds without effect.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete transaction",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldID, id,
			applog.FieldError, err)
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldID, id,
		applog.FieldDeleted, deleted)
	return nil
}

// All returns every committed transaction, newest first.
func (s *TransactionService) All(ctx context.Context) ([]core.Transaction, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return records, nil
}

// Search applies the browse-all filters to the committed transactions.
func (s *TransactionService) Search(ctx context.Context, c stats.Criteria) ([]core.Transaction, error) {
	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Filter(records, c), nil
}

// Recent returns the newest n transactions; n <= 0 uses the configured limit.
func (s *TransactionService) Recent(ctx context.Context, n int) ([]core.Transaction, error) {
	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.recent
	}
	return stats.Recent(records, n), nil
}

// Summary returns all-time income, expense and balance totals.
func (s *TransactionService) Summary(ctx context.Context) (stats.Summary, error) {
	records, err := s.All(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(records), nil
}

// Dashboard is the statistics view for one type and granularity.
type Dashboard struct {
	Type        core.TransactionType
	Granularity stats.Granularity
	Now         time.Time
	Window      stats.Window
	Points      []stats.Point
	Total       core.Money
	Top         []core.Transaction
	Summary     stats.Summary
}

// Dashboard computes chart points, the top list and the summary from a
// single snapshot and a single reading of the clock.
func (s *TransactionService) Dashboard(ctx context.Context, typ core.TransactionType, g stats.Granularity) (Dashboard, error) {
	if !typ.IsValid() {
		return Dashboard{}, &core.ValidationError{Field: "type", Err: core.ErrInvalidType}
	}
	if !g.IsValid() {
		return Dashboard{}, fmt.Errorf("invalid granularity %q", g)
	}

	records, err := s.All(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	now := s.now()
	d := Dashboard{
		Type:        typ,
		Granularity: g,
		Now:         now,
		Window:      s.cal.Window(g, now),
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		d.Points = stats.AggregateWindow(records, typ, d.Window)
		d.Total = stats.Sum(d.Points)
		return egCtx.Err()
	})
	eg.Go(func() error {
		d.Top = stats.TopNWindow(records, typ, d.Window, s.topN)
		return egCtx.Err()
	})
	eg.Go(func() error {
		d.Summary = stats.Summarize(records)
		return egCtx.Err()
	})
	if err := eg.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("build dashboard: %w", err)
	}

	s.logger.DebugContext(ctx, "Dashboard built",
		applog.FieldOperation, applog.OpStats,
		applog.FieldType, typ,
		applog.FieldGranularity, g,
		applog.FieldCount, len(records))
	return d, nil
}
