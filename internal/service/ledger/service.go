// Package ledger owns every write to the Ledger Store: form validation,
// referential checks, cascades and the history entry of each mutation.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/repository"
	"github.com/mamadbah2/loombook/internal/service/audit"
)

// Service coordinates ledger mutations and snapshot reads.
type Service struct {
	store    repository.Ledger
	recorder audit.Recorder
	now      func() time.Time
	location *time.Location
	logger   *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone that decides the current calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// NewService wires the store and the history recorder.
func NewService(store repository.Ledger, recorder audit.Recorder, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:    store,
		recorder: recorder,
		now:      time.Now,
		location: time.UTC,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current calendar day in the configured timezone.
func (s *Service) Today() models.Date {
	return models.DateOf(s.now().In(s.location))
}

// Snapshot reads every collection concurrently. Any failed read fails the whole snapshot.
func (s *Service) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Weavers, err = s.store.Weavers.List(gctx)
		return wrap("list weavers", err)
	})
	g.Go(func() (err error) {
		snap.Designs, err = s.store.Designs.List(gctx)
		return wrap("list designs", err)
	})
	g.Go(func() (err error) {
		snap.ProductionLogs, err = s.store.ProductionLogs.List(gctx)
		return wrap("list production logs", err)
	})
	g.Go(func() (err error) {
		snap.Loans, err = s.store.Loans.List(gctx)
		return wrap("list loans", err)
	})
	g.Go(func() (err error) {
		snap.Repayments, err = s.store.Repayments.List(gctx)
		return wrap("list repayments", err)
	})
	g.Go(func() (err error) {
		snap.RentalPayments, err = s.store.RentalPayments.List(gctx)
		return wrap("list rental payments", err)
	})

	if err := g.Wait(); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// record writes the history entry of a mutation that has already been saved.
func (s *Service) record(ctx context.Context, action models.AuditAction, module, format string, args ...any) error {
	details := fmt.Sprintf(format, args...)
	s.logger.Info("ledger mutation",
		zap.String("action", string(action)),
		zap.String("module", module),
		zap.String("details", details),
		zap.String("role", string(models.RoleFrom(ctx))),
	)
	if s.recorder == nil {
		return nil
	}
	return s.recorder.Record(ctx, action, module, details)
}

func (s *Service) weaver(ctx context.Context, id int64) (models.Weaver, error) {
	w, err := s.store.Weavers.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Weaver{}, fmt.Errorf("%w: id %d", models.ErrWeaverNotFound, id)
	}
	if err != nil {
		return models.Weaver{}, fmt.Errorf("get weaver %d: %w", id, err)
	}
	return w, nil
}

func (s *Service) loan(ctx context.Context, id int64) (models.Loan, error) {
	l, err := s.store.Loans.Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Loan{}, fmt.Errorf("%w: id %d", models.ErrLoanNotFound, id)
	}
	if err != nil {
		return models.Loan{}, fmt.Errorf("get loan %d: %w", id, err)
	}
	return l, nil
}

// weaverName resolves a name for history text, falling back to the placeholder.
func (s *Service) weaverName(ctx context.Context, id int64) string {
	w, err := s.store.Weavers.Get(ctx, id)
	if err != nil {
		return models.Placeholder
	}
	return w.Name
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func rupees(amount decimal.Decimal) string {
	return "₹" + amount.String()
}
