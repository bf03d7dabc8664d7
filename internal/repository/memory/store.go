// Package memory is an in-process Ledger Store used by tests and demo mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/repository"
)

// Table holds one collection keyed by id.
type Table[T repository.Entity[T]] struct {
	mu     sync.RWMutex
	name   string
	rows   map[int64]T
	nextID int64
}

// NewTable creates an empty collection.
func NewTable[T repository.Entity[T]](name string) *Table[T] {
	return &Table[T]{name: name, rows: make(map[int64]T)}
}

// List returns every record ordered by id.
func (t *Table[T]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out, nil
}

func (t *Table[T]) Get(_ context.Context, id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", t.name, id, models.ErrNotFound)
	}
	return row, nil
}

func (t *Table[T]) Create(_ context.Context, record T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	stored := record.WithID(t.nextID)
	t.rows[t.nextID] = stored
	return stored, nil
}

func (t *Table[T]) Update(_ context.Context, record T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := record.EntityID()
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.name, id, models.ErrNotFound)
	}
	t.rows[id] = record
	return nil
}

func (t *Table[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.name, id, models.ErrNotFound)
	}
	delete(t.rows, id)
	return nil
}

// AuditLog is the append-only history table.
type AuditLog struct {
	table *Table[models.AuditLog]
}

func (a *AuditLog) Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error) {
	return a.table.Create(ctx, entry)
}

func (a *AuditLog) List(ctx context.Context) ([]models.AuditLog, error) {
	return a.table.List(ctx)
}

// New returns an empty in-memory ledger.
func New() repository.Ledger {
	return repository.Ledger{
		Weavers:        NewTable[models.Weaver](repository.CollectionWeavers),
		Designs:        NewTable[models.Design](repository.CollectionDesigns),
		ProductionLogs: NewTable[models.ProductionLog](repository.CollectionProductionLogs),
		Loans:          NewTable[models.Loan](repository.CollectionLoans),
		Repayments:     NewTable[models.Repayment](repository.CollectionRepayments),
		RentalPayments: NewTable[models.RentalPayment](repository.CollectionRentalPayments),
		AuditLogs:      &AuditLog{table: NewTable[models.AuditLog](repository.CollectionAuditLogs)},
	}
}
