// Package repository defines the Ledger Store boundary consumed by the services.
package repository

import (
	"context"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

// Entity is a ledger record with a store-assigned integer id.
type Entity[T any] interface {
	EntityID() int64
	WithID(id int64) T
}

// Repository is the list/create/update/delete contract of one collection.
type Repository[T Entity[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	// Create assigns the next id and returns the stored record.
	Create(ctx context.Context, record T) (T, error)
	// Update replaces the whole record. It returns models.ErrNotFound for unknown ids.
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int64) error
}

// AuditRepository is append-only: history is never edited or removed.
type AuditRepository interface {
	Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error)
	List(ctx context.Context) ([]models.AuditLog, error)
}

// Ledger groups one repository per collection.
type Ledger struct {
	Weavers        Repository[models.Weaver]
	Designs        Repository[models.Design]
	ProductionLogs Repository[models.ProductionLog]
	Loans          Repository[models.Loan]
	Repayments     Repository[models.Repayment]
	RentalPayments Repository[models.RentalPayment]
	AuditLogs      AuditRepository
}

// Collection names shared by every backend.
const (
	CollectionWeavers        = "weavers"
	CollectionDesigns        = "designs"
	CollectionProductionLogs = "production_logs"
	CollectionLoans          = "loans"
	CollectionRepayments     = "repayments"
	CollectionRentalPayments = "rental_payments"
	CollectionAuditLogs      = "audit_logs"
)
