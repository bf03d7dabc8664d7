package ledger

import (
	"context"
	"fmt"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/service/audit"
)

func (s *Service) ListLoans(ctx context.Context) ([]models.Loan, error) {
	loans, err := s.store.Loans.List(ctx)
	return loans, wrap("list loans", err)
}

// CreateLoan issues a loan to an existing weaver. The stored status defaults to Pending.
func (s *Service) CreateLoan(ctx context.Context, loan models.Loan) (models.Loan, error) {
	if loan.Status == "" {
		loan.Status = models.LoanPending
	}
	if err := loan.Validate(); err != nil {
		return models.Loan{}, err
	}
	w, err := s.weaver(ctx, loan.WeaverID)
	if err != nil {
		return models.Loan{}, err
	}

	created, err := s.store.Loans.Create(ctx, loan)
	if err != nil {
		return models.Loan{}, fmt.Errorf("create loan: %w", err)
	}
	return created, s.record(ctx, models.ActionCreated, audit.ModuleLoans,
		"Created new loan of %s for %s.", rupees(created.Amount), w.Name)
}

func (s *Service) UpdateLoan(ctx context.Context, loan models.Loan) (models.Loan, error) {
	if loan.Status == "" {
		loan.Status = models.LoanPending
	}
	if err := loan.Validate(); err != nil {
		return models.Loan{}, err
	}
	w, err := s.weaver(ctx, loan.WeaverID)
	if err != nil {
		return models.Loan{}, err
	}
	if err := s.store.Loans.Update(ctx, loan); err != nil {
		return models.Loan{}, fmt.Errorf("update loan %d: %w", loan.ID, err)
	}
	return loan, s.record(ctx, models.ActionUpdated, audit.ModuleLoans,
		"Updated loan ID %d for %s to %s.", loan.ID, w.Name, rupees(loan.Amount))
}

// DeleteLoan removes the loan's repayments first, then the loan.
func (s *Service) DeleteLoan(ctx context.Context, id int64) error {
	loan, err := s.loan(ctx, id)
	if err != nil {
		return err
	}

	repayments, err := s.store.Repayments.List(ctx)
	if err != nil {
		return fmt.Errorf("list repayments: %w", err)
	}
	for _, r := range repayments {
		if r.LoanID != id {
			continue
		}
		if err := s.store.Repayments.Delete(ctx, r.ID); err != nil {
			return fmt.Errorf("delete repayment %d of loan %d: %w", r.ID, id, err)
		}
	}

	if err := s.store.Loans.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete loan %d: %w", id, err)
	}
	return s.record(ctx, models.ActionDeleted, audit.ModuleLoans,
		"Deleted loan ID %d (%s) for %s.", id, rupees(loan.Amount), s.weaverName(ctx, loan.WeaverID))
}

func (s *Service) ListRepayments(ctx context.Context) ([]models.Repayment, error) {
	repayments, err := s.store.Repayments.List(ctx)
	return repayments, wrap("list repayments", err)
}

// CreateRepayment records money returned against an existing loan.
func (s *Service) CreateRepayment(ctx context.Context, r models.Repayment) (models.Repayment, error) {
	if err := r.Validate(); err != nil {
		return models.Repayment{}, err
	}
	loan, err := s.loan(ctx, r.LoanID)
	if err != nil {
		return models.Repayment{}, err
	}

	created, err := s.store.Repayments.Create(ctx, r)
	if err != nil {
		return models.Repayment{}, fmt.Errorf("create repayment: %w", err)
	}
	return created, s.record(ctx, models.ActionCreated, audit.ModuleRepayments,
		"Added repayment of %s for %s.", rupees(created.Amount), s.weaverName(ctx, loan.WeaverID))
}

func (s *Service) UpdateRepayment(ctx context.Context, r models.Repayment) (models.Repayment, error) {
	if err := r.Validate(); err != nil {
		return models.Repayment{}, err
	}
	loan, err := s.loan(ctx, r.LoanID)
	if err != nil {
		return models.Repayment{}, err
	}
	if err := s.store.Repayments.Update(ctx, r); err != nil {
		return models.Repayment{}, fmt.Errorf("update repayment %d: %w", r.ID, err)
	}
	return r, s.record(ctx, models.ActionUpdated, audit.ModuleRepayments,
		"Updated repayment for %s to %s.", s.weaverName(ctx, loan.WeaverID), rupees(r.Amount))
}

func (s *Service) DeleteRepayment(ctx context.Context, id int64) error {
	r, err := s.store.Repayments.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get repayment %d: %w", id, err)
	}
	if err := s.store.Repayments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete repayment %d: %w", id, err)
	}

	name := models.Placeholder
	if loan, err := s.store.Loans.Get(ctx, r.LoanID); err == nil {
		name = s.weaverName(ctx, loan.WeaverID)
	}
	return s.record(ctx, models.ActionDeleted, audit.ModuleRepayments,
		"Deleted repayment of %s for %s.", rupees(r.Amount), name)
}

func (s *Service) ListRentalPayments(ctx context.Context) ([]models.RentalPayment, error) {
	payments, err := s.store.RentalPayments.List(ctx)
	return payments, wrap("list rental payments", err)
}

// CreateRentalPayment logs loom rent from a weaver on a rented loom.
func (s *Service) CreateRentalPayment(ctx context.Context, p models.RentalPayment) (models.RentalPayment, error) {
	w, err := s.rentalWeaver(ctx, p)
	if err != nil {
		return models.RentalPayment{}, err
	}

	created, err := s.store.RentalPayments.Create(ctx, p)
	if err != nil {
		return models.RentalPayment{}, fmt.Errorf("create rental payment: %w", err)
	}
	return created, s.record(ctx, models.ActionCreated, audit.ModuleRentals,
		"Logged rental payment of %s for %s.", rupees(created.Amount), w.Name)
}

func (s *Service) UpdateRentalPayment(ctx context.Context, p models.RentalPayment) (models.RentalPayment, error) {
	w, err := s.rentalWeaver(ctx, p)
	if err != nil {
		return models.RentalPayment{}, err
	}
	if err := s.store.RentalPayments.Update(ctx, p); err != nil {
		return models.RentalPayment{}, fmt.Errorf("update rental payment %d: %w", p.ID, err)
	}
	return p, s.record(ctx, models.ActionUpdated, audit.ModuleRentals,
		"Updated rental payment for %s to %s.", w.Name, rupees(p.Amount))
}

func (s *Service) DeleteRentalPayment(ctx context.Context, id int64) error {
	p, err := s.store.RentalPayments.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get rental payment %d: %w", id, err)
	}
	if err := s.store.RentalPayments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rental payment %d: %w", id, err)
	}
	return s.record(ctx, models.ActionDeleted, audit.ModuleRentals,
		"Deleted rental payment of %s for %s.", rupees(p.Amount), s.weaverName(ctx, p.WeaverID))
}

func (s *Service) rentalWeaver(ctx context.Context, p models.RentalPayment) (models.Weaver, error) {
	if err := p.Validate(); err != nil {
		return models.Weaver{}, err
	}
	w, err := s.weaver(ctx, p.WeaverID)
	if err != nil {
		return models.Weaver{}, err
	}
	if !w.Loom.IsRental() {
		return models.Weaver{}, models.Invalid("weaverId", "%s does not rent a loom", w.Name)
	}
	return w, nil
}
