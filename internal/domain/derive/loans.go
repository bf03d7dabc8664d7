package derive

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

// LoanBalance is a loan with its balance recomputed from repayments.
type LoanBalance struct {
	models.Loan
	WeaverName  string          `json:"weaverName"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Balance computes the balance of a single loan. The stored Status is
// overwritten: Paid when outstanding <= 0, Pending otherwise. Overpayments
// leave a negative outstanding.
func Balance(loan models.Loan, repayments []models.Repayment) LoanBalance {
	paid := decimal.Zero
	for _, r := range repayments {
		if r.LoanID == loan.ID {
			paid = paid.Add(r.Amount)
		}
	}

	outstanding := loan.Amount.Sub(paid)
	derived := loan
	derived.Status = models.LoanPending
	if !outstanding.IsPositive() {
		derived.Status = models.LoanPaid
	}

	return LoanBalance{Loan: derived, TotalPaid: paid, Outstanding: outstanding}
}

// LoanBalances computes balances for every loan in the snapshot, in snapshot order.
func LoanBalances(snap models.Snapshot) []LoanBalance {
	out := make([]LoanBalance, 0, len(snap.Loans))
	for _, loan := range snap.Loans {
		b := Balance(loan, snap.Repayments)
		b.WeaverName = snap.WeaverName(loan.WeaverID)
		out = append(out, b)
	}
	return out
}

// PendingTotal sums the positive outstanding balances.
func PendingTotal(balances []LoanBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		if b.Outstanding.IsPositive() {
			total = total.Add(b.Outstanding)
		}
	}
	return total
}
