package derive

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

// SalaryInput selects the weaver, period and deductions of a salary slip.
type SalaryInput struct {
	WeaverID          int64
	Range             models.DateRange
	DeductLoans       bool
	DeductLoomRentals bool
}

// EarningLine is one produced item priced at the effective rate.
type EarningLine struct {
	LogID      int64           `json:"logId"`
	Date       models.Date     `json:"date"`
	DesignID   int64           `json:"designId"`
	DesignName string          `json:"designName"`
	Color      string          `json:"color"`
	Quantity   int             `json:"quantity"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
}

// DeductionKind tells where a deduction comes from.
type DeductionKind string

const (
	DeductionLoan   DeductionKind = "loan"
	DeductionRental DeductionKind = "rental"
)

// DeductionLine is one repayment or rental payment withheld from salary.
type DeductionLine struct {
	Key    string          `json:"key"`
	Kind   DeductionKind   `json:"kind"`
	Label  string          `json:"label"`
	Date   models.Date     `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// SalarySlip is the full salary computation for one weaver and period.
type SalarySlip struct {
	Weaver          models.Weaver    `json:"weaver"`
	Period          models.DateRange `json:"period"`
	Earnings        []EarningLine    `json:"earnings"`
	Deductions      []DeductionLine  `json:"deductions"`
	TotalQuantity   int              `json:"totalQuantity"`
	TotalEarnings   decimal.Decimal  `json:"totalEarnings"`
	LoanDeduction   decimal.Decimal  `json:"loanDeduction"`
	RentalDeduction decimal.Decimal  `json:"rentalDeduction"`
	TotalDeductions decimal.Decimal  `json:"totalDeductions"`
	NetSalary       decimal.Decimal  `json:"netSalary"`
}

// EffectiveRate is the design's default rate when the design exists, else the weaver's own rate.
func EffectiveRate(snap models.Snapshot, weaver models.Weaver, designID int64) decimal.Decimal {
	if d, ok := snap.Design(designID); ok {
		return d.DefaultRate
	}
	return weaver.Rate
}

// Salary computes earnings from production minus the selected deductions.
// The only failure is an unknown weaver; an empty period yields a zero slip.
func Salary(snap models.Snapshot, in SalaryInput) (SalarySlip, error) {
	weaver, ok := snap.Weaver(in.WeaverID)
	if !ok {
		return SalarySlip{}, fmt.Errorf("salary for weaver %d: %w", in.WeaverID, models.ErrWeaverNotFound)
	}

	slip := SalarySlip{
		Weaver:          weaver,
		Period:          in.Range,
		Earnings:        []EarningLine{},
		Deductions:      []DeductionLine{},
		TotalEarnings:   decimal.Zero,
		LoanDeduction:   decimal.Zero,
		RentalDeduction: decimal.Zero,
	}

	for _, log := range snap.ProductionLogs {
		if log.WeaverID != weaver.ID || !in.Range.Contains(log.Date) {
			continue
		}
		for _, item := range log.Items {
			rate := EffectiveRate(snap, weaver, item.DesignID)
			name := snap.DesignName(item.DesignID)
			if name == models.Placeholder {
				name = "Unknown"
			}
			line := EarningLine{
				LogID:      log.ID,
				Date:       log.Date,
				DesignID:   item.DesignID,
				DesignName: name,
				Color:      item.Color,
				Quantity:   item.Quantity,
				Rate:       rate,
				Amount:     rate.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
			slip.Earnings = append(slip.Earnings, line)
			slip.TotalQuantity += line.Quantity
			slip.TotalEarnings = slip.TotalEarnings.Add(line.Amount)
		}
	}

	if in.DeductLoans {
		for _, r := range snap.Repayments {
			loan, ok := snap.Loan(r.LoanID)
			if !ok || loan.WeaverID != weaver.ID || !in.Range.Contains(r.Date) {
				continue
			}
			slip.Deductions = append(slip.Deductions, DeductionLine{
				Key:    fmt.Sprintf("loan-%d", r.ID),
				Kind:   DeductionLoan,
				Label:  "Loan Repayment on " + r.Date.USFormat(),
				Date:   r.Date,
				Amount: r.Amount,
			})
			slip.LoanDeduction = slip.LoanDeduction.Add(r.Amount)
		}
	}

	if in.DeductLoomRentals {
		for _, p := range snap.RentalPayments {
			if p.WeaverID != weaver.ID || !in.Range.Contains(p.Date) {
				continue
			}
			slip.Deductions = append(slip.Deductions, DeductionLine{
				Key:    fmt.Sprintf("rental-%d", p.ID),
				Kind:   DeductionRental,
				Label:  "Loom Rental on " + p.Date.USFormat(),
				Date:   p.Date,
				Amount: p.Amount,
			})
			slip.RentalDeduction = slip.RentalDeduction.Add(p.Amount)
		}
	}

	slip.TotalDeductions = slip.LoanDeduction.Add(slip.RentalDeduction)
	slip.NetSalary = slip.TotalEarnings.Sub(slip.TotalDeductions)
	return slip, nil
}
