package models

import "github.com/shopspring/decimal"

// LoanStatus is advisory on the stored record; balances are always derived from repayments.
type LoanStatus string

const (
	LoanPending LoanStatus = "Pending"
	LoanPaid    LoanStatus = "Paid"
)

// Loan is an advance given to a weaver.
type Loan struct {
	ID            int64           `json:"id" bson:"_id"`
	WeaverID      int64           `json:"weaverId" bson:"weaver_id"`
	Amount        decimal.Decimal `json:"amount" bson:"amount"`
	IssueDate     Date            `json:"issueDate" bson:"issue_date"`
	DueDate       *Date           `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	RepaymentDate *Date           `json:"repaymentDate,omitempty" bson:"repayment_date,omitempty"`
	Status        LoanStatus      `json:"status" bson:"status"`
}

func (l Loan) EntityID() int64 { return l.ID }

func (l Loan) WithID(id int64) Loan {
	l.ID = id
	return l
}

func (l Loan) Validate() error {
	if l.WeaverID <= 0 {
		return Invalid("weaverId", "is required")
	}
	if !l.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if l.IssueDate.IsZero() {
		return Invalid("issueDate", "is required")
	}
	if l.DueDate != nil && !l.DueDate.IsZero() && l.DueDate.Before(l.IssueDate) {
		return Invalid("dueDate", "must not be before the issue date")
	}
	if l.Status != "" && l.Status != LoanPending && l.Status != LoanPaid {
		return Invalid("status", "must be Pending or Paid")
	}
	return nil
}

// Repayment is money returned against a loan.
type Repayment struct {
	ID     int64           `json:"id" bson:"_id"`
	LoanID int64           `json:"loanId" bson:"loan_id"`
	Amount decimal.Decimal `json:"amount" bson:"amount"`
	Date   Date            `json:"date" bson:"date"`
}

func (r Repayment) EntityID() int64 { return r.ID }

func (r Repayment) WithID(id int64) Repayment {
	r.ID = id
	return r
}

func (r Repayment) Validate() error {
	if r.LoanID <= 0 {
		return Invalid("loanId", "is required")
	}
	if !r.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if r.Date.IsZero() {
		return Invalid("date", "is required")
	}
	return nil
}

// RentalPayment is a loom rent payment by a weaver on a rented loom.
type RentalPayment struct {
	ID       int64           `json:"id" bson:"_id"`
	WeaverID int64           `json:"weaverId" bson:"weaver_id"`
	Amount   decimal.Decimal `json:"amount" bson:"amount"`
	Date     Date            `json:"date" bson:"date"`
}

func (p RentalPayment) EntityID() int64 { return p.ID }

func (p RentalPayment) WithID(id int64) RentalPayment {
	p.ID = id
	return p
}

func (p RentalPayment) Validate() error {
	if p.WeaverID <= 0 {
		return Invalid("weaverId", "is required")
	}
	if !p.Amount.IsPositive() {
		return Invalid("amount", "must be greater than zero")
	}
	if p.Date.IsZero() {
		return Invalid("date", "is required")
	}
	return nil
}
