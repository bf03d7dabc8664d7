package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
)

// Type names a report. It is the :type path segment of the reports API.
type Type string

const (
	TypeSalary            Type = "salary"
	TypeProduction        Type = "production"
	TypeYarn              Type = "yarn"
	TypeDelivery          Type = "delivery"
	TypeLoans             Type = "loans"
	TypeRentals           Type = "rentals"
	TypeDesignSummary     Type = "design-summary"
	TypeWeaverPerformance Type = "weaver-performance"
	TypeLoanProgress      Type = "loan-progress"
	TypeProductionLog     Type = "production-log"
	TypeWeaverRoster      Type = "weaver-roster"
	TypeFinancialLedger   Type = "financial-ledger"
)

// Types lists every report in menu order.
var Types = []Type{
	TypeSalary, TypeProduction, TypeYarn, TypeDelivery, TypeLoans, TypeRentals,
	TypeDesignSummary, TypeWeaverPerformance, TypeLoanProgress,
	TypeProductionLog, TypeWeaverRoster, TypeFinancialLedger,
}

// ParseType validates a report name.
func ParseType(value string) (Type, bool) {
	for _, t := range Types {
		if string(t) == value {
			return t, true
		}
	}
	return "", false
}

// RequiresRange reports whether the report needs both start and end dates.
func (t Type) RequiresRange() bool {
	switch t {
	case TypeLoans, TypeLoanProgress, TypeProductionLog, TypeWeaverRoster, TypeFinancialLedger:
		return false
	default:
		return true
	}
}

// Finance reports the report exposes loan or payment figures.
func (t Type) Finance() bool {
	switch t {
	case TypeSalary, TypeLoans, TypeRentals, TypeLoanProgress, TypeFinancialLedger:
		return true
	default:
		return false
	}
}

// Filter is applied before every fold. Zero values match everything.
type Filter struct {
	Range      models.DateRange
	WeaverID   int64
	DesignID   int64
	Status     derive.LogStatus
	LoanStatus models.LoanStatus
}

// Request selects a report, its filter and the salary deduction toggles.
type Request struct {
	Type          Type
	Filter        Filter
	DeductLoans   bool
	DeductRentals bool
}

// Column is one field of a report row, in display order.
type Column struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Row maps column keys to values: string, int, int64 or decimal.Decimal.
type Row map[string]any

// SummaryLine is a labelled figure printed under the totals, like a salary deduction.
type SummaryLine struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Report is the logical table every exporter serializes.
type Report struct {
	Type    Type               `json:"type"`
	Title   string             `json:"title"`
	Filter  Filter             `json:"-"`
	Columns []Column           `json:"columns"`
	Rows    []Row              `json:"rows"`
	Totals  Row                `json:"totals,omitempty"`
	Summary []SummaryLine      `json:"summary,omitempty"`
	Slip    *derive.SalarySlip `json:"slip,omitempty"`
}

func columns(pairs ...string) []Column {
	out := make([]Column, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Column{Key: pairs[i], Title: pairs[i+1]})
	}
	return out
}

// money rounds a currency or weight figure to what is displayed.
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// sumInts totals an integer column as displayed.
func sumInts(rows []Row, key string) int {
	total := 0
	for _, row := range rows {
		if v, ok := row[key].(int); ok {
			total += v
		}
	}
	return total
}

// sumDecimals totals a rounded currency or weight column as displayed.
func sumDecimals(rows []Row, key string) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if v, ok := row[key].(decimal.Decimal); ok {
			total = total.Add(v)
		}
	}
	return total
}
