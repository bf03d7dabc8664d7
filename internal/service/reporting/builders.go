package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
)

func salaryReport(snap models.Snapshot, req Request) (Report, error) {
	filtered := snap
	filtered.ProductionLogs = FilterLogs(snap, req.Filter)

	slip, err := derive.Salary(filtered, derive.SalaryInput{
		WeaverID:          req.Filter.WeaverID,
		Range:             req.Filter.Range,
		DeductLoans:       req.DeductLoans,
		DeductLoomRentals: req.DeductRentals,
	})
	if err != nil {
		return Report{}, err
	}

	rows := make([]Row, 0, len(slip.Earnings))
	for _, e := range slip.Earnings {
		rows = append(rows, Row{
			"date":     e.Date.String(),
			"design":   e.DesignName,
			"color":    e.Color,
			"quantity": e.Quantity,
			"rate":     money(e.Rate),
			"amount":   money(e.Amount),
		})
	}

	earned := sumDecimals(rows, "amount")
	net := earned
	summary := []SummaryLine{{Label: "Total Earnings", Value: earned}}
	for _, d := range slip.Deductions {
		amount := money(d.Amount)
		net = net.Sub(amount)
		summary = append(summary, SummaryLine{Label: d.Label, Value: amount.Neg()})
	}
	summary = append(summary, SummaryLine{Label: "Net Salary", Value: net})

	return Report{
		Title:   fmt.Sprintf("Salary Slip - %s", slip.Weaver.Name),
		Columns: columns("date", "Date", "design", "Design", "color", "Color", "quantity", "Quantity", "rate", "Rate", "amount", "Amount"),
		Rows:    rows,
		Totals:  Row{"quantity": sumInts(rows, "quantity"), "amount": earned},
		Summary: summary,
		Slip:    &slip,
	}, nil
}

// productionReport spreads each log's yarn over its items in proportion to quantity.
func productionReport(snap models.Snapshot, req Request) (Report, error) {
	logs := FilterLogs(snap, req.Filter)
	sortLogsNewestFirst(logs)

	var rows []Row
	for _, log := range logs {
		totalQty := decimal.NewFromInt(int64(log.TotalQuantity()))
		totalYarn := log.YarnIssued.TotalKg()
		weaver := snap.WeaverName(log.WeaverID)

		for _, item := range log.Items {
			yarn := decimal.Zero
			if totalQty.IsPositive() {
				yarn = totalYarn.Mul(decimal.NewFromInt(int64(item.Quantity))).Div(totalQty)
			}
			rows = append(rows, Row{
				"date":     log.Date.String(),
				"weaver":   weaver,
				"design":   snap.DesignName(item.DesignID),
				"color":    item.Color,
				"quantity": item.Quantity,
				"yarn_kg":  money(yarn),
			})
		}
	}

	return Report{
		Title:   "Production Summary",
		Columns: columns("date", "Date", "weaver", "Weaver", "design", "Design", "color", "Color", "quantity", "Quantity", "yarn_kg", "Yarn (kg)"),
		Rows:    rows,
		Totals:  Row{"quantity": sumInts(rows, "quantity"), "yarn_kg": sumDecimals(rows, "yarn_kg")},
	}, nil
}

type yarnTally struct {
	weaverID   int64
	name       string
	quantity   int
	warp, weft decimal.Decimal
}

func yarnReport(snap models.Snapshot, req Request) (Report, error) {
	byWeaver := make(map[int64]*yarnTally)
	for _, log := range FilterLogs(snap, req.Filter) {
		t, ok := byWeaver[log.WeaverID]
		if !ok {
			t = &yarnTally{weaverID: log.WeaverID, name: snap.WeaverName(log.WeaverID)}
			byWeaver[log.WeaverID] = t
		}
		t.quantity += log.TotalQuantity()
		t.warp = t.warp.Add(log.YarnIssued.WarpKg())
		t.weft = t.weft.Add(log.YarnIssued.WeftKg())
	}

	tallies := make([]*yarnTally, 0, len(byWeaver))
	for _, t := range byWeaver {
		tallies = append(tallies, t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].name != tallies[j].name {
			return tallies[i].name < tallies[j].name
		}
		return tallies[i].weaverID < tallies[j].weaverID
	})

	rows := make([]Row, 0, len(tallies))
	for _, t := range tallies {
		warp, weft := money(t.warp), money(t.weft)
		rows = append(rows, Row{
			"weaver":   t.name,
			"quantity": t.quantity,
			"warp_kg":  warp,
			"weft_kg":  weft,
			"total_kg": warp.Add(weft),
		})
	}

	return Report{
		Title:   "Yarn Usage by Weaver",
		Columns: columns("weaver", "Weaver", "quantity", "Quantity", "warp_kg", "Warp (kg)", "weft_kg", "Weft (kg)", "total_kg", "Total (kg)"),
		Rows:    rows,
		Totals: Row{
			"quantity": sumInts(rows, "quantity"),
			"warp_kg":  sumDecimals(rows, "warp_kg"),
			"weft_kg":  sumDecimals(rows, "weft_kg"),
			"total_kg": sumDecimals(rows, "total_kg"),
		},
	}, nil
}

// deliveryReport prints one chalan per production log.
func deliveryReport(snap models.Snapshot, req Request) (Report, error) {
	logs := FilterLogs(snap, req.Filter)
	rows := make([]Row, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, Row{
			"chalan_no": log.ID,
			"date":      log.Date.String(),
			"weaver":    snap.WeaverName(log.WeaverID),
			"quantity":  log.TotalQuantity(),
		})
	}

	return Report{
		Title:   "Delivery Report",
		Columns: columns("chalan_no", "Chalan No.", "date", "Date", "weaver", "Weaver", "quantity", "Quantity"),
		Rows:    rows,
		Totals:  Row{"quantity": sumInts(rows, "quantity")},
	}, nil
}

// loanReport filters on the issue date and the derived status.
func loanReport(snap models.Snapshot, req Request) (Report, error) {
	f := req.Filter
	var rows []Row
	for _, b := range derive.LoanBalances(snap) {
		if f.WeaverID > 0 && b.WeaverID != f.WeaverID {
			continue
		}
		if f.LoanStatus != "" && b.Status != f.LoanStatus {
			continue
		}
		if !f.Range.Contains(b.IssueDate) {
			continue
		}

		due := ""
		if b.DueDate != nil {
			due = b.DueDate.String()
		}
		rows = append(rows, Row{
			"loan_id":     b.ID,
			"weaver":      b.WeaverName,
			"issue_date":  b.IssueDate.String(),
			"due_date":    due,
			"amount":      money(b.Amount),
			"paid":        money(b.TotalPaid),
			"outstanding": money(b.Outstanding),
			"status":      string(b.Status),
		})
	}

	return Report{
		Title: "Loan Summary",
		Columns: columns("loan_id", "Loan ID", "weaver", "Weaver", "issue_date", "Issue Date", "due_date", "Due Date",
			"amount", "Amount", "paid", "Paid", "outstanding", "Outstanding", "status", "Status"),
		Rows: rows,
		Totals: Row{
			"amount":      sumDecimals(rows, "amount"),
			"paid":        sumDecimals(rows, "paid"),
			"outstanding": sumDecimals(rows, "outstanding"),
		},
	}, nil
}

func rentalReport(snap models.Snapshot, req Request) (Report, error) {
	f := req.Filter
	payments := make([]models.RentalPayment, 0, len(snap.RentalPayments))
	for _, p := range snap.RentalPayments {
		if f.WeaverID > 0 && p.WeaverID != f.WeaverID {
			continue
		}
		if !f.Range.Contains(p.Date) {
			continue
		}
		payments = append(payments, p)
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })

	rows := make([]Row, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, Row{
			"date":   p.Date.String(),
			"weaver": snap.WeaverName(p.WeaverID),
			"amount": money(p.Amount),
		})
	}

	return Report{
		Title:   "Rental Payments",
		Columns: columns("date", "Date", "weaver", "Weaver", "amount", "Amount"),
		Rows:    rows,
		Totals:  Row{"amount": sumDecimals(rows, "amount")},
	}, nil
}

type quantityTally struct {
	id       int64
	name     string
	quantity int
}

// sortTallies orders by quantity descending, then name, then id.
func sortTallies(tallies []*quantityTally) {
	sort.Slice(tallies, func(i, j int) bool {
		a, b := tallies[i], tallies[j]
		if a.quantity != b.quantity {
			return a.quantity > b.quantity
		}
		if a.name != b.name {
			return a.name < b.name
		}
		return a.id < b.id
	})
}

func designSummaryReport(snap models.Snapshot, req Request) (Report, error) {
	byDesign := make(map[int64]*quantityTally)
	for _, log := range FilterLogs(snap, req.Filter) {
		for _, item := range log.Items {
			t, ok := byDesign[item.DesignID]
			if !ok {
				t = &quantityTally{id: item.DesignID, name: snap.DesignName(item.DesignID)}
				byDesign[item.DesignID] = t
			}
			t.quantity += item.Quantity
		}
	}
	rows := tallyRows(byDesign, "design")

	return Report{
		Title:   "Design-wise Summary",
		Columns: columns("design", "Design", "quantity", "Quantity"),
		Rows:    rows,
		Totals:  Row{"quantity": sumInts(rows, "quantity")},
	}, nil
}

func weaverPerformanceReport(snap models.Snapshot, req Request) (Report, error) {
	byWeaver := make(map[int64]*quantityTally)
	for _, log := range FilterLogs(snap, req.Filter) {
		t, ok := byWeaver[log.WeaverID]
		if !ok {
			t = &quantityTally{id: log.WeaverID, name: snap.WeaverName(log.WeaverID)}
			byWeaver[log.WeaverID] = t
		}
		t.quantity += log.TotalQuantity()
	}
	rows := tallyRows(byWeaver, "weaver")

	return Report{
		Title:   "Weaver Performance",
		Columns: columns("weaver", "Weaver", "quantity", "Quantity"),
		Rows:    rows,
		Totals:  Row{"quantity": sumInts(rows, "quantity")},
	}, nil
}

func tallyRows(byID map[int64]*quantityTally, nameKey string) []Row {
	tallies := make([]*quantityTally, 0, len(byID))
	for _, t := range byID {
		tallies = append(tallies, t)
	}
	sortTallies(tallies)

	rows := make([]Row, 0, len(tallies))
	for _, t := range tallies {
		rows = append(rows, Row{nameKey: t.name, "quantity": t.quantity})
	}
	return rows
}

// loanProgressReport feeds the repayment chart, so outstanding is clamped at zero.
func loanProgressReport(snap models.Snapshot, req Request) (Report, error) {
	var rows []Row
	for _, b := range derive.LoanBalances(snap) {
		if req.Filter.WeaverID > 0 && b.WeaverID != req.Filter.WeaverID {
			continue
		}
		rows = append(rows, Row{
			"loan":        fmt.Sprintf("%s (ID %d)", b.WeaverName, b.ID),
			"paid":        money(b.TotalPaid),
			"outstanding": money(decimal.Max(decimal.Zero, b.Outstanding)),
		})
	}

	return Report{
		Title:   "Loan Repayment Progress",
		Columns: columns("loan", "Loan", "paid", "Paid", "outstanding", "Outstanding"),
		Rows:    rows,
		Totals:  Row{"paid": sumDecimals(rows, "paid"), "outstanding": sumDecimals(rows, "outstanding")},
	}, nil
}

// productionLogReport is the raw item-level export of production logs.
func productionLogReport(snap models.Snapshot, req Request) (Report, error) {
	var rows []Row
	for _, log := range FilterLogs(snap, req.Filter) {
		for _, item := range log.Items {
			rows = append(rows, Row{
				"log_id":    log.ID,
				"date":      log.Date.String(),
				"weaver_id": log.WeaverID,
				"weaver":    snap.WeaverName(log.WeaverID),
				"design_id": item.DesignID,
				"design":    snap.DesignName(item.DesignID),
				"color":     item.Color,
				"quantity":  item.Quantity,
				"warp_kg":   money(log.YarnIssued.WarpKg()),
				"weft_kg":   money(log.YarnIssued.WeftKg()),
			})
		}
	}

	return Report{
		Title: "Production Log Export",
		Columns: columns("log_id", "Log ID", "date", "Date", "weaver_id", "Weaver ID", "weaver", "Weaver",
			"design_id", "Design ID", "design", "Design", "color", "Color", "quantity", "Quantity",
			"warp_kg", "Warp (kg)", "weft_kg", "Weft (kg)"),
		Rows:   rows,
		Totals: Row{"quantity": sumInts(rows, "quantity")},
	}, nil
}

func weaverRosterReport(snap models.Snapshot, req Request) (Report, error) {
	var rows []Row
	for _, w := range snap.Weavers {
		if req.Filter.WeaverID > 0 && w.ID != req.Filter.WeaverID {
			continue
		}

		var active []string
		for _, a := range w.DesignAllocations {
			if a.Status != models.AllocationActive {
				continue
			}
			if d, ok := snap.Design(a.DesignID); ok {
				active = append(active, d.Name)
			}
		}

		var rentalCost any = models.Placeholder
		rentalPeriod := models.Placeholder
		if terms, ok := w.Loom.Terms(); ok {
			rentalCost = money(terms.Cost)
			rentalPeriod = string(terms.Period)
		}

		rows = append(rows, Row{
			"id":             w.ID,
			"name":           w.Name,
			"contact":        w.Contact,
			"join_date":      w.JoinDate.String(),
			"loom_number":    w.Loom.Number,
			"loom_type":      string(w.Loom.Type),
			"wage_type":      string(w.WageType),
			"rate":           money(w.Rate),
			"rental_cost":    rentalCost,
			"rental_period":  rentalPeriod,
			"active_designs": strings.Join(active, "; "),
		})
	}

	return Report{
		Title: "Weaver Roster",
		Columns: columns("id", "ID", "name", "Name", "contact", "Contact", "join_date", "Join Date",
			"loom_number", "Loom No.", "loom_type", "Loom Type", "wage_type", "Wage Type", "rate", "Rate",
			"rental_cost", "Rental Cost", "rental_period", "Rental Period", "active_designs", "Active Designs"),
		Rows: rows,
	}, nil
}

type ledgerEntry struct {
	date models.Date
	row  Row
}

// financialLedgerReport merges loans (debit) with repayments and rent (credit), oldest first.
func financialLedgerReport(snap models.Snapshot, req Request) (Report, error) {
	f := req.Filter
	var entries []ledgerEntry
	add := func(weaverID int64, date models.Date, row Row) {
		if f.WeaverID > 0 && weaverID != f.WeaverID {
			return
		}
		if !f.Range.Contains(date) {
			return
		}
		row["date"] = date.String()
		row["weaver"] = snap.WeaverName(weaverID)
		entries = append(entries, ledgerEntry{date: date, row: row})
	}

	for _, l := range snap.Loans {
		add(l.WeaverID, l.IssueDate, Row{
			"record_id":   fmt.Sprintf("loan-%d", l.ID),
			"weaver_id":   l.WeaverID,
			"type":        "Loan Issued",
			"description": fmt.Sprintf("Loan issued (ID: %d)", l.ID),
			"debit":       money(l.Amount),
			"credit":      decimal.Zero,
		})
	}
	for _, r := range snap.Repayments {
		var weaverID int64
		var weaverCell any = models.Placeholder
		if loan, ok := snap.Loan(r.LoanID); ok {
			weaverID = loan.WeaverID
			weaverCell = loan.WeaverID
		}
		add(weaverID, r.Date, Row{
			"record_id":   fmt.Sprintf("repayment-%d", r.ID),
			"weaver_id":   weaverCell,
			"type":        "Loan Repayment",
			"description": fmt.Sprintf("Repayment for Loan ID %d", r.LoanID),
			"debit":       decimal.Zero,
			"credit":      money(r.Amount),
		})
	}
	for _, p := range snap.RentalPayments {
		add(p.WeaverID, p.Date, Row{
			"record_id":   fmt.Sprintf("rental-%d", p.ID),
			"weaver_id":   p.WeaverID,
			"type":        "Rental Payment",
			"description": "Loom rental payment",
			"debit":       decimal.Zero,
			"credit":      money(p.Amount),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].date.Before(entries[j].date) })
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.row)
	}

	return Report{
		Title: "Financial Ledger",
		Columns: columns("record_id", "Record ID", "date", "Date", "weaver_id", "Weaver ID", "weaver", "Weaver",
			"type", "Type", "description", "Description", "debit", "Debit", "credit", "Credit"),
		Rows:   rows,
		Totals: Row{"debit": sumDecimals(rows, "debit"), "credit": sumDecimals(rows, "credit")},
	}, nil
}

func sortLogsNewestFirst(logs []models.ProductionLog) {
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
}
