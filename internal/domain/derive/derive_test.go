package derive

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func kg(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func datePtr(d models.Date) *models.Date { return &d }

var today = models.MustDate("2024-07-10")

func fixture() models.Snapshot {
	return models.Snapshot{
		Weavers: []models.Weaver{
			{
				ID: 1, Name: "Rajesh Kumar", JoinDate: models.MustDate("2023-01-15"),
				WageType: models.WagePerPiece, Rate: dec("15"), Loom: models.OwnLoom(101),
				DesignAllocations: []models.WeaverDesignAllocation{
					{AllocationID: 101, DesignID: 1, Colors: []string{"Red"}, Status: models.AllocationActive},
					{AllocationID: 102, DesignID: 2, Colors: []string{"White"}, Status: models.AllocationCompleted},
				},
			},
			{
				ID: 2, Name: "Suresh Singh", JoinDate: models.MustDate("2023-02-20"),
				WageType: models.WagePerPiece, Rate: dec("18"),
				Loom: models.RentedLoom(102, dec("500"), models.RentalWeekly),
			},
		},
		Designs: []models.Design{
			{ID: 1, Name: "Classic Check", TowelSize: models.SizeM, DefaultRate: dec("18")},
			{ID: 2, Name: "Diamond Weave", TowelSize: models.SizeL, DefaultRate: dec("20")},
		},
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		repayments  []string
		outstanding string
		paid        string
		status      models.LoanStatus
	}{
		{"partial payment", "5000", []string{"1000", "500"}, "3500", "1500", models.LoanPending},
		{"settled", "3000", []string{"3000"}, "0", "3000", models.LoanPaid},
		{"no repayments", "2500", nil, "2500", "0", models.LoanPending},
		{"overpayment keeps signed value", "1000", []string{"700", "500"}, "-200", "1200", models.LoanPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := models.Loan{ID: 7, WeaverID: 1, Amount: dec(tt.amount), Status: models.LoanPaid}
			repayments := []models.Repayment{{ID: 99, LoanID: 8, Amount: dec("123")}}
			for i, amt := range tt.repayments {
				repayments = append(repayments, models.Repayment{ID: int64(i + 1), LoanID: 7, Amount: dec(amt)})
			}

			got := Balance(loan, repayments)
			if !got.Outstanding.Equal(dec(tt.outstanding)) {
				t.Errorf("outstanding: got %s, want %s", got.Outstanding, tt.outstanding)
			}
			if !got.TotalPaid.Equal(dec(tt.paid)) {
				t.Errorf("totalPaid: got %s, want %s", got.TotalPaid, tt.paid)
			}
			if got.Status != tt.status {
				t.Errorf("status: got %s, want %s", got.Status, tt.status)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	snap := fixture()
	weaver, _ := snap.Weaver(1)

	tests := []struct {
		name   string
		items  []models.ProductionLogItem
		weaver *models.Weaver
		want   LogStatus
	}{
		{"all completed", []models.ProductionLogItem{{DesignID: 2, Quantity: 3}}, &weaver, StatusCompleted},
		{"any active", []models.ProductionLogItem{{DesignID: 2, Quantity: 3}, {DesignID: 1, Quantity: 1}}, &weaver, StatusOngoing},
		{"no allocation", []models.ProductionLogItem{{DesignID: 9, Quantity: 3}}, &weaver, StatusArchived},
		{"no items", nil, &weaver, StatusUnknown},
		{"missing weaver", []models.ProductionLogItem{{DesignID: 1, Quantity: 3}}, nil, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := models.ProductionLog{ID: 1, WeaverID: 1, Items: tt.items}
			if got := Status(log, tt.weaver); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStatusFollowsAllocationChanges(t *testing.T) {
	snap := fixture()
	log := models.ProductionLog{ID: 1, WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Quantity: 4}}}
	if got := StatusIn(snap, log); got != StatusOngoing {
		t.Fatalf("before completion: got %s, want %s", got, StatusOngoing)
	}

	snap.Weavers[0].DesignAllocations[0].Status = models.AllocationCompleted
	if got := StatusIn(snap, log); got != StatusCompleted {
		t.Fatalf("after completion: got %s, want %s", got, StatusCompleted)
	}
}

func TestSalaryDesignRateWins(t *testing.T) {
	snap := fixture()
	snap.ProductionLogs = []models.ProductionLog{
		{ID: 1, Date: models.MustDate("2024-07-05"), WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Color: "Red", Quantity: 10}}},
		{ID: 2, Date: models.MustDate("2024-06-01"), WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Color: "Red", Quantity: 50}}},
	}

	slip, err := Salary(snap, SalaryInput{
		WeaverID: 1,
		Range:    models.DateRange{Start: models.MustDate("2024-07-01"), End: models.MustDate("2024-07-31")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slip.Earnings) != 1 {
		t.Fatalf("earnings lines: got %d, want 1", len(slip.Earnings))
	}
	if !slip.Earnings[0].Amount.Equal(dec("180")) {
		t.Errorf("amount: got %s, want 180", slip.Earnings[0].Amount)
	}
	if !slip.Earnings[0].Rate.Equal(dec("18")) {
		t.Errorf("rate: got %s, want 18", slip.Earnings[0].Rate)
	}
}

func TestSalaryFallsBackToWeaverRate(t *testing.T) {
	snap := fixture()
	snap.ProductionLogs = []models.ProductionLog{
		{ID: 1, Date: models.MustDate("2024-07-05"), WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 42, Color: "Red", Quantity: 4}}},
	}

	slip, err := Salary(snap, SalaryInput{WeaverID: 1, Range: models.DateRange{Start: models.MustDate("2024-07-05"), End: models.MustDate("2024-07-05")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slip.TotalEarnings.Equal(dec("60")) {
		t.Errorf("total earnings: got %s, want 60", slip.TotalEarnings)
	}
	if slip.Earnings[0].DesignName != "Unknown" {
		t.Errorf("design name: got %q, want Unknown", slip.Earnings[0].DesignName)
	}
}

func TestSalaryDeductions(t *testing.T) {
	snap := fixture()
	snap.ProductionLogs = []models.ProductionLog{
		{ID: 1, Date: models.MustDate("2024-07-02"), WeaverID: 2, Items: []models.ProductionLogItem{{DesignID: 2, Color: "Gold", Quantity: 100}}},
	}
	snap.Loans = []models.Loan{
		{ID: 1, WeaverID: 2, Amount: dec("5000")},
		{ID: 2, WeaverID: 1, Amount: dec("900")},
	}
	snap.Repayments = []models.Repayment{
		{ID: 1, LoanID: 1, Amount: dec("300"), Date: models.MustDate("2024-07-03")},
		{ID: 2, LoanID: 1, Amount: dec("400"), Date: models.MustDate("2024-08-01")},
		{ID: 3, LoanID: 2, Amount: dec("900"), Date: models.MustDate("2024-07-03")},
	}
	snap.RentalPayments = []models.RentalPayment{
		{ID: 1, WeaverID: 2, Amount: dec("250"), Date: models.MustDate("2024-07-05")},
		{ID: 2, WeaverID: 2, Amount: dec("250"), Date: models.MustDate("2024-07-31")},
	}
	period := models.DateRange{Start: models.MustDate("2024-07-01"), End: models.MustDate("2024-07-31")}

	tests := []struct {
		name        string
		loans       bool
		rentals     bool
		deductions  int
		net         string
		loanTotal   string
		rentalTotal string
	}{
		{"both", true, true, 3, "1200", "300", "500"},
		{"loans only", true, false, 1, "1700", "300", "0"},
		{"rentals only", false, true, 2, "1500", "0", "500"},
		{"none", false, false, 0, "2000", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slip, err := Salary(snap, SalaryInput{WeaverID: 2, Range: period, DeductLoans: tt.loans, DeductLoomRentals: tt.rentals})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(slip.Deductions) != tt.deductions {
				t.Errorf("deductions: got %d, want %d", len(slip.Deductions), tt.deductions)
			}
			if !slip.NetSalary.Equal(dec(tt.net)) {
				t.Errorf("net: got %s, want %s", slip.NetSalary, tt.net)
			}
			if !slip.LoanDeduction.Equal(dec(tt.loanTotal)) {
				t.Errorf("loan deduction: got %s, want %s", slip.LoanDeduction, tt.loanTotal)
			}
			if !slip.RentalDeduction.Equal(dec(tt.rentalTotal)) {
				t.Errorf("rental deduction: got %s, want %s", slip.RentalDeduction, tt.rentalTotal)
			}
		})
	}

	slip, _ := Salary(snap, SalaryInput{WeaverID: 2, Range: period, DeductLoans: true})
	if slip.Deductions[0].Label != "Loan Repayment on 07/03/2024" {
		t.Errorf("label: got %q", slip.Deductions[0].Label)
	}
}

func TestSalaryEmptyPeriodAndUnknownWeaver(t *testing.T) {
	snap := fixture()
	slip, err := Salary(snap, SalaryInput{WeaverID: 1, Range: models.DateRange{Start: today, End: today}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slip.Earnings) != 0 || !slip.TotalEarnings.IsZero() || !slip.NetSalary.IsZero() {
		t.Errorf("expected zero slip, got %+v", slip)
	}

	_, err = Salary(snap, SalaryInput{WeaverID: 404})
	if !errors.Is(err, models.ErrWeaverNotFound) {
		t.Errorf("got %v, want ErrWeaverNotFound", err)
	}
}

func TestAlertsLoanDue(t *testing.T) {
	snap := fixture()
	snap.Loans = []models.Loan{
		{ID: 1, WeaverID: 1, Amount: dec("1000"), DueDate: datePtr(today.AddDays(5))},
		{ID: 2, WeaverID: 2, Amount: dec("1000"), DueDate: datePtr(today.AddDays(-2))},
		{ID: 3, WeaverID: 1, Amount: dec("1000"), DueDate: datePtr(today.AddDays(8))},
		{ID: 4, WeaverID: 1, Amount: dec("1000"), DueDate: datePtr(today.AddDays(-30))},
		{ID: 5, WeaverID: 1, Amount: dec("1000")},
		{ID: 6, WeaverID: 77, Amount: dec("1000"), DueDate: datePtr(today)},
	}
	snap.Repayments = []models.Repayment{{ID: 1, LoanID: 4, Amount: dec("1000")}}
	snap.Weavers = snap.Weavers[:1]

	got := Alerts(snap, today)
	byKey := make(map[string]models.Alert)
	for _, a := range got {
		byKey[a.Key] = a
	}

	d := byKey["loan-1"]
	if d.Severity != models.SeverityWarning || !strings.Contains(d.Message, "due in 5 days") {
		t.Errorf("loan-1: got %+v", d)
	}
	e := byKey["loan-2"]
	if e.Severity != models.SeverityError || !strings.Contains(e.Message, "overdue by 2 days") {
		t.Errorf("loan-2: got %+v", e)
	}
	if _, ok := byKey["loan-3"]; ok {
		t.Errorf("loan-3 is outside the warning window")
	}
	if _, ok := byKey["loan-4"]; ok {
		t.Errorf("loan-4 is settled")
	}
	if _, ok := byKey["loan-5"]; ok {
		t.Errorf("loan-5 has no due date")
	}
	if a := byKey["loan-6"]; a.Message != "Loan for N/A is due in 0 days." {
		t.Errorf("loan-6: got %q", a.Message)
	}
}

func TestAlertsRentalDue(t *testing.T) {
	snap := fixture()

	tests := []struct {
		name     string
		payments []models.RentalPayment
		want     bool
	}{
		{"paid recently", []models.RentalPayment{{ID: 1, WeaverID: 2, Date: today.AddDays(-1)}}, false},
		{"due in three days", []models.RentalPayment{{ID: 1, WeaverID: 2, Date: today.AddDays(-4)}}, true},
		{"latest payment counts", []models.RentalPayment{
			{ID: 1, WeaverID: 2, Date: today.AddDays(-1)},
			{ID: 2, WeaverID: 2, Date: today.AddDays(-20)},
		}, false},
		{"falls back to join date", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap.RentalPayments = tt.payments
			found := false
			for _, a := range Alerts(snap, today) {
				if a.Key == "rental-2" {
					found = true
					if a.Message != "Loom rental for Suresh Singh is due soon." {
						t.Errorf("message: got %q", a.Message)
					}
				}
				if a.Key == "rental-1" {
					t.Errorf("own loom must not raise a rental alert")
				}
			}
			if found != tt.want {
				t.Errorf("rental alert: got %v, want %v", found, tt.want)
			}
		})
	}
}

func TestAlertsSalaryReminder(t *testing.T) {
	snap := models.Snapshot{}
	if got := Alerts(snap, models.MustDate("2024-07-24")); len(got) != 0 {
		t.Errorf("day 24: got %d alerts, want 0", len(got))
	}
	got := Alerts(snap, models.MustDate("2024-07-25"))
	if len(got) != 1 || got[0].Key != "salary-reminder" || got[0].Severity != models.SeverityInfo {
		t.Errorf("day 25: got %+v", got)
	}
}

func TestDerivationsAreIdempotent(t *testing.T) {
	snap := fixture()
	snap.ProductionLogs = []models.ProductionLog{
		{ID: 1, Date: today, WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Color: "Red", Quantity: 10}}, YarnIssued: models.YarnIssued{Warp: kg("2.5")}},
	}
	snap.Loans = []models.Loan{{ID: 1, WeaverID: 2, Amount: dec("5000"), DueDate: datePtr(today.AddDays(3))}}
	snap.Repayments = []models.Repayment{{ID: 1, LoanID: 1, Amount: dec("1000"), Date: today}}

	if !reflect.DeepEqual(Dashboard(snap, today), Dashboard(snap, today)) {
		t.Errorf("dashboard differs between runs")
	}
	if !reflect.DeepEqual(Alerts(snap, today), Alerts(snap, today)) {
		t.Errorf("alerts differ between runs")
	}
	in := SalaryInput{WeaverID: 1, Range: models.DateRange{Start: today, End: today}, DeductLoans: true}
	a, _ := Salary(snap, in)
	b, _ := Salary(snap, in)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("salary differs between runs")
	}
}

func TestDashboard(t *testing.T) {
	snap := fixture()
	snap.ProductionLogs = []models.ProductionLog{
		{ID: 1, Date: today, WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Quantity: 10}, {DesignID: 2, Quantity: 5}}, YarnIssued: models.YarnIssued{Warp: kg("2.25"), Weft: kg("4")}},
		{ID: 2, Date: today, WeaverID: 2, Items: []models.ProductionLogItem{{DesignID: 2, Quantity: 7}}},
		{ID: 3, Date: today.AddDays(-6), WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Quantity: 3}}},
		{ID: 4, Date: today.AddDays(-7), WeaverID: 1, Items: []models.ProductionLogItem{{DesignID: 1, Quantity: 100}}},
	}
	snap.Loans = []models.Loan{
		{ID: 1, WeaverID: 1, Amount: dec("5000")},
		{ID: 2, WeaverID: 1, Amount: dec("100")},
	}
	snap.Repayments = []models.Repayment{
		{ID: 1, LoanID: 1, Amount: dec("1500")},
		{ID: 2, LoanID: 2, Amount: dec("150")},
	}

	stats := Dashboard(snap, today)
	if stats.DailyProduction != 22 {
		t.Errorf("daily production: got %d, want 22", stats.DailyProduction)
	}
	if stats.ActiveWeavers != 2 {
		t.Errorf("active weavers: got %d, want 2", stats.ActiveWeavers)
	}
	if !stats.PendingLoans.Equal(dec("3500")) {
		t.Errorf("pending loans: got %s, want 3500", stats.PendingLoans)
	}
	if stats.RentalLooms != 1 {
		t.Errorf("rental looms: got %d, want 1", stats.RentalLooms)
	}
	if len(stats.WeeklyTrend) != 7 || stats.WeeklyTrend[0].Production != 3 || stats.WeeklyTrend[6].Production != 22 {
		t.Errorf("weekly trend: got %+v", stats.WeeklyTrend)
	}
	if !stats.MaterialUsage.Warp.Equal(dec("2.25")) || !stats.MaterialUsage.Weft.Equal(dec("4")) {
		t.Errorf("material usage: got %+v", stats.MaterialUsage)
	}
}
