package derive

import (
	"fmt"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

const (
	loanWarningDays   = 7
	rentalWarningDays = 3
	salaryReminderDay = 25
)

// Alerts evaluates every reminder rule against the snapshot as of today.
// All matching rules fire; alerts sharing a key are reported once.
func Alerts(snap models.Snapshot, today models.Date) []models.Alert {
	var alerts []models.Alert
	seen := make(map[string]struct{})
	add := func(a models.Alert) {
		if _, dup := seen[a.Key]; dup {
			return
		}
		seen[a.Key] = struct{}{}
		alerts = append(alerts, a)
	}

	for _, b := range LoanBalances(snap) {
		if a, ok := loanAlert(b, today); ok {
			add(a)
		}
	}

	for _, w := range snap.Weavers {
		if a, ok := rentalAlert(w, snap.RentalPayments, today); ok {
			add(a)
		}
	}

	if today.Day() >= salaryReminderDay {
		add(models.Alert{
			Type:     models.AlertSalary,
			Severity: models.SeverityInfo,
			Message:  "Prepare for end-of-month salary payouts.",
			Key:      "salary-reminder",
		})
	}

	return alerts
}

func loanAlert(b LoanBalance, today models.Date) (models.Alert, bool) {
	if !b.Outstanding.IsPositive() || b.DueDate == nil || b.DueDate.IsZero() {
		return models.Alert{}, false
	}

	key := fmt.Sprintf("loan-%d", b.ID)
	days := b.DueDate.DaysSince(today)
	switch {
	case days >= 0 && days <= loanWarningDays:
		return models.Alert{
			Type:     models.AlertLoanDue,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("Loan for %s is due in %d days.", b.WeaverName, days),
			Key:      key,
		}, true
	case days < 0:
		return models.Alert{
			Type:     models.AlertLoanDue,
			Severity: models.SeverityError,
			Message:  fmt.Sprintf("Loan for %s is overdue by %d days.", b.WeaverName, -days),
			Key:      key,
		}, true
	default:
		return models.Alert{}, false
	}
}

func rentalAlert(w models.Weaver, payments []models.RentalPayment, today models.Date) (models.Alert, bool) {
	terms, ok := w.Loom.Terms()
	if !ok {
		return models.Alert{}, false
	}

	due := NextRentalDue(w.JoinDate, terms.Period, payments, w.ID)
	if due.DaysSince(today) > rentalWarningDays {
		return models.Alert{}, false
	}

	return models.Alert{
		Type:     models.AlertRentalDue,
		Severity: models.SeverityWarning,
		Message:  fmt.Sprintf("Loom rental for %s is due soon.", w.Name),
		Key:      fmt.Sprintf("rental-%d", w.ID),
	}, true
}

// NextRentalDue is one period after the latest rental payment of the weaver,
// or one period after joinDate when nothing has been paid yet.
func NextRentalDue(joinDate models.Date, period models.RentalPeriod, payments []models.RentalPayment, weaverID int64) models.Date {
	last := joinDate
	paid := false
	for _, p := range payments {
		if p.WeaverID != weaverID {
			continue
		}
		if !paid || p.Date.After(last) {
			last = p.Date
			paid = true
		}
	}
	return last.AddDays(period.Days())
}
