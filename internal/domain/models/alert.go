package models

// Severity ranks dashboard alerts.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// AlertType groups alerts by origin.
type AlertType string

const (
	AlertLoanDue   AlertType = "loan_due"
	AlertRentalDue AlertType = "rental_due"
	AlertSalary    AlertType = "salary"
)

// Alert is a derived reminder. Key is stable across recomputations.
type Alert struct {
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Key      string    `json:"key"`
}
