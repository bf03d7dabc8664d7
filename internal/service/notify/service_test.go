package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

type fakeClient struct {
	to, body string
	calls    int
	err      error
}

func (f *fakeClient) SendText(_ context.Context, to, body string) (string, error) {
	f.calls++
	f.to, f.body = to, body
	return "wamid.1", f.err
}

func TestSendDigest(t *testing.T) {
	today := models.MustDate("2024-07-26")
	alerts := []models.Alert{
		{Type: models.AlertSalary, Severity: models.SeverityInfo, Message: "Prepare for end-of-month salary payouts.", Key: "salary-reminder"},
		{Type: models.AlertLoanDue, Severity: models.SeverityWarning, Message: "Loan for Amit Sharma is due in 3 days.", Key: "loan-2"},
		{Type: models.AlertLoanDue, Severity: models.SeverityError, Message: "Loan for Suresh Singh is overdue by 2 days.", Key: "loan-1"},
	}

	tests := []struct {
		name     string
		alerts   []models.Alert
		err      error
		wantSent bool
		wantCall int
		wantErr  bool
	}{
		{name: "empty list sends nothing", wantCall: 0},
		{name: "sends one message", alerts: alerts, wantSent: true, wantCall: 1},
		{name: "client failure", alerts: alerts, err: errors.New("timeout"), wantCall: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{err: tt.err}
			svc := NewService(fc, "919800000000", nil)

			sent, err := svc.SendDigest(context.Background(), today, tt.alerts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if sent != tt.wantSent || fc.calls != tt.wantCall {
				t.Fatalf("sent = %v calls = %d", sent, fc.calls)
			}
			if tt.wantSent && fc.to != "919800000000" {
				t.Errorf("recipient = %q", fc.to)
			}
		})
	}
}

func TestFormatDigestOrdersBySeverity(t *testing.T) {
	got := FormatDigest(models.MustDate("2024-07-26"), []models.Alert{
		{Severity: models.SeverityInfo, Message: "c"},
		{Severity: models.SeverityWarning, Message: "b"},
		{Severity: models.SeverityError, Message: "a"},
	})
	want := "Loombook alerts for 2024-07-26 (3)\n[OVERDUE] a\n[DUE] b\n[NOTE] c"
	if got != want {
		t.Fatalf("digest =\n%s\nwant\n%s", got, want)
	}
}
