package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/config"
	"github.com/mamadbah2/loombook/internal/domain/models"
)

type stubSource struct {
	snap  models.Snapshot
	today models.Date
	err   error
}

func (s stubSource) Snapshot(context.Context) (models.Snapshot, error) { return s.snap, s.err }

func (s stubSource) Today() models.Date { return s.today }

type recordingSender struct {
	alerts []models.Alert
	calls  int
}

func (r *recordingSender) SendDigest(_ context.Context, _ models.Date, alerts []models.Alert) (bool, error) {
	r.calls++
	r.alerts = alerts
	return len(alerts) > 0, nil
}

func TestRunAlertDigest(t *testing.T) {
	today := models.MustDate("2024-07-10")
	due := today.AddDays(5)
	source := stubSource{
		today: today,
		snap: models.Snapshot{
			Weavers: []models.Weaver{{ID: 1, Name: "Rajesh Kumar", Loom: models.OwnLoom(101)}},
			Loans:   []models.Loan{{ID: 1, WeaverID: 1, Amount: decimal.NewFromInt(100), IssueDate: models.MustDate("2024-06-01"), DueDate: &due}},
		},
	}
	sender := &recordingSender{}

	s, err := NewScheduler(config.AlertsConfig{CronSchedule: "0 8 * * *", Timezone: "Asia/Kolkata"}, source, sender, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.RunAlertDigest(context.Background()); err != nil {
		t.Fatalf("RunAlertDigest: %v", err)
	}

	if sender.calls != 1 || len(sender.alerts) != 1 || sender.alerts[0].Key != "loan-1" {
		t.Fatalf("sender got %+v after %d calls", sender.alerts, sender.calls)
	}
}

func TestRunAlertDigestSnapshotFailure(t *testing.T) {
	sender := &recordingSender{}
	s, err := NewScheduler(config.AlertsConfig{CronSchedule: "0 8 * * *", Timezone: "UTC"}, stubSource{err: errors.New("db down")}, sender, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.RunAlertDigest(context.Background()); err == nil {
		t.Fatal("expected snapshot error")
	}
	if sender.calls != 0 {
		t.Fatal("nothing should be sent when the snapshot fails")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.AlertsConfig{CronSchedule: "every morning", Timezone: "UTC"}, stubSource{}, &recordingSender{}, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected invalid cron expression to fail")
	}
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	if _, err := NewScheduler(config.AlertsConfig{CronSchedule: "0 8 * * *", Timezone: "Nowhere/Land"}, stubSource{}, &recordingSender{}, nil); err == nil {
		t.Fatal("expected timezone error")
	}
}
