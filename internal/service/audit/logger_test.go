package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/repository/memory"
)

type failingRepo struct{}

func (failingRepo) Append(context.Context, models.AuditLog) (models.AuditLog, error) {
	return models.AuditLog{}, errors.New("disk full")
}

func (failingRepo) List(context.Context) ([]models.AuditLog, error) { return nil, nil }

func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func TestRecordStampsRoleAndTime(t *testing.T) {
	store := memory.New()
	start := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	logger := NewLogger(store.AuditLogs, steppingClock(start), nil)

	ctx := models.WithRole(context.Background(), models.RoleFinance)
	if err := logger.Record(ctx, models.ActionCreated, ModuleLoans, "Created new loan of ₹5000 for Rajesh Kumar."); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, _ := store.AuditLogs.List(context.Background())
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	got := entries[0]
	if got.User != models.RoleFinance || got.Module != ModuleLoans || got.Action != models.ActionCreated {
		t.Errorf("entry = %+v", got)
	}
	if !got.Timestamp.Equal(start.Add(time.Minute)) {
		t.Errorf("timestamp = %v", got.Timestamp)
	}
}

func TestRecordFailureIsSurfaced(t *testing.T) {
	logger := NewLogger(failingRepo{}, nil, nil)
	err := logger.Record(context.Background(), models.ActionDeleted, ModuleWeavers, "Deleted weaver: X (ID: 1)")
	if !errors.Is(err, models.ErrHistoryNotRecorded) {
		t.Fatalf("err = %v, want ErrHistoryNotRecorded", err)
	}
}

func TestHistoryFiltersNewestFirst(t *testing.T) {
	store := memory.New()
	logger := NewLogger(store.AuditLogs, steppingClock(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)), nil)

	admin := context.Background()
	finance := models.WithRole(admin, models.RoleFinance)
	records := []struct {
		ctx     context.Context
		action  models.AuditAction
		module  string
		details string
	}{
		{admin, models.ActionCreated, ModuleWeavers, "Created weaver: Rajesh Kumar"},
		{finance, models.ActionCreated, ModuleLoans, "Created new loan of ₹5000 for Rajesh Kumar."},
		{finance, models.ActionCreated, ModuleLoans, "Added repayment of ₹1000 for Amit Singh."},
		{admin, models.ActionDeleted, ModuleDesigns, "Deleted design: Floral"},
	}
	for _, r := range records {
		if err := logger.Record(r.ctx, r.action, r.module, r.details); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter HistoryFilter
		want   []string
	}{
		{name: "all", want: []string{"Deleted design: Floral", "Added repayment of ₹1000 for Amit Singh.", "Created new loan of ₹5000 for Rajesh Kumar.", "Created weaver: Rajesh Kumar"}},
		{name: "module", filter: HistoryFilter{Module: ModuleLoans}, want: []string{"Added repayment of ₹1000 for Amit Singh.", "Created new loan of ₹5000 for Rajesh Kumar."}},
		{name: "action", filter: HistoryFilter{Action: models.ActionDeleted}, want: []string{"Deleted design: Floral"}},
		{name: "user", filter: HistoryFilter{User: models.RoleAdmin}, want: []string{"Deleted design: Floral", "Created weaver: Rajesh Kumar"}},
		{name: "search", filter: HistoryFilter{Search: "rajesh"}, want: []string{"Created new loan of ₹5000 for Rajesh Kumar.", "Created weaver: Rajesh Kumar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := logger.History(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("History: %v", err)
			}
			if len(h.Entries) != len(tt.want) {
				t.Fatalf("entries = %d, want %d", len(h.Entries), len(tt.want))
			}
			for i, e := range h.Entries {
				if e.Details != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, e.Details, tt.want[i])
				}
			}
			if len(h.Modules) != 3 {
				t.Errorf("modules = %v", h.Modules)
			}
		})
	}
}
