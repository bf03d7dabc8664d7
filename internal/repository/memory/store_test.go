package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

func TestTableLifecycle(t *testing.T) {
	ctx := context.Background()
	table := NewTable[models.Design]("designs")

	first, err := table.Create(ctx, models.Design{Name: "Classic Check"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, _ := table.Create(ctx, models.Design{Name: "Diamond Weave"})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids: got %d and %d, want 1 and 2", first.ID, second.ID)
	}

	second.Name = "Diamond Weave II"
	if err := table.Update(ctx, second); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := table.Get(ctx, 2)
	if err != nil || got.Name != "Diamond Weave II" {
		t.Fatalf("get after update: got %+v, %v", got, err)
	}

	if err := table.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ := table.List(ctx)
	if len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("list after delete: got %+v", rows)
	}

	third, _ := table.Create(ctx, models.Design{Name: "Striped"})
	if third.ID != 3 {
		t.Errorf("ids are never reused: got %d, want 3", third.ID)
	}
}

func TestTableMissingRecords(t *testing.T) {
	ctx := context.Background()
	table := NewTable[models.Loan]("loans")

	if _, err := table.Get(ctx, 9); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("get: got %v, want ErrNotFound", err)
	}
	if err := table.Update(ctx, models.Loan{ID: 9}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("update: got %v, want ErrNotFound", err)
	}
	if err := table.Delete(ctx, 9); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("delete: got %v, want ErrNotFound", err)
	}
}

func TestAuditLogAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	ledger := New()

	for _, details := range []string{"one", "two"} {
		if _, err := ledger.AuditLogs.Append(ctx, models.AuditLog{Action: models.ActionCreated, Details: details}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	entries, _ := ledger.AuditLogs.List(ctx)
	if len(entries) != 2 || entries[0].Details != "one" || entries[1].ID != 2 {
		t.Errorf("got %+v", entries)
	}
}
