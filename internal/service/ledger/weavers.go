package ledger

import (
	"context"
	"fmt"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/service/audit"
)

func (s *Service) ListWeavers(ctx context.Context) ([]models.Weaver, error) {
	weavers, err := s.store.Weavers.List(ctx)
	return weavers, wrap("list weavers", err)
}

// CreateWeaver validates and stores a new weaver.
func (s *Service) CreateWeaver(ctx context.Context, w models.Weaver) (models.Weaver, error) {
	w.DesignAllocations = numberAllocations(w.DesignAllocations)
	if err := w.Validate(); err != nil {
		return models.Weaver{}, err
	}

	created, err := s.store.Weavers.Create(ctx, w)
	if err != nil {
		return models.Weaver{}, fmt.Errorf("create weaver: %w", err)
	}
	return created, s.record(ctx, models.ActionCreated, audit.ModuleWeavers, "Created weaver: %s", created.Name)
}

// UpdateWeaver replaces the whole weaver record.
func (s *Service) UpdateWeaver(ctx context.Context, w models.Weaver) (models.Weaver, error) {
	w.DesignAllocations = numberAllocations(w.DesignAllocations)
	if err := w.Validate(); err != nil {
		return models.Weaver{}, err
	}
	if _, err := s.weaver(ctx, w.ID); err != nil {
		return models.Weaver{}, err
	}

	if err := s.store.Weavers.Update(ctx, w); err != nil {
		return models.Weaver{}, fmt.Errorf("update weaver %d: %w", w.ID, err)
	}
	return w, s.record(ctx, models.ActionUpdated, audit.ModuleWeavers, "Updated weaver: %s", w.Name)
}

// DeleteWeaver removes the weaver. Logs and payments that reference it are kept
// and render the placeholder name.
func (s *Service) DeleteWeaver(ctx context.Context, id int64) error {
	w, err := s.weaver(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Weavers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete weaver %d: %w", id, err)
	}
	return s.record(ctx, models.ActionDeleted, audit.ModuleWeavers, "Deleted weaver: %s (ID: %d)", w.Name, w.ID)
}

// CopyAllocations replaces the destination weaver's design allocations with the source's.
func (s *Service) CopyAllocations(ctx context.Context, fromID, toID int64) (models.Weaver, error) {
	if fromID <= 0 || toID <= 0 {
		return models.Weaver{}, models.Invalid("weaverId", "select both a source and a destination weaver")
	}
	if fromID == toID {
		return models.Weaver{}, models.Invalid("toWeaverId", "must differ from the source weaver")
	}

	from, err := s.weaver(ctx, fromID)
	if err != nil {
		return models.Weaver{}, err
	}
	to, err := s.weaver(ctx, toID)
	if err != nil {
		return models.Weaver{}, err
	}

	to.DesignAllocations = make([]models.WeaverDesignAllocation, 0, len(from.DesignAllocations))
	for _, a := range from.DesignAllocations {
		a.Colors = append([]string(nil), a.Colors...)
		to.DesignAllocations = append(to.DesignAllocations, a)
	}

	if err := s.store.Weavers.Update(ctx, to); err != nil {
		return models.Weaver{}, fmt.Errorf("update weaver %d: %w", to.ID, err)
	}
	return to, s.record(ctx, models.ActionUpdated, audit.ModuleWeavers,
		"Copied design allocation from %s to %s.", from.Name, to.Name)
}

// numberAllocations gives every allocation without an id the next free one.
func numberAllocations(allocs []models.WeaverDesignAllocation) []models.WeaverDesignAllocation {
	var maxID int64
	for _, a := range allocs {
		if a.AllocationID > maxID {
			maxID = a.AllocationID
		}
	}
	out := make([]models.WeaverDesignAllocation, len(allocs))
	for i, a := range allocs {
		if a.AllocationID == 0 {
			maxID++
			a.AllocationID = maxID
		}
		if a.Status == "" {
			a.Status = models.AllocationActive
		}
		out[i] = a
	}
	return out
}
