package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/service/audit"
)

func (s *Service) ListDesigns(ctx context.Context) ([]models.Design, error) {
	designs, err := s.store.Designs.List(ctx)
	return designs, wrap("list designs", err)
}

func (s *Service) CreateDesign(ctx context.Context, d models.Design) (models.Design, error) {
	if err := d.Validate(); err != nil {
		return models.Design{}, err
	}
	created, err := s.store.Designs.Create(ctx, d)
	if err != nil {
		return models.Design{}, fmt.Errorf("create design: %w", err)
	}
	return created, s.record(ctx, models.ActionCreated, audit.ModuleDesigns, "Created design: %s", created.Name)
}

// UpdateDesign replaces the design and records which fields changed.
func (s *Service) UpdateDesign(ctx context.Context, d models.Design) (models.Design, error) {
	if err := d.Validate(); err != nil {
		return models.Design{}, err
	}
	old, err := s.store.Designs.Get(ctx, d.ID)
	if err != nil {
		return models.Design{}, fmt.Errorf("get design %d: %w", d.ID, err)
	}
	if err := s.store.Designs.Update(ctx, d); err != nil {
		return models.Design{}, fmt.Errorf("update design %d: %w", d.ID, err)
	}

	changes := designChanges(old, d)
	if changes == "" {
		changes = "No changes detected"
	}
	return d, s.record(ctx, models.ActionUpdated, audit.ModuleDesigns, "Updated design %s. Changes: %s.", d.Name, changes)
}

func (s *Service) DeleteDesign(ctx context.Context, id int64) error {
	d, err := s.store.Designs.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get design %d: %w", id, err)
	}
	if err := s.store.Designs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete design %d: %w", id, err)
	}
	return s.record(ctx, models.ActionDeleted, audit.ModuleDesigns, "Deleted design: %s (ID: %d)", d.Name, d.ID)
}

func designChanges(old, updated models.Design) string {
	var parts []string
	diff := func(field, before, after string) {
		if before != after {
			parts = append(parts, fmt.Sprintf("%s: '%s' to '%s'", field, before, after))
		}
	}
	diff("name", old.Name, updated.Name)
	diff("towelSize", string(old.TowelSize), string(updated.TowelSize))
	diff("defaultRate", old.DefaultRate.String(), updated.DefaultRate.String())
	diff("image", old.Image, updated.Image)
	return strings.Join(parts, ", ")
}

