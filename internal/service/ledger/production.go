package ledger

import (
	"context"
	"fmt"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/service/audit"
)

func (s *Service) ListProductionLogs(ctx context.Context) ([]models.ProductionLog, error) {
	logs, err := s.store.ProductionLogs.List(ctx)
	return logs, wrap("list production logs", err)
}

// CreateProductionLog stores a log for an existing weaver.
func (s *Service) CreateProductionLog(ctx context.Context, log models.ProductionLog) (models.ProductionLog, error) {
	if err := log.Validate(); err != nil {
		return models.ProductionLog{}, err
	}
	w, err := s.weaver(ctx, log.WeaverID)
	if err != nil {
		return models.ProductionLog{}, err
	}

	created, err := s.store.ProductionLogs.Create(ctx, log)
	if err != nil {
		return models.ProductionLog{}, fmt.Errorf("create production log: %w", err)
	}
	return created, s.record(ctx, models.ActionCreated, audit.ModuleProduction,
		"Added new log for %s - %d total pcs.", w.Name, created.TotalQuantity())
}

func (s *Service) UpdateProductionLog(ctx context.Context, log models.ProductionLog) (models.ProductionLog, error) {
	if err := log.Validate(); err != nil {
		return models.ProductionLog{}, err
	}
	w, err := s.weaver(ctx, log.WeaverID)
	if err != nil {
		return models.ProductionLog{}, err
	}
	if err := s.store.ProductionLogs.Update(ctx, log); err != nil {
		return models.ProductionLog{}, fmt.Errorf("update production log %d: %w", log.ID, err)
	}
	return log, s.record(ctx, models.ActionUpdated, audit.ModuleProduction,
		"Updated log ID %d for weaver %s.", log.ID, w.Name)
}

func (s *Service) DeleteProductionLog(ctx context.Context, id int64) error {
	log, err := s.store.ProductionLogs.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get production log %d: %w", id, err)
	}
	if err := s.store.ProductionLogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete production log %d: %w", id, err)
	}
	return s.record(ctx, models.ActionDeleted, audit.ModuleProduction,
		"Deleted log ID %d for weaver %s.", id, s.weaverName(ctx, log.WeaverID))
}
