// Package audit records ledger mutations and serves the history view.
package audit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/models"
	"github.com/mamadbah2/loombook/internal/repository"
)

// Modules named in history entries.
const (
	ModuleWeavers    = "Weavers"
	ModuleDesigns    = "Designs"
	ModuleProduction = "Production"
	ModuleLoans      = "Finance - Loans"
	ModuleRepayments = "Finance - Repayments"
	ModuleRentals    = "Finance - Rentals"
)

// Recorder is the write side used by mutation flows.
type Recorder interface {
	Record(ctx context.Context, action models.AuditAction, module, details string) error
}

// Logger appends history entries and answers history queries.
type Logger struct {
	repo   repository.AuditRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewLogger builds an audit logger. A nil clock means time.Now.
func NewLogger(repo repository.AuditRepository, now func() time.Time, logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Logger{repo: repo, now: now, logger: logger}
}

// Record appends one entry stamped with the acting role. A failed append is
// logged and reported as ErrHistoryNotRecorded.
func (l *Logger) Record(ctx context.Context, action models.AuditAction, module, details string) error {
	entry := models.AuditLog{
		Timestamp: l.now().UTC(),
		User:      models.RoleFrom(ctx),
		Action:    action,
		Module:    module,
		Details:   details,
	}

	if _, err := l.repo.Append(ctx, entry); err != nil {
		l.logger.Error("failed to record history",
			zap.String("module", module),
			zap.String("action", string(action)),
			zap.String("details", details),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", models.ErrHistoryNotRecorded, err)
	}
	return nil
}

// HistoryFilter narrows the history view. Empty fields match everything.
type HistoryFilter struct {
	Module string
	Action models.AuditAction
	User   models.Role
	Search string
}

// History is the filtered, newest-first list plus every module seen in history.
type History struct {
	Entries []models.AuditLog `json:"entries"`
	Modules []string          `json:"modules"`
}

// History lists entries matching the filter, newest first.
func (l *Logger) History(ctx context.Context, filter HistoryFilter) (History, error) {
	all, err := l.repo.List(ctx)
	if err != nil {
		return History{}, fmt.Errorf("list history: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	seen := make(map[string]struct{})
	out := History{Entries: []models.AuditLog{}, Modules: []string{}}

	for _, entry := range all {
		if _, ok := seen[entry.Module]; !ok {
			seen[entry.Module] = struct{}{}
			out.Modules = append(out.Modules, entry.Module)
		}
		if filter.Module != "" && entry.Module != filter.Module {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.User != "" && entry.User != filter.User {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(entry.Details), search) {
			continue
		}
		out.Entries = append(out.Entries, entry)
	}

	sort.SliceStable(out.Entries, func(i, j int) bool {
		a, b := out.Entries[i], out.Entries[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		return a.ID > b.ID
	})
	sort.Strings(out.Modules)

	return out, nil
}
