// Package notify delivers the daily alert digest to the workshop manager over WhatsApp.
package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/models"
	client "github.com/mamadbah2/loombook/pkg/clients/whatsapp"
)

// Service sends alert digests to a single manager number.
type Service struct {
	client    client.Client
	managerID string
	logger    *zap.Logger
}

// NewService wires a new digest sender.
func NewService(c client.Client, managerID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: c, managerID: managerID, logger: logger}
}

var severityRank = map[models.Severity]int{
	models.SeverityError:   0,
	models.SeverityWarning: 1,
	models.SeverityInfo:    2,
}

var severityTag = map[models.Severity]string{
	models.SeverityError:   "OVERDUE",
	models.SeverityWarning: "DUE",
	models.SeverityInfo:    "NOTE",
}

// FormatDigest renders alerts most severe first, one per line.
func FormatDigest(today models.Date, alerts []models.Alert) string {
	sorted := append([]models.Alert(nil), alerts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityRank[sorted[i].Severity] < severityRank[sorted[j].Severity]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Loombook alerts for %s (%d)", today, len(sorted))
	for _, a := range sorted {
		fmt.Fprintf(&b, "\n[%s] %s", severityTag[a.Severity], a.Message)
	}
	return b.String()
}

// SendDigest sends one message listing the alerts. Nothing is sent for an empty list.
func (s *Service) SendDigest(ctx context.Context, today models.Date, alerts []models.Alert) (bool, error) {
	if len(alerts) == 0 {
		s.logger.Info("no alerts today, digest skipped", zap.String("date", today.String()))
		return false, nil
	}

	id, err := s.client.SendText(ctx, s.managerID, FormatDigest(today, alerts))
	if err != nil {
		return false, fmt.Errorf("send alert digest: %w", err)
	}

	s.logger.Info("alert digest sent",
		zap.String("date", today.String()),
		zap.Int("alerts", len(alerts)),
		zap.String("message_id", id),
	)
	return true, nil
}
