// Package reporting projects a ledger snapshot into filtered report tables
// and serializes them as CSV, XLSX or Google Sheets rows.
package reporting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
	repo "github.com/mamadbah2/loombook/internal/repository/sheets"
)

// Service builds reports. The sheets repository is optional.
type Service struct {
	sheets repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance. A nil repository disables Sheets export.
func NewService(sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sheets: sheets, logger: logger}
}

type builder func(snap models.Snapshot, req Request) (Report, error)

var builders = map[Type]builder{
	TypeSalary:            salaryReport,
	TypeProduction:        productionReport,
	TypeYarn:              yarnReport,
	TypeDelivery:          deliveryReport,
	TypeLoans:             loanReport,
	TypeRentals:           rentalReport,
	TypeDesignSummary:     designSummaryReport,
	TypeWeaverPerformance: weaverPerformanceReport,
	TypeLoanProgress:      loanProgressReport,
	TypeProductionLog:     productionLogReport,
	TypeWeaverRoster:      weaverRosterReport,
	TypeFinancialLedger:   financialLedgerReport,
}

// Generate validates the request and folds the snapshot into the report.
func (s *Service) Generate(snap models.Snapshot, req Request) (Report, error) {
	build, ok := builders[req.Type]
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", models.ErrUnknownReport, req.Type)
	}
	if err := validate(req); err != nil {
		return Report{}, err
	}

	report, err := build(snap, req)
	if err != nil {
		return Report{}, err
	}
	report.Type = req.Type
	report.Filter = req.Filter
	if report.Rows == nil {
		report.Rows = []Row{}
	}

	s.logger.Debug("report generated",
		zap.String("type", string(req.Type)),
		zap.Int("rows", len(report.Rows)),
	)
	return report, nil
}

func validate(req Request) error {
	r := req.Filter.Range
	if req.Type.RequiresRange() && !r.Bounded() {
		return models.ErrDateRangeRequired
	}
	if r.Bounded() && r.End.Before(r.Start) {
		return models.Invalid("end", "must not be before the start date")
	}
	if req.Type == TypeSalary && req.Filter.WeaverID <= 0 {
		return models.Invalid("weaver_id", "select a weaver to generate a salary slip")
	}
	return nil
}

// FilterLogs applies the date, weaver, design and status filters to production logs.
func FilterLogs(snap models.Snapshot, f Filter) []models.ProductionLog {
	out := make([]models.ProductionLog, 0, len(snap.ProductionLogs))
	for _, log := range snap.ProductionLogs {
		if !f.Range.Contains(log.Date) {
			continue
		}
		if f.WeaverID > 0 && log.WeaverID != f.WeaverID {
			continue
		}
		if f.DesignID > 0 && !log.HasDesign(f.DesignID) {
			continue
		}
		if f.Status != "" && derive.StatusIn(snap, log) != f.Status {
			continue
		}
		out = append(out, log)
	}
	return out
}
