package derive

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

const (
	trendDays       = 7
	yarnUsageWindow = 30
)

// TrendPoint is the total quantity produced on one day.
type TrendPoint struct {
	Date       models.Date `json:"date"`
	Production int         `json:"production"`
}

// YarnUsage is issued yarn in kilograms.
type YarnUsage struct {
	Warp decimal.Decimal `json:"warp"`
	Weft decimal.Decimal `json:"weft"`
}

// DashboardStats are the headline figures of the home screen.
type DashboardStats struct {
	Today           models.Date     `json:"today"`
	DailyProduction int             `json:"dailyProduction"`
	ActiveWeavers   int             `json:"activeWeavers"`
	PendingLoans    decimal.Decimal `json:"pendingLoans"`
	RentalLooms     int             `json:"rentalLooms"`
	WeeklyTrend     []TrendPoint    `json:"weeklyTrend"`
	MaterialUsage   YarnUsage       `json:"materialUsage"`
	Alerts          []models.Alert  `json:"alerts"`
}

// Dashboard folds the snapshot into the home screen figures as of today.
func Dashboard(snap models.Snapshot, today models.Date) DashboardStats {
	stats := DashboardStats{
		Today:        today,
		PendingLoans: PendingTotal(LoanBalances(snap)),
		Alerts:       Alerts(snap, today),
	}
	if stats.Alerts == nil {
		stats.Alerts = []models.Alert{}
	}

	active := make(map[int64]struct{})
	for _, log := range snap.ProductionLogs {
		if log.Date.Equal(today) {
			stats.DailyProduction += log.TotalQuantity()
			active[log.WeaverID] = struct{}{}
		}
	}
	stats.ActiveWeavers = len(active)

	for _, w := range snap.Weavers {
		if w.Loom.IsRental() {
			stats.RentalLooms++
		}
	}

	stats.WeeklyTrend = weeklyTrend(snap.ProductionLogs, today)
	stats.MaterialUsage = recentYarnUsage(snap.ProductionLogs, yarnUsageWindow)
	return stats
}

func weeklyTrend(logs []models.ProductionLog, today models.Date) []TrendPoint {
	points := make([]TrendPoint, trendDays)
	first := today.AddDays(-(trendDays - 1))
	for i := range points {
		points[i].Date = first.AddDays(i)
	}
	for _, log := range logs {
		offset := log.Date.DaysSince(first)
		if log.Date.IsZero() || offset < 0 || offset >= trendDays {
			continue
		}
		points[offset].Production += log.TotalQuantity()
	}
	return points
}

// recentYarnUsage sums warp and weft over the most recent logs by date.
func recentYarnUsage(logs []models.ProductionLog, window int) YarnUsage {
	recent := make([]models.ProductionLog, len(logs))
	copy(recent, logs)
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].Date.Equal(recent[j].Date) {
			return recent[i].ID > recent[j].ID
		}
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > window {
		recent = recent[:window]
	}

	usage := YarnUsage{Warp: decimal.Zero, Weft: decimal.Zero}
	for _, log := range recent {
		usage.Warp = usage.Warp.Add(log.YarnIssued.WarpKg())
		usage.Weft = usage.Weft.Add(log.YarnIssued.WeftKg())
	}
	usage.Warp = usage.Warp.Round(2)
	usage.Weft = usage.Weft.Round(2)
	return usage
}
