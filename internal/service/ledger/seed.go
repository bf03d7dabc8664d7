package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/domain/models"
)

const demoLogDays = 15

// Seed loads the demo workshop into an empty store. It does nothing when
// weavers or designs already exist and reports whether data was written.
// Seeded records bypass history.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	weavers, err := s.store.Weavers.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list weavers: %w", err)
	}
	designs, err := s.store.Designs.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list designs: %w", err)
	}
	if len(weavers) > 0 || len(designs) > 0 {
		s.logger.Info("store already populated, skipping demo seed")
		return false, nil
	}

	data := DemoData(s.Today())

	for _, d := range data.Designs {
		if _, err := s.store.Designs.Create(ctx, d); err != nil {
			return false, fmt.Errorf("seed design %s: %w", d.Name, err)
		}
	}
	for _, w := range data.Weavers {
		if _, err := s.store.Weavers.Create(ctx, w); err != nil {
			return false, fmt.Errorf("seed weaver %s: %w", w.Name, err)
		}
	}
	for _, l := range data.ProductionLogs {
		if _, err := s.store.ProductionLogs.Create(ctx, l); err != nil {
			return false, fmt.Errorf("seed production log: %w", err)
		}
	}
	for _, l := range data.Loans {
		if _, err := s.store.Loans.Create(ctx, l); err != nil {
			return false, fmt.Errorf("seed loan: %w", err)
		}
	}
	for _, r := range data.Repayments {
		if _, err := s.store.Repayments.Create(ctx, r); err != nil {
			return false, fmt.Errorf("seed repayment: %w", err)
		}
	}
	for _, p := range data.RentalPayments {
		if _, err := s.store.RentalPayments.Create(ctx, p); err != nil {
			return false, fmt.Errorf("seed rental payment: %w", err)
		}
	}

	s.logger.Info("demo data seeded",
		zap.Int("weavers", len(data.Weavers)),
		zap.Int("designs", len(data.Designs)),
		zap.Int("production_logs", len(data.ProductionLogs)),
	)
	return true, nil
}

// DemoData is the demo workshop relative to today. Records are listed in id
// order so a fresh store assigns ids 1..n.
func DemoData(today models.Date) models.Snapshot {
	dec := decimal.NewFromInt
	designs := []models.Design{
		{ID: 1, Name: "Classic Check", TowelSize: models.SizeM, DefaultRate: dec(15), Image: "https://placehold.co/400x400/e2e8f0/475569?text=Classic+Check"},
		{ID: 2, Name: "Diamond Weave", TowelSize: models.SizeL, DefaultRate: dec(18), Image: "https://placehold.co/400x400/dbeafe/1e3a8a?text=Diamond+Weave"},
		{ID: 3, Name: "Striped Elegance", TowelSize: models.SizeS, DefaultRate: dec(12), Image: "https://placehold.co/400x400/fee2e2/991b1b?text=Striped+Elegance"},
		{ID: 4, Name: "Luxury Jacquard", TowelSize: models.SizeXL, DefaultRate: dec(25), Image: "https://placehold.co/400x400/fef9c3/854d0e?text=Luxury+Jacquard"},
	}

	weavers := []models.Weaver{
		{
			ID: 1, Name: "Rajesh Kumar", Contact: "9876543210", JoinDate: models.MustDate("2023-01-15"),
			WageType: models.WagePerPiece, Rate: dec(15), Loom: models.OwnLoom(101),
			DesignAllocations: []models.WeaverDesignAllocation{
				{AllocationID: 101, DesignID: 1, Colors: []string{"Red", "Blue", "Green"}, Status: models.AllocationActive},
				{AllocationID: 102, DesignID: 2, Colors: []string{"White", "Black"}, Status: models.AllocationActive},
			},
		},
		{
			ID: 2, Name: "Suresh Singh", Contact: "9876543211", JoinDate: models.MustDate("2023-02-20"),
			WageType: models.WagePerPiece, Rate: dec(18), Loom: models.RentedLoom(102, dec(500), models.RentalWeekly),
			DesignAllocations: []models.WeaverDesignAllocation{
				{AllocationID: 201, DesignID: 2, Colors: []string{"Gold", "Silver"}, Status: models.AllocationActive},
				{AllocationID: 202, DesignID: 3, Colors: []string{"Pink", "Yellow"}, Status: models.AllocationCompleted},
			},
		},
		{
			ID: 3, Name: "Mina Devi", Contact: "9876543212", JoinDate: models.MustDate("2023-03-10"),
			WageType: models.WageFixed, Rate: dec(5000), Loom: models.OwnLoom(105),
			DesignAllocations: []models.WeaverDesignAllocation{},
		},
		{
			ID: 4, Name: "Amit Sharma", Contact: "9876543213", JoinDate: models.MustDate("2023-05-01"),
			WageType: models.WagePerPiece, Rate: decimal.RequireFromString("16.5"), Loom: models.RentedLoom(201, dec(2000), models.RentalMonthly),
			DesignAllocations: []models.WeaverDesignAllocation{
				{AllocationID: 401, DesignID: 4, Colors: []string{"Royal Blue", "Maroon"}, Status: models.AllocationActive},
			},
		},
	}

	loan2Due := today.AddDays(3)
	loan3Repaid := models.MustDate("2024-04-15")
	loan1Due := models.MustDate("2024-08-10")

	return models.Snapshot{
		Designs:        designs,
		Weavers:        weavers,
		ProductionLogs: demoLogs(weavers, today),
		Loans: []models.Loan{
			{ID: 1, WeaverID: 2, Amount: dec(5000), IssueDate: models.MustDate("2024-05-10"), DueDate: &loan1Due, Status: models.LoanPending},
			{ID: 2, WeaverID: 4, Amount: dec(2500), IssueDate: models.MustDate("2024-04-20"), DueDate: &loan2Due, Status: models.LoanPending},
			{ID: 3, WeaverID: 1, Amount: dec(3000), IssueDate: models.MustDate("2024-03-15"), RepaymentDate: &loan3Repaid, Status: models.LoanPaid},
		},
		Repayments: []models.Repayment{
			{ID: 1, LoanID: 2, Amount: dec(1000), Date: models.MustDate("2024-05-20")},
			{ID: 2, LoanID: 2, Amount: dec(500), Date: models.MustDate("2024-06-05")},
			{ID: 3, LoanID: 3, Amount: dec(3000), Date: models.MustDate("2024-04-15")},
		},
		RentalPayments: []models.RentalPayment{
			{ID: 1, WeaverID: 2, Amount: dec(250), Date: models.MustDate("2024-07-05")},
			{ID: 2, WeaverID: 2, Amount: dec(250), Date: models.MustDate("2024-07-12")},
			{ID: 3, WeaverID: 4, Amount: dec(1000), Date: models.MustDate("2024-06-30")},
		},
	}
}

// demoLogs rotates over the weavers that have allocations, one log per day
// going back from today. Quantities and yarn weights are fixed pseudo-random values.
func demoLogs(weavers []models.Weaver, today models.Date) []models.ProductionLog {
	var producing []models.Weaver
	for _, w := range weavers {
		if len(w.DesignAllocations) > 0 {
			producing = append(producing, w)
		}
	}

	logs := make([]models.ProductionLog, 0, demoLogDays)
	for i := 0; i < demoLogDays; i++ {
		w := producing[i%len(producing)]
		alloc := w.DesignAllocations[i%len(w.DesignAllocations)]

		var yarn models.YarnIssued
		if i%3 != 0 {
			warp := decimal.NewFromInt(200 + int64(i*37%300)).Shift(-2)
			yarn.Warp = &warp
		}
		if i%2 == 0 {
			weft := decimal.NewFromInt(400 + int64(i*53%400)).Shift(-2)
			yarn.Weft = &weft
		}

		logs = append(logs, models.ProductionLog{
			ID:       int64(i + 1),
			Date:     today.AddDays(-i),
			WeaverID: w.ID,
			Items: []models.ProductionLogItem{
				{DesignID: alloc.DesignID, Color: alloc.Colors[0], Quantity: 10 + (i*7+3)%16},
				{DesignID: alloc.DesignID, Color: alloc.Colors[1%len(alloc.Colors)], Quantity: 10 + (i*11+5)%16},
			},
			YarnIssued: yarn,
		})
	}
	return logs
}
