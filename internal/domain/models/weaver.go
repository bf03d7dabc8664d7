package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LoomType tells whether the weaver owns or rents the loom.
type LoomType string

const (
	LoomOwn    LoomType = "Own"
	LoomRental LoomType = "Rental"
)

// RentalPeriod is the billing cadence of a rented loom.
type RentalPeriod string

const (
	RentalWeekly  RentalPeriod = "Weekly"
	RentalMonthly RentalPeriod = "Monthly"
)

// Days is the number of days one rental period lasts.
func (p RentalPeriod) Days() int {
	if p == RentalWeekly {
		return 7
	}
	return 30
}

// WageType selects how the weaver is paid.
type WageType string

const (
	WagePerPiece WageType = "Per_Piece"
	WageFixed    WageType = "Fixed"
)

// AllocationStatus is the lifecycle of a design allocation.
type AllocationStatus string

const (
	AllocationActive    AllocationStatus = "Active"
	AllocationCompleted AllocationStatus = "Completed"
)

// RentalTerms only exist for rented looms.
type RentalTerms struct {
	Cost   decimal.Decimal `json:"cost" bson:"cost"`
	Period RentalPeriod    `json:"period" bson:"period"`
}

// Loom is a tagged variant: Rental is set if and only if Type is LoomRental.
// Build it with OwnLoom or RentedLoom.
type Loom struct {
	Number int          `json:"number" bson:"number"`
	Type   LoomType     `json:"type" bson:"type"`
	Rental *RentalTerms `json:"rental,omitempty" bson:"rental,omitempty"`
}

// OwnLoom describes a loom owned by the weaver.
func OwnLoom(number int) Loom {
	return Loom{Number: number, Type: LoomOwn}
}

// RentedLoom describes a rented loom and its billing terms.
func RentedLoom(number int, cost decimal.Decimal, period RentalPeriod) Loom {
	return Loom{Number: number, Type: LoomRental, Rental: &RentalTerms{Cost: cost, Period: period}}
}

// IsRental reports whether the loom is rented.
func (l Loom) IsRental() bool {
	return l.Type == LoomRental && l.Rental != nil
}

// Terms returns the rental terms when the loom is rented.
func (l Loom) Terms() (RentalTerms, bool) {
	if !l.IsRental() {
		return RentalTerms{}, false
	}
	return *l.Rental, true
}

// Validate enforces the variant invariant.
func (l Loom) Validate() error {
	if l.Number <= 0 {
		return Invalid("loom.number", "must be a positive loom number")
	}
	switch l.Type {
	case LoomOwn:
		if l.Rental != nil {
			return Invalid("loom.rental", "own looms carry no rental terms")
		}
	case LoomRental:
		if l.Rental == nil {
			return Invalid("loom.rental", "rental looms need a cost and period")
		}
		if !l.Rental.Cost.IsPositive() {
			return Invalid("loom.rental.cost", "must be greater than zero")
		}
		if l.Rental.Period != RentalWeekly && l.Rental.Period != RentalMonthly {
			return Invalid("loom.rental.period", "must be Weekly or Monthly")
		}
	default:
		return Invalid("loom.type", "must be Own or Rental")
	}
	return nil
}

// WeaverDesignAllocation assigns a design and colour set to a weaver.
type WeaverDesignAllocation struct {
	AllocationID int64            `json:"allocationId" bson:"allocation_id"`
	DesignID     int64            `json:"designId" bson:"design_id"`
	Colors       []string         `json:"colors" bson:"colors"`
	Status       AllocationStatus `json:"status" bson:"status"`
}

// Weaver is a person producing woven goods.
type Weaver struct {
	ID                int64                    `json:"id" bson:"_id"`
	Name              string                   `json:"name" bson:"name"`
	Contact           string                   `json:"contact" bson:"contact"`
	JoinDate          Date                     `json:"joinDate" bson:"join_date"`
	WageType          WageType                 `json:"wageType" bson:"wage_type"`
	Rate              decimal.Decimal          `json:"rate" bson:"rate"`
	Loom              Loom                     `json:"loom" bson:"loom"`
	DesignAllocations []WeaverDesignAllocation `json:"designAllocations" bson:"design_allocations"`
}

func (w Weaver) EntityID() int64 { return w.ID }

func (w Weaver) WithID(id int64) Weaver {
	w.ID = id
	return w
}

// Allocation finds the allocation for a design.
func (w Weaver) Allocation(designID int64) (WeaverDesignAllocation, bool) {
	for _, a := range w.DesignAllocations {
		if a.DesignID == designID {
			return a, true
		}
	}
	return WeaverDesignAllocation{}, false
}

// Validate checks the weaver form.
func (w Weaver) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return Invalid("name", "is required")
	}
	if w.JoinDate.IsZero() {
		return Invalid("joinDate", "is required")
	}
	if w.WageType != WagePerPiece && w.WageType != WageFixed {
		return Invalid("wageType", "must be Per_Piece or Fixed")
	}
	if w.Rate.IsNegative() {
		return Invalid("rate", "must not be negative")
	}
	if err := w.Loom.Validate(); err != nil {
		return err
	}
	for _, a := range w.DesignAllocations {
		if a.DesignID <= 0 {
			return Invalid("designAllocations.designId", "is required")
		}
		if a.Status != AllocationActive && a.Status != AllocationCompleted {
			return Invalid("designAllocations.status", "must be Active or Completed")
		}
	}
	return nil
}
