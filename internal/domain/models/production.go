package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductionLogItem is one design/colour line of a production log.
type ProductionLogItem struct {
	DesignID int64  `json:"designId" bson:"design_id"`
	Color    string `json:"color" bson:"color"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// YarnIssued is the yarn handed to the weaver for a log, in kilograms.
type YarnIssued struct {
	Warp *decimal.Decimal `json:"warp,omitempty" bson:"warp,omitempty"`
	Weft *decimal.Decimal `json:"weft,omitempty" bson:"weft,omitempty"`
}

// WarpKg returns the warp weight, zero when not issued.
func (y YarnIssued) WarpKg() decimal.Decimal {
	if y.Warp == nil {
		return decimal.Zero
	}
	return *y.Warp
}

// WeftKg returns the weft weight, zero when not issued.
func (y YarnIssued) WeftKg() decimal.Decimal {
	if y.Weft == nil {
		return decimal.Zero
	}
	return *y.Weft
}

// TotalKg is warp plus weft.
func (y YarnIssued) TotalKg() decimal.Decimal {
	return y.WarpKg().Add(y.WeftKg())
}

// ProductionLog records what a weaver delivered on a day. Each log is one chalan.
type ProductionLog struct {
	ID         int64               `json:"id" bson:"_id"`
	Date       Date                `json:"date" bson:"date"`
	WeaverID   int64               `json:"weaverId" bson:"weaver_id"`
	Items      []ProductionLogItem `json:"items" bson:"items"`
	YarnIssued YarnIssued          `json:"yarnIssued" bson:"yarn_issued"`
}

func (p ProductionLog) EntityID() int64 { return p.ID }

func (p ProductionLog) WithID(id int64) ProductionLog {
	p.ID = id
	return p
}

// TotalQuantity sums the quantity of every item.
func (p ProductionLog) TotalQuantity() int {
	total := 0
	for _, item := range p.Items {
		total += item.Quantity
	}
	return total
}

// HasDesign reports whether any item references the design.
func (p ProductionLog) HasDesign(designID int64) bool {
	for _, item := range p.Items {
		if item.DesignID == designID {
			return true
		}
	}
	return false
}

func (p ProductionLog) Validate() error {
	if p.Date.IsZero() {
		return Invalid("date", "is required")
	}
	if p.WeaverID <= 0 {
		return Invalid("weaverId", "is required")
	}
	if len(p.Items) == 0 {
		return Invalid("items", "at least one item is required")
	}
	for _, item := range p.Items {
		if item.DesignID <= 0 {
			return Invalid("items.designId", "is required")
		}
		if strings.TrimSpace(item.Color) == "" {
			return Invalid("items.color", "is required")
		}
		if item.Quantity <= 0 {
			return Invalid("items.quantity", "must be greater than zero")
		}
	}
	if p.YarnIssued.WarpKg().IsNegative() || p.YarnIssued.WeftKg().IsNegative() {
		return Invalid("yarnIssued", "must not be negative")
	}
	return nil
}
