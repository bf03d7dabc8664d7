package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TowelSize is the finished size of a design.
type TowelSize string

const (
	SizeS  TowelSize = "S"
	SizeM  TowelSize = "M"
	SizeL  TowelSize = "L"
	SizeXL TowelSize = "XL"
)

// Design is a towel pattern with a per-piece rate that overrides the weaver's own rate.
type Design struct {
	ID          int64           `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	TowelSize   TowelSize       `json:"towelSize" bson:"towel_size"`
	DefaultRate decimal.Decimal `json:"defaultRate" bson:"default_rate"`
	Image       string          `json:"image,omitempty" bson:"image,omitempty"`
}

func (d Design) EntityID() int64 { return d.ID }

func (d Design) WithID(id int64) Design {
	d.ID = id
	return d
}

func (d Design) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return Invalid("name", "is required")
	}
	switch d.TowelSize {
	case SizeS, SizeM, SizeL, SizeXL:
	default:
		return Invalid("towelSize", "must be one of S, M, L, XL")
	}
	if d.DefaultRate.IsNegative() {
		return Invalid("defaultRate", "must not be negative")
	}
	return nil
}
