package domain

import "github.com/shopspring/decimal"

// Dimension is the physical kind of quantity a unit belongs to.
// Every unit string maps to exactly one dimension.
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionMass
	DimensionVolume
	DimensionCount
)

// String returns the human-readable name of the dimension
func (d Dimension) String() string {
	switch d {
	case DimensionMass:
		return "mass"
	case DimensionVolume:
		return "volume"
	case DimensionCount:
		return "count"
	default:
		return "none"
	}
}

// CanonicalUnit is one of the fixed base units all quantities normalize to.
// Display units (lb, cup, dozen, ...) never appear here.
type CanonicalUnit string

const (
	UnitGram       CanonicalUnit = "g"
	UnitMilliliter CanonicalUnit = "ml"
	UnitEach       CanonicalUnit = "each"
)

// Dimension returns the dimension the canonical unit belongs to
func (u CanonicalUnit) Dimension() Dimension {
	switch u {
	case UnitGram:
		return DimensionMass
	case UnitMilliliter:
		return DimensionVolume
	case UnitEach:
		return DimensionCount
	default:
		return DimensionNone
	}
}

// CanonicalQuantity is an amount expressed in a canonical base unit.
// Amount is never negative; immutable once created.
type CanonicalQuantity struct {
	Amount decimal.Decimal `json:"amount"`
	Unit   CanonicalUnit   `json:"unit"`
}

// IsZero reports whether the quantity amount is zero
func (q CanonicalQuantity) IsZero() bool {
	return q.Amount.IsZero()
}

// Density is an ingredient density in grams per milliliter, used to bridge
// the mass and volume dimensions for a specific ingredient.
type Density struct {
	GramsPerMilliliter decimal.Decimal `json:"gramsPerMilliliter"`
}

// Known reports whether the density carries a usable value
func (d Density) Known() bool {
	return d.GramsPerMilliliter.IsPositive()
}
