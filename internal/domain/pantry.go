package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PantryItem is a single row of a household's food inventory. Quantity only
// ever decreases through the ledger's deduction path; the amount must never
// go negative.
type PantryItem struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"ownerId"`
	RawName       string            `json:"rawName"`
	CanonicalName string            `json:"canonicalName"`
	Category      string            `json:"category"`
	Quantity      CanonicalQuantity `json:"quantity"`
	Expiration    *time.Time        `json:"expiration,omitempty"`
}

// Depleted reports whether the item is logically removed from inventory
func (p PantryItem) Depleted() bool {
	return !p.Quantity.Amount.IsPositive()
}

// Expired reports whether the item's expiration date has passed at the given time
func (p PantryItem) Expired(now time.Time) bool {
	return p.Expiration != nil && p.Expiration.Before(now)
}

// RecipeIngredientRequirement is one ingredient line of a recipe, as produced
// by the external recipe provider. Ephemeral: it exists only for the duration
// of one matching or deduction request.
type RecipeIngredientRequirement struct {
	Name   string          `json:"name" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Unit   string          `json:"unit"`
}

// UnmatchedReason explains why a requirement found no usable inventory row.
type UnmatchedReason string

const (
	// ReasonNoMatch means no candidate cleared the similarity threshold.
	ReasonNoMatch UnmatchedReason = "no_match"
	// ReasonDimensionMismatch means a candidate was found by name but its
	// canonical unit is not comparable with the requirement's.
	ReasonDimensionMismatch UnmatchedReason = "dimension_mismatch"
)

// MatchResult pairs a recipe requirement against the inventory row that best
// satisfies it. When Matched is false only Requirement and Reason are set.
type MatchResult struct {
	Requirement  RecipeIngredientRequirement `json:"requirement"`
	Matched      bool                        `json:"matched"`
	PantryItemID string                      `json:"pantryItemId,omitempty"`
	Have         decimal.Decimal             `json:"have,omitempty"`
	Need         decimal.Decimal             `json:"need,omitempty"`
	Score        float64                     `json:"score"`      // min(1, have/need), in [0,1]
	Similarity   float64                     `json:"similarity"` // name similarity, 0-100
	Reason       UnmatchedReason             `json:"reason,omitempty"`
}

// MatchReport aggregates per-requirement results over one recipe.
type MatchReport struct {
	Results  []MatchResult `json:"results"`
	Coverage float64       `json:"coverage"` // matched / total requirements
}

// DeductionLine is one requested decrement against a pantry item.
type DeductionLine struct {
	PantryItemID string          `json:"pantryItemId" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

// DeductionRecord is the append-only audit row written once per successful
// deduction line. Never updated or deleted.
type DeductionRecord struct {
	ID            string          `json:"id"`
	PantryItemID  string          `json:"pantryItemId"`
	OwnerID       string          `json:"ownerId"`
	AmountRemoved decimal.Decimal `json:"amountRemoved"`
	Unit          CanonicalUnit   `json:"unit"`
	Timestamp     time.Time       `json:"timestamp"`
	Reason        string          `json:"reason"`
}

// DeductionOutcome summarizes one deduction batch: the lines that committed
// and the lines whose stock predicate failed. The two lists are disjoint and
// together cover every requested line.
type DeductionOutcome struct {
	Succeeded    []DeductionRecord `json:"succeeded"`
	Insufficient []DeductionLine   `json:"insufficient"`
}
