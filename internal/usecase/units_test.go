package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prepsense/backend/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCanonicalizeQuantity(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		unit       string
		wantAmount string
		wantUnit   domain.CanonicalUnit
	}{
		{"pounds to grams", "2", "lb", "907.184", domain.UnitGram},
		{"ounces to grams", "8", "oz", "226.796", domain.UnitGram},
		{"kilograms to grams", "1.5", "kg", "1500", domain.UnitGram},
		{"liters to milliliters", "2", "L", "2000", domain.UnitMilliliter},
		{"tablespoons to milliliters", "3", "tbsp", "44.361", domain.UnitMilliliter},
		{"cups to milliliters", "2", "cups", "473.176", domain.UnitMilliliter},
		{"each stays each", "3", "each", "3", domain.UnitEach},
		{"dozen to each", "2", "dozen", "24", domain.UnitEach},
		{"pieces to each", "5", "pcs", "5", domain.UnitEach},
		{"grams pass through", "100", "g", "100", domain.UnitGram},
		{"trailing period on abbreviation", "1", "lb.", "453.592", domain.UnitGram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalizeQuantity(dec(tt.amount), tt.unit, ConversionOptions{})
			if err != nil {
				t.Fatalf("CanonicalizeQuantity() error = %v", err)
			}
			if !got.Amount.Equal(dec(tt.wantAmount)) {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.wantAmount)
			}
			if got.Unit != tt.wantUnit {
				t.Errorf("Unit = %s, want %s", got.Unit, tt.wantUnit)
			}
		})
	}

	t.Run("unknown unit fails", func(t *testing.T) {
		_, err := CanonicalizeQuantity(dec("1"), "smidgen", ConversionOptions{})
		if !errors.Is(err, domain.ErrUnknownUnit) {
			t.Errorf("error = %v, want ErrUnknownUnit", err)
		}
	})

	t.Run("negative amount fails", func(t *testing.T) {
		_, err := CanonicalizeQuantity(dec("-1"), "g", ConversionOptions{})
		if !errors.Is(err, domain.ErrNegativeAmount) {
			t.Errorf("error = %v, want ErrNegativeAmount", err)
		}
	})
}

// Dimension closure: inputs of each dimension always land on that
// dimension's base unit.
func TestCanonicalizeQuantity_DimensionClosure(t *testing.T) {
	massUnits := []string{"g", "mg", "kg", "oz", "lb", "pound", "ounces"}
	volumeUnits := []string{"ml", "l", "tsp", "tbsp", "fl oz", "cup", "pint", "quart", "gallon"}
	countUnits := []string{"each", "ea", "piece", "clove", "can", "dozen", "loaf"}

	for _, u := range massUnits {
		q, err := CanonicalizeQuantity(dec("1"), u, ConversionOptions{})
		if err != nil {
			t.Fatalf("mass unit %q: %v", u, err)
		}
		if q.Unit != domain.UnitGram {
			t.Errorf("mass unit %q canonicalized to %s, want g", u, q.Unit)
		}
	}
	for _, u := range volumeUnits {
		q, err := CanonicalizeQuantity(dec("1"), u, ConversionOptions{})
		if err != nil {
			t.Fatalf("volume unit %q: %v", u, err)
		}
		if q.Unit != domain.UnitMilliliter {
			t.Errorf("volume unit %q canonicalized to %s, want ml", u, q.Unit)
		}
	}
	for _, u := range countUnits {
		q, err := CanonicalizeQuantity(dec("1"), u, ConversionOptions{})
		if err != nil {
			t.Fatalf("count unit %q: %v", u, err)
		}
		if q.Unit != domain.UnitEach {
			t.Errorf("count unit %q canonicalized to %s, want each", u, q.Unit)
		}
	}
}

func TestCanonicalizeQuantity_DensityBridge(t *testing.T) {
	milk := domain.Density{GramsPerMilliliter: dec("1.03")}

	t.Run("volume to mass with density", func(t *testing.T) {
		got, err := CanonicalizeQuantity(dec("240"), "ml", ConversionOptions{
			Target:  domain.DimensionMass,
			Density: milk,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Amount.Equal(dec("247.2")) {
			t.Errorf("Amount = %s, want 247.2", got.Amount)
		}
		if got.Unit != domain.UnitGram {
			t.Errorf("Unit = %s, want g", got.Unit)
		}
	})

	t.Run("mass to volume with density", func(t *testing.T) {
		got, err := CanonicalizeQuantity(dec("103"), "g", ConversionOptions{
			Target:  domain.DimensionVolume,
			Density: milk,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Amount.Equal(dec("100")) {
			t.Errorf("Amount = %s, want 100", got.Amount)
		}
	})

	t.Run("cross-dimension without density fails", func(t *testing.T) {
		_, err := CanonicalizeQuantity(dec("240"), "ml", ConversionOptions{
			Target: domain.DimensionMass,
		})
		if !errors.Is(err, domain.ErrConversionUnsupported) {
			t.Errorf("error = %v, want ErrConversionUnsupported", err)
		}
	})

	t.Run("count never converts even with density", func(t *testing.T) {
		_, err := CanonicalizeQuantity(dec("3"), "each", ConversionOptions{
			Target:  domain.DimensionMass,
			Density: milk,
		})
		if !errors.Is(err, domain.ErrConversionUnsupported) {
			t.Errorf("error = %v, want ErrConversionUnsupported", err)
		}
	})
}

// Round trip: canonicalize then convert back yields the original amount
// within the fixed 3-decimal-place tolerance.
func TestConvertToUnit_RoundTrip(t *testing.T) {
	tolerance := dec("0.001")
	cases := []struct {
		amount string
		unit   string
	}{
		{"2", "lb"},
		{"8", "oz"},
		{"1.5", "kg"},
		{"3", "cup"},
		{"2", "tbsp"},
		{"1", "gallon"},
		{"12", "each"},
		{"0.25", "tsp"},
	}

	for _, tc := range cases {
		t.Run(tc.amount+" "+tc.unit, func(t *testing.T) {
			q, err := CanonicalizeQuantity(dec(tc.amount), tc.unit, ConversionOptions{})
			if err != nil {
				t.Fatalf("canonicalize: %v", err)
			}
			back, err := ConvertToUnit(q, tc.unit, ConversionOptions{})
			if err != nil {
				t.Fatalf("convert back: %v", err)
			}
			if back.Sub(dec(tc.amount)).Abs().GreaterThan(tolerance) {
				t.Errorf("round trip %s %s = %s, want within %s", tc.amount, tc.unit, back, tolerance)
			}
		})
	}
}

func TestCanonicalizeLenient(t *testing.T) {
	logger := zap.NewNop()

	t.Run("known unit converts normally", func(t *testing.T) {
		q := CanonicalizeLenient(logger, dec("2"), "lb", ConversionOptions{})
		if !q.Amount.Equal(dec("907.184")) || q.Unit != domain.UnitGram {
			t.Errorf("got %s %s, want 907.184 g", q.Amount, q.Unit)
		}
	})

	t.Run("unknown unit degrades to each with raw amount", func(t *testing.T) {
		q := CanonicalizeLenient(logger, dec("3"), "handful", ConversionOptions{})
		if !q.Amount.Equal(dec("3")) {
			t.Errorf("Amount = %s, want 3", q.Amount)
		}
		if q.Unit != domain.UnitEach {
			t.Errorf("Unit = %s, want each", q.Unit)
		}
	})
}

func TestCanonicalizeQuantity_ExplicitPrecision(t *testing.T) {
	got, err := CanonicalizeQuantity(dec("1"), "tsp", ConversionOptions{Precision: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Amount.Equal(dec("4.9")) {
		t.Errorf("Amount = %s, want 4.9 at precision 1", got.Amount)
	}
}
