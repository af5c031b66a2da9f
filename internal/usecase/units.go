package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/prepsense/backend/internal/domain"
)

// DefaultPrecision is the number of decimal places canonical amounts are
// rounded to. Bounding precision here keeps floating noise out of matching
// and deduction.
const DefaultPrecision int32 = 3

// unitInfo ties a unit string to its dimension and the multiplicative factor
// to that dimension's base unit (gram, milliliter, or each).
type unitInfo struct {
	dimension domain.Dimension
	factor    decimal.Decimal
}

func unit(dim domain.Dimension, factor string) unitInfo {
	return unitInfo{dimension: dim, factor: decimal.RequireFromString(factor)}
}

// unitTable maps every known unit string to exactly one dimension and factor.
var unitTable = map[string]unitInfo{
	// Mass -> gram
	"gram":      unit(domain.DimensionMass, "1"),
	"milligram": unit(domain.DimensionMass, "0.001"),
	"kilogram":  unit(domain.DimensionMass, "1000"),
	"ounce":     unit(domain.DimensionMass, "28.3495"),
	"pound":     unit(domain.DimensionMass, "453.592"),

	// Volume -> milliliter
	"milliliter":  unit(domain.DimensionVolume, "1"),
	"liter":       unit(domain.DimensionVolume, "1000"),
	"deciliter":   unit(domain.DimensionVolume, "100"),
	"teaspoon":    unit(domain.DimensionVolume, "4.929"),
	"tablespoon":  unit(domain.DimensionVolume, "14.787"),
	"fluid ounce": unit(domain.DimensionVolume, "29.5735"),
	"cup":         unit(domain.DimensionVolume, "236.588"),
	"pint":        unit(domain.DimensionVolume, "473.176"),
	"quart":       unit(domain.DimensionVolume, "946.353"),
	"gallon":      unit(domain.DimensionVolume, "3785.41"),

	// Count -> each
	"each":      unit(domain.DimensionCount, "1"),
	"piece":     unit(domain.DimensionCount, "1"),
	"clove":     unit(domain.DimensionCount, "1"),
	"slice":     unit(domain.DimensionCount, "1"),
	"head":      unit(domain.DimensionCount, "1"),
	"bunch":     unit(domain.DimensionCount, "1"),
	"can":       unit(domain.DimensionCount, "1"),
	"bottle":    unit(domain.DimensionCount, "1"),
	"container": unit(domain.DimensionCount, "1"),
	"package":   unit(domain.DimensionCount, "1"),
	"bag":       unit(domain.DimensionCount, "1"),
	"box":       unit(domain.DimensionCount, "1"),
	"loaf":      unit(domain.DimensionCount, "1"),
	"stick":     unit(domain.DimensionCount, "1"),
	"dozen":     unit(domain.DimensionCount, "12"),
}

// unitAliases normalizes the abbreviations and plurals that show up on
// receipts and recipe sites to their table names.
var unitAliases = map[string]string{
	"g":            "gram",
	"gr":           "gram",
	"grams":        "gram",
	"mg":           "milligram",
	"milligrams":   "milligram",
	"kg":           "kilogram",
	"kilograms":    "kilogram",
	"oz":           "ounce",
	"ounces":       "ounce",
	"lb":           "pound",
	"lbs":          "pound",
	"pounds":       "pound",
	"ml":           "milliliter",
	"milliliters":  "milliliter",
	"millilitre":   "milliliter",
	"millilitres":  "milliliter",
	"l":            "liter",
	"liters":       "liter",
	"litre":        "liter",
	"litres":       "liter",
	"dl":           "deciliter",
	"tsp":          "teaspoon",
	"teaspoons":    "teaspoon",
	"tbsp":         "tablespoon",
	"tbs":          "tablespoon",
	"tablespoons":  "tablespoon",
	"fl oz":        "fluid ounce",
	"floz":         "fluid ounce",
	"fluid ounces": "fluid ounce",
	"cups":         "cup",
	"c":            "cup",
	"pt":           "pint",
	"pints":        "pint",
	"qt":           "quart",
	"quarts":       "quart",
	"gal":          "gallon",
	"gallons":      "gallon",
	"ea":           "each",
	"unit":         "each",
	"units":        "each",
	"pc":           "piece",
	"pcs":          "piece",
	"pieces":       "piece",
	"cloves":       "clove",
	"slices":       "slice",
	"heads":        "head",
	"bunches":      "bunch",
	"cans":         "can",
	"bottles":      "bottle",
	"containers":   "container",
	"pkg":          "package",
	"packages":     "package",
	"bags":         "bag",
	"boxes":        "box",
	"loaves":       "loaf",
	"sticks":       "stick",
}

// NormalizeUnit reduces a raw unit string to its dimension-table name.
// Returns the normalized name and whether it is known.
func NormalizeUnit(raw string) (string, bool) {
	u := strings.ToLower(strings.TrimSpace(raw))
	u = strings.TrimSuffix(u, ".")
	if alias, ok := unitAliases[u]; ok {
		u = alias
	}
	_, ok := unitTable[u]
	return u, ok
}

// LookupUnit resolves a raw unit string to its dimension and factor to base.
func LookupUnit(raw string) (domain.Dimension, decimal.Decimal, error) {
	name, ok := NormalizeUnit(raw)
	if !ok {
		return domain.DimensionNone, decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownUnit, raw)
	}
	info := unitTable[name]
	return info.dimension, info.factor, nil
}

// ConversionOptions controls canonicalization. Precision is per-operation and
// explicit so conversions stay deterministic under concurrent use.
type ConversionOptions struct {
	// Target requests a cross-dimension result (mass target for a volume
	// source or vice versa). DimensionNone keeps the source dimension.
	Target domain.Dimension
	// Density bridges mass and volume for a specific ingredient. Required
	// whenever Target crosses dimensions.
	Density domain.Density
	// Precision is the number of decimal places to round to; zero or
	// negative means DefaultPrecision.
	Precision int32
}

func (o ConversionOptions) precision() int32 {
	if o.Precision <= 0 {
		return DefaultPrecision
	}
	return o.Precision
}

func baseUnitFor(dim domain.Dimension) domain.CanonicalUnit {
	switch dim {
	case domain.DimensionMass:
		return domain.UnitGram
	case domain.DimensionVolume:
		return domain.UnitMilliliter
	default:
		return domain.UnitEach
	}
}

// CanonicalizeQuantity reduces a raw (amount, unit) pair to a canonical
// base-unit quantity. Cross-dimension conversion happens only when the
// options request a target dimension and carry a density; Count never
// converts to mass or volume.
func CanonicalizeQuantity(amount decimal.Decimal, rawUnit string, opts ConversionOptions) (domain.CanonicalQuantity, error) {
	if amount.IsNegative() {
		return domain.CanonicalQuantity{}, domain.ErrNegativeAmount
	}

	dim, factor, err := LookupUnit(rawUnit)
	if err != nil {
		return domain.CanonicalQuantity{}, err
	}

	base := amount.Mul(factor)

	target := opts.Target
	if target == domain.DimensionNone || target == dim {
		return domain.CanonicalQuantity{
			Amount: base.Round(opts.precision()),
			Unit:   baseUnitFor(dim),
		}, nil
	}

	converted, err := bridgeDimensions(base, dim, target, opts.Density)
	if err != nil {
		return domain.CanonicalQuantity{}, err
	}
	return domain.CanonicalQuantity{
		Amount: converted.Round(opts.precision()),
		Unit:   baseUnitFor(target),
	}, nil
}

// bridgeDimensions converts a base-unit amount between mass and volume via
// density. Any pairing involving Count is unsupported.
func bridgeDimensions(base decimal.Decimal, from, to domain.Dimension, density domain.Density) (decimal.Decimal, error) {
	switch {
	case from == domain.DimensionVolume && to == domain.DimensionMass:
		if !density.Known() {
			return decimal.Zero, fmt.Errorf("%w: volume to mass", domain.ErrConversionUnsupported)
		}
		return base.Mul(density.GramsPerMilliliter), nil
	case from == domain.DimensionMass && to == domain.DimensionVolume:
		if !density.Known() {
			return decimal.Zero, fmt.Errorf("%w: mass to volume", domain.ErrConversionUnsupported)
		}
		return base.Div(density.GramsPerMilliliter), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s to %s", domain.ErrConversionUnsupported, from, to)
	}
}

// CanonicalizeLenient canonicalizes like CanonicalizeQuantity but degrades an
// unknown unit to count/"each" with the raw amount instead of failing. The
// fallback is logged so it is never silent; items are kept rather than
// dropped.
func CanonicalizeLenient(logger *zap.Logger, amount decimal.Decimal, rawUnit string, opts ConversionOptions) domain.CanonicalQuantity {
	q, err := CanonicalizeQuantity(amount, rawUnit, opts)
	if err == nil {
		return q
	}
	if logger != nil {
		logger.Warn("unknown unit, treating as each",
			zap.String("unit", rawUnit),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
	}
	return domain.CanonicalQuantity{
		Amount: amount.Round(opts.precision()),
		Unit:   domain.UnitEach,
	}
}

// ConvertToUnit expresses a canonical quantity back in a display unit of the
// same dimension. Used for round-trip checks and presentation; cross-dimension
// targets again require a density.
func ConvertToUnit(q domain.CanonicalQuantity, rawUnit string, opts ConversionOptions) (decimal.Decimal, error) {
	dim, factor, err := LookupUnit(rawUnit)
	if err != nil {
		return decimal.Zero, err
	}

	base := q.Amount
	if srcDim := q.Unit.Dimension(); srcDim != dim {
		base, err = bridgeDimensions(base, srcDim, dim, opts.Density)
		if err != nil {
			return decimal.Zero, err
		}
	}
	return base.Div(factor).Round(opts.precision()), nil
}
