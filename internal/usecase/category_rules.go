package usecase

import (
	"fmt"

	"github.com/prepsense/backend/internal/domain"
)

// Food categories known to the unit rule table. CategoryUnknown carries a
// permissive default rule set so unrecognized items are never blocked.
const (
	CategoryProduceFruit     = "produce-fruit"
	CategoryProduceVegetable = "produce-vegetable"
	CategoryLiquidDairy      = "liquid-dairy"
	CategorySolidDairy       = "solid-dairy"
	CategoryEggs             = "eggs"
	CategoryMeat             = "meat"
	CategorySeafood          = "seafood"
	CategoryBeverages        = "beverages"
	CategoryGrains           = "grains"
	CategoryBread            = "bread-bakery"
	CategorySpices           = "spices"
	CategoryCondiments       = "condiments"
	CategoryOils             = "oils"
	CategoryBaking           = "baking"
	CategoryCannedGoods      = "canned-goods"
	CategoryFrozen           = "frozen"
	CategorySnacks           = "snacks"
	CategoryLegumes          = "legumes"
	CategoryUnknown          = "unknown"
)

// categoryRule captures which units make physical and commercial sense for a
// food category. Units are dimension-table names (see units.go).
type categoryRule struct {
	allowed   map[string]bool
	forbidden map[string]bool
	// preferred is ordered: the first entry is the suggestion for warnings.
	preferred []string
	examples  string
	// incompatibility names why forbidden units are wrong for this category.
	incompatibility string
}

func unitSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

var massUnits = []string{"gram", "milligram", "kilogram", "ounce", "pound"}
var volumeUnits = []string{"milliliter", "liter", "deciliter", "teaspoon", "tablespoon", "fluid ounce", "cup", "pint", "quart", "gallon"}

var categoryRules = map[string]categoryRule{
	CategoryProduceFruit: {
		allowed: unitSet("each", "piece", "pound", "ounce", "gram", "kilogram",
			"bag", "container", "package", "pint", "cup", "bunch"),
		forbidden:       unitSet("milliliter", "liter", "fluid ounce", "gallon", "teaspoon", "tablespoon"),
		preferred:       []string{"pound", "ounce", "each", "container"},
		examples:        "3 apples, 1 lb strawberries, 1 pint blueberries",
		incompatibility: "whole fruit is sold by count or weight, not liquid volume",
	},
	CategoryProduceVegetable: {
		allowed: unitSet("each", "piece", "head", "bunch", "pound", "ounce",
			"gram", "kilogram", "bag", "package", "cup"),
		forbidden:       unitSet("milliliter", "liter", "fluid ounce", "gallon"),
		preferred:       []string{"pound", "each", "head", "bunch"},
		examples:        "2 heads lettuce, 1 lb carrots, 1 bunch cilantro",
		incompatibility: "whole vegetables are sold by count or weight, not liquid volume",
	},
	CategoryLiquidDairy: {
		allowed: unitSet("milliliter", "liter", "fluid ounce", "cup", "pint",
			"quart", "gallon", "tablespoon", "container", "bottle"),
		forbidden:       unitSet("pound", "ounce", "gram", "kilogram", "slice"),
		preferred:       []string{"gallon", "quart", "fluid ounce", "cup"},
		examples:        "1 gallon milk, 1 pint heavy cream",
		incompatibility: "liquid dairy is measured by volume, not weight",
	},
	CategorySolidDairy: {
		allowed: unitSet("gram", "ounce", "pound", "kilogram", "slice", "stick",
			"cup", "tablespoon", "package", "container", "each"),
		forbidden:       unitSet("gallon", "liter", "quart"),
		preferred:       []string{"ounce", "gram", "slice", "stick"},
		examples:        "8 oz cheddar, 1 stick butter, 6 slices swiss",
		incompatibility: "solid dairy is measured by weight or portion, not bulk liquid volume",
	},
	CategoryEggs: {
		allowed:         unitSet("each", "piece", "dozen", "container", "package"),
		forbidden:       append2(unitSet(), massUnits, volumeUnits),
		preferred:       []string{"each", "dozen"},
		examples:        "12 eggs, 1 dozen eggs",
		incompatibility: "eggs are counted, not weighed or poured",
	},
	CategoryMeat: {
		allowed: unitSet("pound", "ounce", "gram", "kilogram", "piece", "each",
			"package", "slice"),
		forbidden:       unitSet("milliliter", "liter", "fluid ounce", "gallon", "cup", "teaspoon", "tablespoon"),
		preferred:       []string{"pound", "ounce", "gram"},
		examples:        "2 lb chicken breast, 8 oz ground beef",
		incompatibility: "meat is sold by weight, not liquid volume",
	},
	CategorySeafood: {
		allowed:         unitSet("pound", "ounce", "gram", "kilogram", "piece", "each", "package"),
		forbidden:       unitSet("milliliter", "liter", "fluid ounce", "gallon", "cup"),
		preferred:       []string{"pound", "ounce"},
		examples:        "1 lb salmon, 8 oz shrimp",
		incompatibility: "seafood is sold by weight, not liquid volume",
	},
	CategoryBeverages: {
		allowed: unitSet("milliliter", "liter", "fluid ounce", "cup", "pint",
			"quart", "gallon", "bottle", "can", "container"),
		forbidden:       unitSet("each", "piece", "pound", "ounce", "gram", "kilogram", "slice"),
		preferred:       []string{"liter", "fluid ounce", "bottle", "can"},
		examples:        "2 L soda, 12 fl oz sparkling water",
		incompatibility: "beverages are measured by volume or sold in containers, not counted bare",
	},
	CategoryGrains: {
		allowed: unitSet("pound", "ounce", "gram", "kilogram", "cup", "bag",
			"box", "package"),
		forbidden:       unitSet("milliliter", "liter", "fluid ounce", "gallon", "each", "slice"),
		preferred:       []string{"pound", "cup", "bag"},
		examples:        "2 lb rice, 1 cup quinoa, 1 box pasta",
		incompatibility: "dry grains are measured by weight or dry cups, not liquid volume",
	},
	CategoryBread: {
		allowed:         unitSet("loaf", "slice", "each", "piece", "package", "bag", "ounce", "gram"),
		forbidden:       append2(unitSet(), volumeUnits, nil),
		preferred:       []string{"loaf", "slice", "each"},
		examples:        "1 loaf sourdough, 6 bagels",
		incompatibility: "baked goods are counted or portioned, not poured",
	},
	CategorySpices: {
		allowed: unitSet("teaspoon", "tablespoon", "gram", "ounce", "milligram",
			"container", "package"),
		forbidden:       unitSet("pound", "kilogram", "liter", "gallon", "cup", "each"),
		preferred:       []string{"teaspoon", "tablespoon", "ounce"},
		examples:        "1 tsp cumin, 2 tbsp paprika",
		incompatibility: "spices come in small measures; bulk weight or volume units are implausible",
	},
	CategoryCondiments: {
		allowed: unitSet("tablespoon", "teaspoon", "cup", "fluid ounce",
			"milliliter", "ounce", "gram", "bottle", "container"),
		forbidden:       unitSet("pound", "kilogram", "gallon", "each"),
		preferred:       []string{"tablespoon", "fluid ounce", "bottle"},
		examples:        "2 tbsp ketchup, 12 fl oz mustard",
		incompatibility: "condiments are measured in small volumes or sold in bottles",
	},
	CategoryOils: {
		allowed: unitSet("tablespoon", "teaspoon", "cup", "fluid ounce",
			"milliliter", "liter", "bottle"),
		forbidden:       unitSet("each", "piece", "slice", "pound", "kilogram"),
		preferred:       []string{"tablespoon", "fluid ounce", "milliliter"},
		examples:        "2 tbsp olive oil, 500 ml vegetable oil",
		incompatibility: "oils are liquids, measured by volume only",
	},
	CategoryBaking: {
		allowed: unitSet("cup", "tablespoon", "teaspoon", "gram", "ounce",
			"pound", "kilogram", "bag", "box", "package"),
		forbidden:       unitSet("gallon", "liter", "each"),
		preferred:       []string{"cup", "gram", "pound"},
		examples:        "2 cups flour, 1 lb sugar",
		incompatibility: "baking staples are measured by dry cups or weight",
	},
	CategoryCannedGoods: {
		allowed:         unitSet("can", "each", "ounce", "gram", "container", "package"),
		forbidden:       unitSet("pound", "kilogram", "gallon", "liter", "cup"),
		preferred:       []string{"can", "ounce"},
		examples:        "1 can diced tomatoes, 15 oz black beans",
		incompatibility: "canned goods are sold by the can or labeled net weight",
	},
	CategoryFrozen: {
		allowed:         unitSet("ounce", "pound", "gram", "kilogram", "bag", "box", "package", "each", "cup"),
		forbidden:       unitSet("gallon", "liter", "fluid ounce"),
		preferred:       []string{"ounce", "bag", "package"},
		examples:        "16 oz frozen peas, 1 bag frozen berries",
		incompatibility: "frozen foods are sold by weight or package, not liquid volume",
	},
	CategorySnacks: {
		allowed:         unitSet("ounce", "gram", "bag", "box", "package", "each", "piece"),
		forbidden:       unitSet("gallon", "liter", "milliliter", "fluid ounce", "pound", "kilogram"),
		preferred:       []string{"ounce", "bag"},
		examples:        "9 oz chips, 1 box crackers",
		incompatibility: "snacks are sold in labeled packages, not bulk or liquid measures",
	},
	CategoryLegumes: {
		allowed:         unitSet("pound", "ounce", "gram", "kilogram", "cup", "can", "bag"),
		forbidden:       unitSet("milliliter", "liter", "fluid ounce", "gallon", "each"),
		preferred:       []string{"pound", "cup", "can"},
		examples:        "1 lb lentils, 2 cups chickpeas",
		incompatibility: "legumes are measured by weight or dry cups",
	},
	// Permissive default: everything allowed, nothing forbidden.
	CategoryUnknown: {
		allowed:   nil,
		forbidden: nil,
		preferred: []string{"each", "pound", "ounce"},
		examples:  "",
	},
}

// append2 merges two unit slices into an existing set.
func append2(set map[string]bool, a, b []string) map[string]bool {
	for _, u := range a {
		set[u] = true
	}
	for _, u := range b {
		set[u] = true
	}
	return set
}

// ValidateUnitForCategory judges whether a unit is physically and commercially
// sensible for a food category. Advisory only: callers on inventory-entry
// pathways decide whether to flag or auto-correct; the verdict never blocks a
// deduction.
func ValidateUnitForCategory(category, rawUnit string) domain.UnitValidationVerdict {
	rule, ok := categoryRules[category]
	if !ok {
		rule = categoryRules[CategoryUnknown]
	}

	unitName, known := NormalizeUnit(rawUnit)
	if !known {
		return domain.UnitValidationVerdict{
			IsValid:        false,
			Severity:       domain.SeverityWarning,
			SuggestedUnit:  firstPreferred(rule),
			SuggestedUnits: rule.preferred,
			Reason:         fmt.Sprintf("unrecognized unit %q", rawUnit),
		}
	}

	if rule.forbidden[unitName] {
		return domain.UnitValidationVerdict{
			IsValid:        false,
			Severity:       domain.SeverityError,
			SuggestedUnit:  firstPreferred(rule),
			SuggestedUnits: rule.preferred,
			Reason:         fmt.Sprintf("%q is not valid for %s: %s", unitName, category, rule.incompatibility),
		}
	}

	// A nil allowed set (the unknown category) accepts everything.
	if rule.allowed != nil && !rule.allowed[unitName] {
		return domain.UnitValidationVerdict{
			IsValid:        false,
			Severity:       domain.SeverityWarning,
			SuggestedUnit:  firstPreferred(rule),
			SuggestedUnits: rule.preferred,
			Reason:         fmt.Sprintf("%q is unusual for %s; consider %s (e.g. %s)", unitName, category, firstPreferred(rule), rule.examples),
		}
	}

	return domain.UnitValidationVerdict{
		IsValid:        true,
		Severity:       domain.SeverityInfo,
		SuggestedUnits: rule.preferred,
		Reason:         fmt.Sprintf("%q accepted for %s", unitName, category),
	}
}

func firstPreferred(rule categoryRule) string {
	if len(rule.preferred) == 0 {
		return "each"
	}
	return rule.preferred[0]
}

// KnownCategories lists the categories the rule table covers.
func KnownCategories() []string {
	cats := make([]string, 0, len(categoryRules))
	for c := range categoryRules {
		cats = append(cats, c)
	}
	return cats
}
