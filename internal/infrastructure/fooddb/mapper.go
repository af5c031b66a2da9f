package fooddb

import (
	"strings"

	"github.com/prepsense/backend/internal/usecase"
)

// foodGroupMap translates the food database's group names into our category
// ids. Matching is case-insensitive on the full group name.
var foodGroupMap = map[string]string{
	"fruits and fruit juices":              usecase.CategoryProduceFruit,
	"vegetables and vegetable products":    usecase.CategoryProduceVegetable,
	"dairy and egg products":               usecase.CategorySolidDairy,
	"milk":                                 usecase.CategoryLiquidDairy,
	"beverages":                            usecase.CategoryBeverages,
	"poultry products":                     usecase.CategoryMeat,
	"beef products":                        usecase.CategoryMeat,
	"pork products":                        usecase.CategoryMeat,
	"lamb, veal, and game products":        usecase.CategoryMeat,
	"sausages and luncheon meats":          usecase.CategoryMeat,
	"finfish and shellfish products":       usecase.CategorySeafood,
	"cereal grains and pasta":              usecase.CategoryGrains,
	"breakfast cereals":                    usecase.CategoryGrains,
	"baked products":                       usecase.CategoryBread,
	"spices and herbs":                     usecase.CategorySpices,
	"soups, sauces, and gravies":           usecase.CategoryCondiments,
	"fats and oils":                        usecase.CategoryOils,
	"legumes and legume products":          usecase.CategoryLegumes,
	"nut and seed products":                usecase.CategorySnacks,
	"snacks":                               usecase.CategorySnacks,
	"sweets":                               usecase.CategoryBaking,
	"meals, entrees, and side dishes":      usecase.CategoryFrozen,
	"fast foods":                           usecase.CategorySnacks,
	"restaurant foods":                     usecase.CategoryUnknown,
	"american indian/alaska native foods":  usecase.CategoryUnknown,
	"baby foods":                           usecase.CategoryUnknown,
}

// keywordGroupFallbacks cover abbreviated or partial group labels some
// endpoints return instead of the full name.
var keywordGroupFallbacks = []struct {
	keyword  string
	category string
}{
	{"fruit", usecase.CategoryProduceFruit},
	{"vegetable", usecase.CategoryProduceVegetable},
	{"egg", usecase.CategoryEggs},
	{"dairy", usecase.CategorySolidDairy},
	{"milk", usecase.CategoryLiquidDairy},
	{"beverage", usecase.CategoryBeverages},
	{"poultry", usecase.CategoryMeat},
	{"beef", usecase.CategoryMeat},
	{"pork", usecase.CategoryMeat},
	{"meat", usecase.CategoryMeat},
	{"fish", usecase.CategorySeafood},
	{"shellfish", usecase.CategorySeafood},
	{"grain", usecase.CategoryGrains},
	{"cereal", usecase.CategoryGrains},
	{"baked", usecase.CategoryBread},
	{"spice", usecase.CategorySpices},
	{"herb", usecase.CategorySpices},
	{"sauce", usecase.CategoryCondiments},
	{"oil", usecase.CategoryOils},
	{"fat", usecase.CategoryOils},
	{"legume", usecase.CategoryLegumes},
	{"snack", usecase.CategorySnacks},
	{"sweet", usecase.CategoryBaking},
}

// MapFoodGroup maps an external food group label to an internal category.
// Returns false when the label is unrecognized.
func MapFoodGroup(group string) (string, bool) {
	g := strings.ToLower(strings.TrimSpace(group))
	if g == "" {
		return "", false
	}

	if category, ok := foodGroupMap[g]; ok {
		return category, true
	}

	for _, entry := range keywordGroupFallbacks {
		if strings.Contains(g, entry.keyword) {
			return entry.category, true
		}
	}
	return "", false
}
