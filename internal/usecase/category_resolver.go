package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prepsense/backend/internal/domain"
)

// categoryKeywords maps canonical name keywords to categories. Checked by
// containment against the canonicalized item name, longest keyword first, so
// "sour cream" resolves to solid-dairy before "cream" would send it to
// liquid-dairy.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	// Multi-word keywords first: containment checks walk this list in order.
	{"chicken breast", CategoryMeat},
	{"ground beef", CategoryMeat},
	{"ground turkey", CategoryMeat},
	{"pork chop", CategoryMeat},
	{"heavy cream", CategoryLiquidDairy},
	{"sour cream", CategorySolidDairy},
	{"cream cheese", CategorySolidDairy},
	{"cottage cheese", CategorySolidDairy},
	{"olive oil", CategoryOils},
	{"vegetable oil", CategoryOils},
	{"coconut oil", CategoryOils},
	{"peanut butter", CategoryCondiments},
	{"maple syrup", CategoryCondiments},
	{"soy sauce", CategoryCondiments},
	{"hot sauce", CategoryCondiments},
	{"baking soda", CategoryBaking},
	{"baking powder", CategoryBaking},
	{"brown sugar", CategoryBaking},
	{"green bean", CategoryProduceVegetable},
	{"bell pepper", CategoryProduceVegetable},
	{"sweet potato", CategoryProduceVegetable},
	{"orange juice", CategoryBeverages},
	{"apple juice", CategoryBeverages},

	{"chicken", CategoryMeat},
	{"beef", CategoryMeat},
	{"pork", CategoryMeat},
	{"turkey", CategoryMeat},
	{"lamb", CategoryMeat},
	{"bacon", CategoryMeat},
	{"sausage", CategoryMeat},
	{"ham", CategoryMeat},
	{"steak", CategoryMeat},

	{"salmon", CategorySeafood},
	{"tuna", CategorySeafood},
	{"shrimp", CategorySeafood},
	{"cod", CategorySeafood},
	{"tilapia", CategorySeafood},
	{"crab", CategorySeafood},
	{"lobster", CategorySeafood},

	{"egg", CategoryEggs},

	{"milk", CategoryLiquidDairy},
	{"cream", CategoryLiquidDairy},
	{"buttermilk", CategoryLiquidDairy},
	{"kefir", CategoryLiquidDairy},

	{"cheese", CategorySolidDairy},
	{"butter", CategorySolidDairy},
	{"yogurt", CategorySolidDairy},
	{"cheddar", CategorySolidDairy},
	{"mozzarella", CategorySolidDairy},
	{"parmesan", CategorySolidDairy},

	{"apple", CategoryProduceFruit},
	{"banana", CategoryProduceFruit},
	{"orange", CategoryProduceFruit},
	{"strawberry", CategoryProduceFruit},
	{"blueberry", CategoryProduceFruit},
	{"raspberry", CategoryProduceFruit},
	{"grape", CategoryProduceFruit},
	{"lemon", CategoryProduceFruit},
	{"lime", CategoryProduceFruit},
	{"peach", CategoryProduceFruit},
	{"pear", CategoryProduceFruit},
	{"mango", CategoryProduceFruit},
	{"pineapple", CategoryProduceFruit},
	{"watermelon", CategoryProduceFruit},
	{"avocado", CategoryProduceFruit},

	{"lettuce", CategoryProduceVegetable},
	{"spinach", CategoryProduceVegetable},
	{"kale", CategoryProduceVegetable},
	{"tomato", CategoryProduceVegetable},
	{"potato", CategoryProduceVegetable},
	{"onion", CategoryProduceVegetable},
	{"garlic", CategoryProduceVegetable},
	{"carrot", CategoryProduceVegetable},
	{"celery", CategoryProduceVegetable},
	{"broccoli", CategoryProduceVegetable},
	{"cucumber", CategoryProduceVegetable},
	{"zucchini", CategoryProduceVegetable},
	{"pepper", CategoryProduceVegetable},
	{"mushroom", CategoryProduceVegetable},
	{"corn", CategoryProduceVegetable},
	{"cauliflower", CategoryProduceVegetable},
	{"asparagus", CategoryProduceVegetable},
	{"cabbage", CategoryProduceVegetable},
	{"cilantro", CategoryProduceVegetable},
	{"parsley", CategoryProduceVegetable},
	{"basil", CategoryProduceVegetable},
	{"ginger", CategoryProduceVegetable},

	{"juice", CategoryBeverages},
	{"soda", CategoryBeverages},
	{"coffee", CategoryBeverages},
	{"tea", CategoryBeverages},
	{"wine", CategoryBeverages},
	{"beer", CategoryBeverages},
	{"kombucha", CategoryBeverages},

	{"rice", CategoryGrains},
	{"pasta", CategoryGrains},
	{"quinoa", CategoryGrains},
	{"oat", CategoryGrains},
	{"cereal", CategoryGrains},
	{"noodle", CategoryGrains},
	{"couscous", CategoryGrains},
	{"barley", CategoryGrains},

	{"bread", CategoryBread},
	{"bagel", CategoryBread},
	{"tortilla", CategoryBread},
	{"bun", CategoryBread},
	{"roll", CategoryBread},
	{"croissant", CategoryBread},
	{"muffin", CategoryBread},

	{"salt", CategorySpices},
	{"cumin", CategorySpices},
	{"paprika", CategorySpices},
	{"oregano", CategorySpices},
	{"cinnamon", CategorySpices},
	{"turmeric", CategorySpices},
	{"chili powder", CategorySpices},
	{"nutmeg", CategorySpices},
	{"thyme", CategorySpices},
	{"rosemary", CategorySpices},

	{"ketchup", CategoryCondiments},
	{"mustard", CategoryCondiments},
	{"mayonnaise", CategoryCondiments},
	{"mayo", CategoryCondiments},
	{"salsa", CategoryCondiments},
	{"dressing", CategoryCondiments},
	{"vinegar", CategoryCondiments},
	{"honey", CategoryCondiments},
	{"jam", CategoryCondiments},

	{"oil", CategoryOils},

	{"flour", CategoryBaking},
	{"sugar", CategoryBaking},
	{"yeast", CategoryBaking},
	{"vanilla", CategoryBaking},
	{"cocoa", CategoryBaking},

	{"lentil", CategoryLegumes},
	{"chickpea", CategoryLegumes},
	{"bean", CategoryLegumes},

	{"chip", CategorySnacks},
	{"cracker", CategorySnacks},
	{"cookie", CategorySnacks},
	{"popcorn", CategorySnacks},
	{"pretzel", CategorySnacks},
	{"granola", CategorySnacks},
}

var cacheKeyRegex = regexp.MustCompile(`[^a-z0-9]+`)

// CategoryResolver resolves an arbitrary item name to a food category:
// static keyword containment first, then the external food database, then
// the permissive unknown category. External results go through an injected
// TTL cache so repeated lookups stay off the wire.
type CategoryResolver struct {
	source   domain.FoodDataSource
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCategoryResolver creates a resolver. Source and cache may be nil, in
// which case resolution stops at the static keyword table.
func NewCategoryResolver(source domain.FoodDataSource, cache domain.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *CategoryResolver {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryResolver{
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// CategoryFor resolves the food category for an item name. It never fails:
// every fallback path ends at CategoryUnknown.
func (r *CategoryResolver) CategoryFor(ctx context.Context, name string) string {
	canonical := CanonicalName(name)
	if canonical == "" {
		return CategoryUnknown
	}

	if cat, ok := lookupKeywordCategory(canonical); ok {
		return cat
	}

	cacheKey := "category:" + cacheKeyRegex.ReplaceAllString(canonical, "-")
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
			if cat, ok := cached.(string); ok && cat != "" {
				return cat
			}
		}
	}

	if r.source == nil {
		return CategoryUnknown
	}

	cat, err := r.source.CategoryFor(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			r.logger.Warn("food database category lookup failed",
				zap.String("name", name),
				zap.Error(err),
			)
		}
		return CategoryUnknown
	}
	if _, known := categoryRules[cat]; !known {
		r.logger.Warn("food database returned unknown category",
			zap.String("name", name),
			zap.String("category", cat),
		)
		return CategoryUnknown
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, cat, r.cacheTTL); err != nil {
			r.logger.Warn("failed to cache category", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return cat
}

// ValidateItemUnit resolves the category for a name and validates the unit
// against it in one step, the shape entry pathways (manual entry, OCR) use.
func (r *CategoryResolver) ValidateItemUnit(ctx context.Context, name, unit string) (string, domain.UnitValidationVerdict) {
	category := r.CategoryFor(ctx, name)
	return category, ValidateUnitForCategory(category, unit)
}

// lookupKeywordCategory matches whole keywords against the canonicalized
// name. Canonicalization has already singularized tokens, so "strawberries"
// arrives as "strawberry".
func lookupKeywordCategory(canonical string) (string, bool) {
	padded := " " + canonical + " "
	for _, entry := range categoryKeywords {
		if strings.Contains(padded, " "+entry.keyword+" ") {
			return entry.category, true
		}
	}
	return "", false
}

// DescribeCategory returns the example line for a category, for diagnostics.
func DescribeCategory(category string) string {
	rule, ok := categoryRules[category]
	if !ok {
		return fmt.Sprintf("unknown category %q", category)
	}
	return rule.examples
}
