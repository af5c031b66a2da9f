package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prepsense/backend/internal/domain"
)

func TestValidateUnitForCategory(t *testing.T) {
	tests := []struct {
		name         string
		category     string
		unit         string
		wantValid    bool
		wantSeverity domain.Severity
	}{
		{"eggs by each", CategoryEggs, "each", true, domain.SeverityInfo},
		{"eggs by dozen", CategoryEggs, "dozen", true, domain.SeverityInfo},
		{"eggs by gram forbidden", CategoryEggs, "g", false, domain.SeverityError},
		{"eggs by milliliter forbidden", CategoryEggs, "ml", false, domain.SeverityError},
		{"fruit by milliliter forbidden", CategoryProduceFruit, "ml", false, domain.SeverityError},
		{"fruit by pound", CategoryProduceFruit, "lb", true, domain.SeverityInfo},
		{"fruit by each", CategoryProduceFruit, "each", true, domain.SeverityInfo},
		{"beverage by each forbidden", CategoryBeverages, "each", false, domain.SeverityError},
		{"beverage by liter", CategoryBeverages, "L", true, domain.SeverityInfo},
		{"milk by pound forbidden", CategoryLiquidDairy, "lb", false, domain.SeverityError},
		{"milk by gallon", CategoryLiquidDairy, "gallon", true, domain.SeverityInfo},
		{"meat by pound", CategoryMeat, "lbs", true, domain.SeverityInfo},
		{"meat by gallon forbidden", CategoryMeat, "gal", false, domain.SeverityError},
		{"spice by teaspoon", CategorySpices, "tsp", true, domain.SeverityInfo},
		{"spice by pound forbidden", CategorySpices, "lb", false, domain.SeverityError},
		{"bread by loaf", CategoryBread, "loaf", true, domain.SeverityInfo},
		{"unknown category permissive", CategoryUnknown, "ml", true, domain.SeverityInfo},
		{"unlisted category permissive", "some-new-category", "gallon", true, domain.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateUnitForCategory(tt.category, tt.unit)
			if v.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (reason: %s)", v.IsValid, tt.wantValid, v.Reason)
			}
			if v.Severity != tt.wantSeverity {
				t.Errorf("Severity = %v, want %v", v.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestValidateUnitForCategory_WarningsSuggest(t *testing.T) {
	t.Run("allowed but unusual unit warns with suggestion", func(t *testing.T) {
		// "stick" is a count unit not listed for produce, and not forbidden.
		v := ValidateUnitForCategory(CategoryProduceFruit, "stick")
		if v.IsValid {
			t.Fatal("expected invalid verdict")
		}
		if v.Severity != domain.SeverityWarning {
			t.Errorf("Severity = %v, want warning", v.Severity)
		}
		if v.SuggestedUnit != "pound" {
			t.Errorf("SuggestedUnit = %q, want pound", v.SuggestedUnit)
		}
		if len(v.SuggestedUnits) == 0 || v.SuggestedUnits[0] != "pound" {
			t.Errorf("SuggestedUnits = %v, want pound first", v.SuggestedUnits)
		}
	})

	t.Run("unrecognized unit warns", func(t *testing.T) {
		v := ValidateUnitForCategory(CategoryMeat, "smidgen")
		if v.IsValid {
			t.Fatal("expected invalid verdict")
		}
		if v.Severity != domain.SeverityWarning {
			t.Errorf("Severity = %v, want warning", v.Severity)
		}
		if v.SuggestedUnit == "" {
			t.Error("expected a suggested unit")
		}
	})
}

// fakeFoodSource records lookups and serves canned categories.
type fakeFoodSource struct {
	categories map[string]string
	err        error
	calls      int
}

func (f *fakeFoodSource) CategoryFor(_ context.Context, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if cat, ok := f.categories[name]; ok {
		return cat, nil
	}
	return "", domain.ErrCategoryNotFound
}

// fakeCache is a minimal in-memory CacheRepository for resolver tests.
type fakeCache struct {
	values map[string]interface{}
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]interface{})}
}

func (c *fakeCache) Get(_ context.Context, key string) (interface{}, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.values[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func TestCategoryResolver_CategoryFor(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword match skips external source", func(t *testing.T) {
		source := &fakeFoodSource{}
		r := NewCategoryResolver(source, nil, 0, nil)

		tests := []struct {
			name string
			want string
		}{
			{"chicken breast", CategoryMeat},
			{"Organic Whole Milk", CategoryLiquidDairy},
			{"strawberries", CategoryProduceFruit},
			{"2% chocolate milk", CategoryLiquidDairy},
			{"sour cream", CategorySolidDairy},
			{"heavy cream", CategoryLiquidDairy},
			{"eggs", CategoryEggs},
			{"sourdough bread", CategoryBread},
		}
		for _, tt := range tests {
			if got := r.CategoryFor(ctx, tt.name); got != tt.want {
				t.Errorf("CategoryFor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		}
		if source.calls != 0 {
			t.Errorf("external source called %d times for keyword-resolvable names", source.calls)
		}
	})

	t.Run("falls through to external source and caches", func(t *testing.T) {
		source := &fakeFoodSource{categories: map[string]string{"tempeh": CategoryLegumes}}
		cache := newFakeCache()
		r := NewCategoryResolver(source, cache, time.Hour, nil)

		if got := r.CategoryFor(ctx, "tempeh"); got != CategoryLegumes {
			t.Fatalf("CategoryFor = %q, want %s", got, CategoryLegumes)
		}
		if cache.sets != 1 {
			t.Errorf("cache sets = %d, want 1", cache.sets)
		}

		// Second lookup is served from cache.
		if got := r.CategoryFor(ctx, "tempeh"); got != CategoryLegumes {
			t.Fatalf("cached CategoryFor = %q, want %s", got, CategoryLegumes)
		}
		if source.calls != 1 {
			t.Errorf("external source called %d times, want 1", source.calls)
		}
	})

	t.Run("unknown everywhere resolves to unknown", func(t *testing.T) {
		source := &fakeFoodSource{}
		r := NewCategoryResolver(source, newFakeCache(), time.Hour, nil)
		if got := r.CategoryFor(ctx, "mystery ingredient"); got != CategoryUnknown {
			t.Errorf("CategoryFor = %q, want unknown", got)
		}
	})

	t.Run("source error degrades to unknown", func(t *testing.T) {
		source := &fakeFoodSource{err: errors.New("upstream down")}
		r := NewCategoryResolver(source, nil, 0, nil)
		if got := r.CategoryFor(ctx, "mystery ingredient"); got != CategoryUnknown {
			t.Errorf("CategoryFor = %q, want unknown", got)
		}
	})

	t.Run("source returning unlisted category degrades to unknown", func(t *testing.T) {
		source := &fakeFoodSource{categories: map[string]string{"gadget": "electronics"}}
		r := NewCategoryResolver(source, nil, 0, nil)
		if got := r.CategoryFor(ctx, "gadget"); got != CategoryUnknown {
			t.Errorf("CategoryFor = %q, want unknown", got)
		}
	})

	t.Run("nil source stops at keywords", func(t *testing.T) {
		r := NewCategoryResolver(nil, nil, 0, nil)
		if got := r.CategoryFor(ctx, "salmon fillet"); got != CategorySeafood {
			t.Errorf("CategoryFor = %q, want seafood", got)
		}
		if got := r.CategoryFor(ctx, "mystery ingredient"); got != CategoryUnknown {
			t.Errorf("CategoryFor = %q, want unknown", got)
		}
	})
}

func TestCategoryResolver_ValidateItemUnit(t *testing.T) {
	r := NewCategoryResolver(nil, nil, 0, nil)

	cat, verdict := r.ValidateItemUnit(context.Background(), "a dozen eggs", "each")
	if cat != CategoryEggs {
		t.Fatalf("category = %q, want eggs", cat)
	}
	if !verdict.IsValid {
		t.Errorf("verdict invalid: %s", verdict.Reason)
	}

	cat, verdict = r.ValidateItemUnit(context.Background(), "strawberries", "ml")
	if cat != CategoryProduceFruit {
		t.Fatalf("category = %q, want produce-fruit", cat)
	}
	if verdict.IsValid || verdict.Severity != domain.SeverityError {
		t.Errorf("verdict = %+v, want error for fruit in milliliters", verdict)
	}
	if verdict.SuggestedUnit != "pound" {
		t.Errorf("SuggestedUnit = %q, want pound", verdict.SuggestedUnit)
	}

	cat, verdict = r.ValidateItemUnit(context.Background(), "whole milk", "lb")
	if cat != CategoryLiquidDairy {
		t.Fatalf("category = %q, want liquid-dairy", cat)
	}
	if verdict.IsValid || verdict.Severity != domain.SeverityError {
		t.Errorf("verdict = %+v, want error severity", verdict)
	}
}
