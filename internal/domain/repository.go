package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FoodDataSource defines the interface for the external food-composition
// database used to categorize ingredient names the static tables don't know.
type FoodDataSource interface {
	CategoryFor(ctx context.Context, name string) (string, error)
}

// PantryRepository defines the interface for inventory persistence. Deduct is
// the only mutating operation the core performs: it must run as a single
// isolated transaction in which each line decrements its row only if the
// current quantity covers the requested amount.
type PantryRepository interface {
	ItemsForOwner(ctx context.Context, ownerID string) ([]PantryItem, error)
	AddItem(ctx context.Context, item PantryItem) error
	Deduct(ctx context.Context, ownerID string, lines []DeductionLine, reason string) (DeductionOutcome, error)
	Records(ctx context.Context, ownerID string) ([]DeductionRecord, error)
}
