package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prepsense/backend/internal/domain"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	t.Run("string round trip", func(t *testing.T) {
		if err := c.Set(ctx, "category:tempeh", "legumes", time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := c.Get(ctx, "category:tempeh")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "legumes" {
			t.Errorf("Get = %v, want legumes", got)
		}
	})

	t.Run("structs come back as JSON shapes", func(t *testing.T) {
		type payload struct {
			Category string `json:"category"`
		}
		if err := c.Set(ctx, "obj", payload{Category: "meat"}, time.Minute); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := c.Get(ctx, "obj")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		m, ok := got.(map[string]interface{})
		if !ok {
			t.Fatalf("Get returned %T, want map[string]interface{}", got)
		}
		if m["category"] != "meat" {
			t.Errorf("category = %v, want meat", m["category"])
		}
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		_, err := c.Get(ctx, "nope")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired key is a cache miss", func(t *testing.T) {
		if err := c.Set(ctx, "short", "v", time.Millisecond); err != nil {
			t.Fatalf("Set: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		_, err := c.Get(ctx, "short")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})
}

func TestMemoryCache_DeleteExists(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	exists, err := c.Exists(ctx, "k")
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v, want true", exists, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, err = c.Exists(ctx, "k")
	if err != nil || exists {
		t.Fatalf("Exists after delete = %v, %v, want false", exists, err)
	}
}

func TestMemoryCache_Bound(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)

	// Staggered TTLs: k0 expires soonest and is the eviction victim.
	for i := 0; i < 3; i++ {
		ttl := time.Duration(i+1) * time.Hour
		if err := c.Set(ctx, fmt.Sprintf("k%d", i), i, ttl); err != nil {
			t.Fatalf("Set k%d: %v", i, err)
		}
	}
	if c.Size() != 3 {
		t.Fatalf("Size = %d, want 3", c.Size())
	}

	if err := c.Set(ctx, "k3", 3, time.Hour); err != nil {
		t.Fatalf("Set k3: %v", err)
	}
	if c.Size() != 3 {
		t.Errorf("Size = %d, want 3 after eviction", c.Size())
	}
	if _, err := c.Get(ctx, "k0"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("k0 should have been evicted, err = %v", err)
	}
	if _, err := c.Get(ctx, "k3"); err != nil {
		t.Errorf("k3 should be present, err = %v", err)
	}

	// Overwriting an existing key never evicts.
	if err := c.Set(ctx, "k3", 33, time.Hour); err != nil {
		t.Fatalf("overwrite k3: %v", err)
	}
	if c.Size() != 3 {
		t.Errorf("Size = %d, want 3 after overwrite", c.Size())
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	for i := 0; i < 5; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute)
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size = %d after Clear, want 0", c.Size())
	}
}
