// Package cache keeps the building list and the icon catalog in memory. Both
// are fetched on first use, held for the session and reloaded on demand.
package cache

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"golang.org/x/sync/errgroup"
)

type BuildingSource interface {
	GetBuildings(ctx context.Context) ([]models.Building, error)
}

type CatalogSource interface {
	GetIconCatalog(ctx context.Context) ([]models.IconCategory, error)
}

// collection is a lazily loaded list guarded by a mutex. A failed load
// leaves the previous contents in place.
type collection[T any] struct {
	mu     sync.RWMutex
	loaded bool
	items  []T
	fetch  func(ctx context.Context) ([]T, error)
}

func (c *collection[T]) load(ctx context.Context, force bool) error {
	c.mu.RLock()
	done := c.loaded && !force
	c.mu.RUnlock()
	if done {
		return nil
	}

	items, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items, c.loaded = items, true
	return nil
}

func (c *collection[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Warm loads both caches concurrently.
func Warm(ctx context.Context, b *BuildingCache, c *CatalogCache) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Load(ctx) })
	g.Go(func() error { return c.Load(ctx) })
	return g.Wait()
}
