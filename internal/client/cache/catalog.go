package cache

import (
	"context"

	"github.com/dmitrijs2005/firemap/internal/client/models"
)

type CatalogCache struct {
	c collection[models.IconCategory]
}

func NewCatalogCache(src CatalogSource) *CatalogCache {
	return &CatalogCache{c: collection[models.IconCategory]{fetch: src.GetIconCatalog}}
}

func (c *CatalogCache) Load(ctx context.Context) error    { return c.c.load(ctx, false) }
func (c *CatalogCache) Refresh(ctx context.Context) error { return c.c.load(ctx, true) }

func (c *CatalogCache) All() []models.IconCategory { return c.c.snapshot() }

func (c *CatalogCache) Category(name string) (models.IconCategory, bool) {
	for _, cat := range c.c.snapshot() {
		if cat.Name == name {
			return cat, true
		}
	}
	return models.IconCategory{}, false
}

// Icon finds a catalog icon by id and returns it with its category name.
func (c *CatalogCache) Icon(id models.ID) (models.CatalogIcon, string, bool) {
	for _, cat := range c.c.snapshot() {
		for _, ic := range cat.Icons {
			if ic.ID == id {
				return ic, cat.Name, true
			}
		}
	}
	return models.CatalogIcon{}, "", false
}
