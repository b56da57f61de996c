package cache

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
	"golang.org/x/text/cases"
)

type BuildingCache struct {
	c collection[models.Building]
}

func NewBuildingCache(src BuildingSource) *BuildingCache {
	return &BuildingCache{c: collection[models.Building]{fetch: src.GetBuildings}}
}

// Load fetches the list unless it is already held.
func (b *BuildingCache) Load(ctx context.Context) error { return b.c.load(ctx, false) }

// Refresh always refetches.
func (b *BuildingCache) Refresh(ctx context.Context) error { return b.c.load(ctx, true) }

// Invalidate makes the next Load refetch.
func (b *BuildingCache) Invalidate() { b.c.invalidate() }

func (b *BuildingCache) All() []models.Building { return b.c.snapshot() }

func (b *BuildingCache) Find(id models.ID) (models.Building, bool) {
	for _, bld := range b.c.snapshot() {
		if bld.ID == id {
			return bld, true
		}
	}
	return models.Building{}, false
}

// Mappable returns the buildings that carry a coordinate.
func (b *BuildingCache) Mappable() []models.Building {
	var out []models.Building
	for _, bld := range b.c.snapshot() {
		if _, ok := bld.Location(); ok {
			out = append(out, bld)
		}
	}
	return out
}

// SearchResult keeps the input order. Selected is the first match, or nil.
type SearchResult struct {
	Matches  []models.Building
	Selected *models.Building
}

// Search matches term case-insensitively against name and address and as a
// plain substring against the zip code. A blank term returns everything with
// nothing selected.
func (b *BuildingCache) Search(term string) SearchResult {
	return SearchBuildings(b.c.snapshot(), term)
}

func SearchBuildings(list []models.Building, term string) SearchResult {
	if common.IsBlank(term) {
		return SearchResult{Matches: list}
	}

	folded := Fold(term)
	var res SearchResult
	for _, bld := range list {
		if strings.Contains(Fold(bld.Name), folded) ||
			strings.Contains(Fold(bld.Address), folded) ||
			strings.Contains(bld.Zipcode.String(), term) {
			res.Matches = append(res.Matches, bld)
		}
	}
	if len(res.Matches) > 0 {
		res.Selected = &res.Matches[0]
	}
	return res
}

// Fold case-folds s for comparisons.
func Fold(s string) string {
	return cases.Fold().String(s)
}
