package cache

import (
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
)

// FilterFAQ keeps, per category, the questions containing term regardless of
// case. Categories are kept even when nothing in them matches.
func FilterFAQ(cats models.FAQCategories, term string) models.FAQCategories {
	if common.IsBlank(term) {
		return cats
	}
	folded := Fold(term)

	out := make(models.FAQCategories, 0, len(cats))
	for _, cat := range cats {
		filtered := models.FAQCategory{Name: cat.Name}
		for _, f := range cat.FAQs {
			if strings.Contains(Fold(f.Question), folded) {
				filtered.FAQs = append(filtered.FAQs, f)
			}
		}
		out = append(out, filtered)
	}
	return out
}
