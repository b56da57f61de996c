package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

type FAQ struct {
	ID       ID     `json:"faq_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQCategory struct {
	Name string `json:"category_name"`
	FAQs []FAQ  `json:"faqs"`
}

// FAQCategories decodes either a JSON array of categories or an object keyed
// by category; keyed objects are ordered by key.
type FAQCategories []FAQCategory

func (c *FAQCategories) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = nil
		return nil
	}

	if b[0] == '[' {
		var list []FAQCategory
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*c = list
		return nil
	}

	var keyed map[string]FAQCategory
	if err := json.Unmarshal(b, &keyed); err != nil {
		return err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(FAQCategories, 0, len(keys))
	for _, k := range keys {
		cat := keyed[k]
		if cat.Name == "" {
			cat.Name = k
		}
		out = append(out, cat)
	}
	*c = out
	return nil
}
