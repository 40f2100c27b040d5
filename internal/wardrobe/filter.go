package wardrobe

import (
	"slices"

	"github.com/liliang-cn/closet/internal/domain"
)

// Filter returns the items matching every non-empty field of c, in input order.
// An empty Criteria returns a copy of items.
func Filter(items []*domain.ClothingItem, c domain.Criteria) []*domain.ClothingItem {
	if c.IsEmpty() {
		if items == nil {
			return []*domain.ClothingItem{}
		}
		return slices.Clone(items)
	}

	out := make([]*domain.ClothingItem, 0, len(items))
	for _, item := range items {
		if Matches(item, c) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item satisfies c. A nil item matches nothing.
func Matches(item *domain.ClothingItem, c domain.Criteria) bool {
	if item == nil {
		return false
	}
	if c.Category != "" && item.Category != c.Category {
		return false
	}
	if c.Color != "" && item.Color != c.Color {
		return false
	}
	if c.Brand != "" && item.Brand != c.Brand {
		return false
	}
	if c.Tags != "" && !item.HasTag(c.Tags) {
		return false
	}
	return true
}
