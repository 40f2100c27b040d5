package wardrobe

import (
	"strings"

	"github.com/liliang-cn/closet/internal/domain"
)

// CountCategories tallies items per known category. The result always holds one
// entry per category; items outside the known set are not counted.
func CountCategories(items []*domain.ClothingItem) domain.CategoryCounts {
	counts := make(domain.CategoryCounts, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, item := range items {
		if item != nil && domain.IsKnownCategory(item.Category) {
			counts[item.Category]++
		}
	}
	return counts
}

// SplitByStatusTag counts items carrying a resell or donate tag (case-insensitive)
// against everything else.
func SplitByStatusTag(items []*domain.ClothingItem) domain.TagSplit {
	var split domain.TagSplit
	for _, item := range items {
		if hasStatusTag(item) {
			split.WithTags++
		} else {
			split.WithoutTags++
		}
	}
	return split
}

func hasStatusTag(item *domain.ClothingItem) bool {
	if item == nil {
		return false
	}
	for _, t := range item.Tags {
		switch strings.ToLower(t) {
		case domain.TagResell, domain.TagDonate:
			return true
		}
	}
	return false
}

// Summarize computes both statistics for items.
func Summarize(items []*domain.ClothingItem) domain.Summary {
	return domain.Summary{
		CategoryCounts: CountCategories(items),
		TagSplit:       SplitByStatusTag(items),
	}
}
