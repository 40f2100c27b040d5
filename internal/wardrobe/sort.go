package wardrobe

import (
	"cmp"
	"slices"
	"time"

	"github.com/liliang-cn/closet/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sizes is the reference order for the size key.
var Sizes = [...]string{"XS", "S", "M", "L", "XL", "XXL"}

// unknownSizeRank places unrecognized sizes after every entry of Sizes.
const unknownSizeRank = 999

var sizeRank = func() map[string]int {
	m := make(map[string]int, len(Sizes))
	for i, s := range Sizes {
		m[s] = i
	}
	return m
}()

// SizeRank returns the position of size in Sizes, or 999 when it is not listed.
func SizeRank(size string) int {
	if r, ok := sizeRank[size]; ok {
		return r
	}
	return unknownSizeRank
}

var epoch = time.Unix(0, 0).UTC()

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsePurchaseDate parses an ISO-8601 date or timestamp. Values without a zone
// are read as UTC.
func ParsePurchaseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func purchaseTime(item *domain.ClothingItem) time.Time {
	if t, ok := ParsePurchaseDate(item.PurchaseDate); ok {
		return t
	}
	return epoch
}

// Sort returns a copy of items ordered by key, using English collation for names.
func Sort(items []*domain.ClothingItem, key domain.SortKey) []*domain.ClothingItem {
	return SortWithLocale(items, key, language.English)
}

// SortWithLocale is Sort with the name collation taken from tag. Unknown keys
// order by name. Items with equal keys keep their input order.
func SortWithLocale(items []*domain.ClothingItem, key domain.SortKey, tag language.Tag) []*domain.ClothingItem {
	out := slices.Clone(items)
	if out == nil {
		out = []*domain.ClothingItem{}
	}

	var less func(a, b *domain.ClothingItem) int
	switch key {
	case domain.SortByPurchaseDate:
		less = func(a, b *domain.ClothingItem) int {
			// most recent first
			return purchaseTime(b).Compare(purchaseTime(a))
		}
	case domain.SortBySize:
		less = func(a, b *domain.ClothingItem) int {
			return cmp.Compare(SizeRank(a.Size), SizeRank(b.Size))
		}
	default:
		// A Collator keeps scratch buffers; one per call.
		col := collate.New(tag)
		less = func(a, b *domain.ClothingItem) int {
			return col.CompareString(a.Name, b.Name)
		}
	}

	slices.SortStableFunc(out, func(a, b *domain.ClothingItem) int {
		// nil entries sink to the end
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		case b == nil:
			return -1
		}
		return less(a, b)
	})
	return out
}
