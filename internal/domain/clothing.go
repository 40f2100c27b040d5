package domain

import "time"

// Clothing categories. The set is closed: statistics only count these.
const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryDresses     = "dresses"
	CategoryOuterwear   = "outerwear"
	CategoryShoes       = "shoes"
	CategoryHandbags    = "handbags"
	CategoryActivewear  = "activewear"
	CategoryAccessories = "accessories"
)

// Categories lists the known categories in display order.
var Categories = [...]string{
	CategoryTops,
	CategoryBottoms,
	CategoryDresses,
	CategoryOuterwear,
	CategoryShoes,
	CategoryHandbags,
	CategoryActivewear,
	CategoryAccessories,
}

// IsKnownCategory reports whether c is one of Categories.
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// Status tags that mark an item as leaving the wardrobe.
const (
	TagResell = "resell"
	TagDonate = "donate"
)

// ClothingItem is a single piece in a user's wardrobe.
//
// Optional string fields use the empty string for "absent"; Tags is nil when the
// item carries no tags.
type ClothingItem struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	Name         string    `json:"name,omitempty"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	Color        string    `json:"color,omitempty"`
	Brand        string    `json:"brand,omitempty"`
	Size         string    `json:"size,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	PurchaseDate string    `json:"purchaseDate,omitempty" yaml:"purchaseDate"`
	ImageURL     string    `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt,omitzero" yaml:"-"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero" yaml:"-"`
}

// HasTag reports whether the item carries tag exactly.
func (c *ClothingItem) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Criteria selects items by field equality. Empty fields impose no constraint.
// Tags holds a single tag despite its name.
type Criteria struct {
	Category string `json:"category,omitempty" form:"category"`
	Color    string `json:"color,omitempty" form:"color"`
	Brand    string `json:"brand,omitempty" form:"brand"`
	Tags     string `json:"tags,omitempty" form:"tags"`
}

// IsEmpty reports whether no field is set.
func (c Criteria) IsEmpty() bool {
	return c.Category == "" && c.Color == "" && c.Brand == "" && c.Tags == ""
}

// SortKey selects the ordering applied to a list of items.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByPurchaseDate SortKey = "purchaseDate"
	SortBySize         SortKey = "size"
)

// ParseSortKey maps s to a SortKey, falling back to SortByName.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByPurchaseDate, SortBySize:
		return SortKey(s)
	default:
		return SortByName
	}
}

// CreateClothingRequest is the request to add an item
type CreateClothingRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category" binding:"required"`
	Description  string   `json:"description,omitempty"`
	Color        string   `json:"color,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Size         string   `json:"size,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	PurchaseDate string   `json:"purchaseDate,omitempty" binding:"omitempty,isodate"`
	ImageURL     string   `json:"imageUrl,omitempty"`
}

// UpdateClothingRequest is the request to update an item. Name and Category
// change only when non-empty since both are required. The optional fields
// change when present: an absent key keeps the stored value and "" clears it.
// A non-nil Tags replaces the tag list.
type UpdateClothingRequest struct {
	Name         string    `json:"name,omitempty"`
	Category     string    `json:"category,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Color        *string   `json:"color,omitempty"`
	Brand        *string   `json:"brand,omitempty"`
	Size         *string   `json:"size,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	PurchaseDate *string   `json:"purchaseDate,omitempty" binding:"omitempty,isodate"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
}

// ClothingListResponse wraps a list of items
type ClothingListResponse struct {
	Items []*ClothingItem `json:"items"`
}

// QueryRequest filters and sorts a caller-supplied collection.
type QueryRequest struct {
	Items    []*ClothingItem `json:"items" binding:"required,dive,required"`
	Criteria Criteria        `json:"criteria"`
	SortBy   string          `json:"sortBy,omitempty"`
}

// AggregateRequest summarizes a caller-supplied collection.
type AggregateRequest struct {
	Items []*ClothingItem `json:"items" binding:"required,dive,required"`
}
