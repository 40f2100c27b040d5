package domain

import (
	"encoding/json"
	"sort"

	"github.com/iancoleman/orderedmap"
)

// CategoryCounts maps each known category to the number of items in it.
type CategoryCounts map[string]int

// MarshalJSON writes the known categories first, in display order, so chart
// buckets keep a stable layout.
func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	o := orderedmap.New()
	seen := make(map[string]bool, len(c))
	for _, cat := range Categories {
		if n, ok := c[cat]; ok {
			o.Set(cat, n)
			seen[cat] = true
		}
	}

	var rest []string
	for k := range c {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		o.Set(k, c[k])
	}

	return json.Marshal(o)
}

// TagSplit partitions a collection by whether items carry a resell or donate tag.
type TagSplit struct {
	WithTags    int `json:"withTags"`
	WithoutTags int `json:"withoutTags"`
}

// Summary is the statistics view of a collection
type Summary struct {
	CategoryCounts CategoryCounts `json:"categoryCounts"`
	TagSplit
}

// StatsResponse is the statistics view of a user's wardrobe
type StatsResponse struct {
	Summary
	Total int `json:"total"`
}
