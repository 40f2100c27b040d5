// Package wardrobe shapes clothing collections for display: filtering by field
// equality, ordering by name, purchase date or size, and the category and
// resell/donate summaries behind the statistics view.
//
// All functions are pure. They never modify the slice they are given, so a
// single snapshot may be shared between concurrent callers.
package wardrobe
