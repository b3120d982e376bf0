package types

import (
	"slices"
	"strings"
	"time"
)

// Flashcard is a named, image-backed card filed under zero or more
// categories.
type Flashcard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// ImageRef is the ID of the owned image record. Export files name
	// this field imagePath.
	ImageRef    string    `json:"imagePath"`
	CategoryIDs []string  `json:"categoryIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasCategory reports whether categoryID is in the flashcard's set.
func (f *Flashcard) HasCategory(categoryID string) bool {
	return slices.Contains(f.CategoryIDs, categoryID)
}

// RemoveCategory drops categoryID from the set and touches the flashcard.
// Returns false, leaving the flashcard unchanged, if it was not present.
func (f *Flashcard) RemoveCategory(categoryID string, now time.Time) bool {
	if !f.HasCategory(categoryID) {
		return false
	}
	kept := make([]string, 0, len(f.CategoryIDs)-1)
	for _, id := range f.CategoryIDs {
		if id != categoryID {
			kept = append(kept, id)
		}
	}
	f.CategoryIDs = kept
	f.Touch(now)
	return true
}

// Touch bumps UpdatedAt to now. UpdatedAt never moves backwards and never
// falls below CreatedAt.
func (f *Flashcard) Touch(now time.Time) {
	t := now.UTC()
	if t.Before(f.UpdatedAt) {
		t = f.UpdatedAt
	}
	if t.Before(f.CreatedAt) {
		t = f.CreatedAt
	}
	f.UpdatedAt = t
}

// NormalizeCategoryIDs trims ids, drops empty entries and duplicates, and
// keeps first-seen order. The result is never nil.
func NormalizeCategoryIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
