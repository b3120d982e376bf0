package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
)

func TestFlashcardRemoveCategory(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, f *Flashcard)
	}{
		{
			name: "removes the id and bumps UpdatedAt",
			check: func(t *testing.T, f *Flashcard) {
				assert.True(t, f.RemoveCategory("c1", t1))
				assert.Equal(t, []string{"c2"}, f.CategoryIDs)
				assert.True(t, f.UpdatedAt.Equal(t1))
			},
		},
		{
			name: "absent id leaves the flashcard untouched",
			check: func(t *testing.T, f *Flashcard) {
				assert.False(t, f.RemoveCategory("c9", t1))
				assert.Equal(t, []string{"c1", "c2"}, f.CategoryIDs)
				assert.True(t, f.UpdatedAt.Equal(t0))
			},
		},
		{
			name: "removing the last id leaves an empty, non-nil set",
			check: func(t *testing.T, f *Flashcard) {
				f.CategoryIDs = []string{"c1"}
				assert.True(t, f.RemoveCategory("c1", t1))
				assert.NotNil(t, f.CategoryIDs)
				assert.Empty(t, f.CategoryIDs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Flashcard{ID: "f1", Name: "Rafale", CategoryIDs: []string{"c1", "c2"}, CreatedAt: t0, UpdatedAt: t0}
			tt.check(t, f)
		})
	}
}

func TestFlashcardTouch(t *testing.T) {
	t.Run("moves forward", func(t *testing.T) {
		f := &Flashcard{CreatedAt: t0, UpdatedAt: t0}
		f.Touch(t1)
		assert.True(t, f.UpdatedAt.Equal(t1))
	})

	t.Run("never moves backwards", func(t *testing.T) {
		f := &Flashcard{CreatedAt: t0, UpdatedAt: t1}
		f.Touch(t0)
		assert.True(t, f.UpdatedAt.Equal(t1))
	})

	t.Run("never falls below CreatedAt", func(t *testing.T) {
		f := &Flashcard{CreatedAt: t1}
		f.Touch(t0)
		assert.True(t, f.UpdatedAt.Equal(t1))
	})
}

func TestNormalizeCategoryIDs(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeCategoryIDs(nil))
	assert.Equal(t, []string{"a", "b"}, NormalizeCategoryIDs([]string{" a", "b", "", "a ", "b"}))
}

func TestIsCollection(t *testing.T) {
	for _, name := range AllCollections {
		assert.True(t, IsCollection(name), name)
	}
	assert.False(t, IsCollection("tags"))
	assert.Equal(t, "readwrite", ReadWrite.String())
	assert.Equal(t, "readonly", ReadOnly.String())
}
