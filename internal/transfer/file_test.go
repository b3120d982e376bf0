package transfer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

func TestDefaultFileName(t *testing.T) {
	got := DefaultFileName(time.Date(2025, 2, 7, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "avioncards-export-2025-02-07.json", got)
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	snap := &types.Snapshot{
		Flashcards: []*types.Flashcard{{
			ID: "f1", Name: "Rafale", ImageRef: "i1", CategoryIDs: []string{"c1"},
			CreatedAt: start, UpdatedAt: start,
		}},
		Categories: []*types.Category{{ID: "c1", Name: "Jets", Color: "#1A73E8"}},
		Images:     []*types.Image{{ID: "i1", DataURL: "data:image/jpeg;base64,AQ=="}},
		ExportDate: start,
	}

	require.NoError(t, WriteFile(path, snap))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "{\n  \"flashcards\": ["), "two-space indent")
	assert.Contains(t, text, `"imagePath": "i1"`)
	assert.Contains(t, text, `"categoryIds": [`)
	assert.Contains(t, text, `"dataUrl"`)
	assert.Contains(t, text, `"exportDate": "2025-06-01T09:00:00Z"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Categories, got.Categories)
	assert.Equal(t, snap.Images, got.Images)
	assert.Equal(t, "i1", got.Flashcards[0].ImageRef)
	assert.True(t, got.ExportDate.Equal(start))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, snap *types.Snapshot)
	}{
		{
			name:  "missing images key leaves images nil",
			input: `{"flashcards": [], "categories": []}`,
			check: func(t *testing.T, snap *types.Snapshot) {
				assert.NotNil(t, snap.Flashcards)
				assert.NotNil(t, snap.Categories)
				assert.Nil(t, snap.Images)
			},
		},
		{
			name:  "missing flashcards key leaves flashcards nil",
			input: `{"categories": []}`,
			check: func(t *testing.T, snap *types.Snapshot) {
				assert.Nil(t, snap.Flashcards)
			},
		},
		{
			name:    "malformed json",
			input:   `{"flashcards": [`,
			wantErr: true,
		},
		{
			name:    "wrong shape",
			input:   `{"flashcards": "nope"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrValidation)
				return
			}
			require.NoError(t, err)
			tt.check(t, snap)
		})
	}
}
