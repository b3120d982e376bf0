package transfer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

// DefaultFileName returns the export file name for t,
// avioncards-export-YYYY-MM-DD.json.
func DefaultFileName(t time.Time) string {
	return "avioncards-export-" + t.Format(time.DateOnly) + ".json"
}

// Encode writes snap as JSON indented by two spaces.
func Encode(w io.Writer, snap *types.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Decode parses a snapshot. Malformed input is a *types.ValidationError.
func Decode(r io.Reader) (*types.Snapshot, error) {
	var snap types.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, types.NewValidationErrorCause("snapshot", err)
	}
	return &snap, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// WriteFile atomically writes snap to path using the temp-file, fsync,
// rename pattern.
func WriteFile(path string, snap *types.Snapshot) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".avioncards-export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, snap); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
