package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/avioncards/pkg/types"
)

type env struct {
	configDir string
	dataDir   string
	workDir   string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	return &env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
		workDir:   root,
	}
}

// run executes the CLI with args and returns stdout.
func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "avioncards %s", strings.Join(args, " "))
	return out
}

func (e *env) writePNG(t *testing.T, name string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	path := filepath.Join(e.workDir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "version")
	assert.Contains(t, out, "avioncards v"+Version)
}

func TestInit(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "init")
	assert.Contains(t, out, "avioncards initialized")

	data, err := os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), "max_width: 800")
	assert.Contains(t, string(data), "data_dir: "+e.dataDir)

	_, err = os.Stat(filepath.Join(e.dataDir, "avioncards.db"))
	assert.NoError(t, err)

	e.mustRun(t, "init")
}

func TestConfigFileIsRead(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	yamlData := "backend: sqlite\nimage:\n  max_width: 100\n  max_height: 100\n  quality: 0.5\n  max_bytes: 1048576\n"
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte(yamlData), 0o644))

	flags = rootFlags{configDir: e.configDir, dataDir: e.dataDir}
	t.Cleanup(func() { flags = rootFlags{} })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Image.MaxWidth)
	assert.InDelta(t, 0.5, cfg.Image.Quality, 1e-9)
	assert.Equal(t, e.dataDir, cfg.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)

	t.Setenv("AVIONCARDS_IMAGE_MAX_WIDTH", "320")
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Image.MaxWidth)
}

func TestInvalidConfigIsUserError(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte("image:\n  quality: 3\n"), 0o644))

	_, err := e.run(t, "category", "list")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestCategoryCommands(t *testing.T) {
	e := newEnv(t)

	id := strings.TrimSpace(e.mustRun(t, "category", "create", "--name", "Jets"))
	require.NotEmpty(t, id)

	out := e.mustRun(t, "category", "list")
	assert.Equal(t, id+"\tJets\t#1A73E8\n", out)

	e.mustRun(t, "category", "update", id, "--color", "#F44336")
	out = e.mustRun(t, "--json", "category", "get", id)
	var cats []types.Category
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "Jets", cats[0].Name)
	assert.Equal(t, "#F44336", cats[0].Color)

	_, err := e.run(t, "category", "create", "--name", "  ")
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = e.run(t, "category", "get", "nope")
	assert.Equal(t, exitUserError, exitCode(err))

	e.mustRun(t, "category", "delete", id)
	e.mustRun(t, "category", "delete", id)
	out = e.mustRun(t, "category", "list")
	assert.Empty(t, out)

	out = e.mustRun(t, "category", "palette")
	assert.Len(t, strings.Fields(out), 12)
}

func TestCardCommands(t *testing.T) {
	e := newEnv(t)
	jets := strings.TrimSpace(e.mustRun(t, "category", "create", "--name", "Jets"))
	img := e.writePNG(t, "rafale.png", 1200, 900)

	id := strings.TrimSpace(e.mustRun(t, "card", "create", "--name", "Rafale", "--image", img, "--category", jets))
	require.NotEmpty(t, id)

	out := e.mustRun(t, "card", "list", "--category", jets)
	assert.Equal(t, id+"\tRafale\t"+jets+"\n", out)

	out = e.mustRun(t, "card", "random")
	assert.Contains(t, out, id)

	out = e.mustRun(t, "card", "image", id)
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	jpegPath := filepath.Join(e.workDir, "out.jpg")
	e.mustRun(t, "card", "image", id, "--out", jpegPath)
	data, err := os.ReadFile(jpegPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2], "JPEG start of image marker")

	e.mustRun(t, "card", "update", id, "--name", "Mirage", "--clear-categories")
	out = e.mustRun(t, "card", "get", id)
	assert.Equal(t, id+"\tMirage\t\n", out)

	out = e.mustRun(t, "card", "deck")
	assert.Contains(t, out, id)

	_, err = e.run(t, "card", "create", "--name", "NoImage")
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = e.run(t, "card", "create", "--name", "Ghost", "--image", filepath.Join(e.workDir, "missing.png"))
	assert.Equal(t, exitUserError, exitCode(err))

	e.mustRun(t, "card", "delete", id)
	out = e.mustRun(t, "card", "random")
	assert.Equal(t, "no flashcards\n", out)
}

func TestTransferCommands(t *testing.T) {
	e := newEnv(t)
	jets := strings.TrimSpace(e.mustRun(t, "category", "create", "--name", "Jets"))
	img := e.writePNG(t, "f15.png", 64, 64)
	e.mustRun(t, "card", "create", "--name", "F-15", "--image", img, "--category", jets)

	exportPath := filepath.Join(e.workDir, "backup.json")
	out := e.mustRun(t, "export", "--out", exportPath)
	assert.Contains(t, out, "exported 1 flashcards, 1 categories, 1 images")

	_, err := e.run(t, "clear")
	assert.Equal(t, exitUserError, exitCode(err))

	e.mustRun(t, "clear", "--yes")
	assert.Empty(t, e.mustRun(t, "card", "list"))

	out = e.mustRun(t, "import", exportPath)
	assert.Contains(t, out, "imported 1 flashcards")
	assert.Contains(t, e.mustRun(t, "card", "list", "--category", jets), "F-15")

	bad := filepath.Join(e.workDir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"categories": []}`), 0o644))
	_, err = e.run(t, "import", bad)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.NewValidationError("name", "required")))
	assert.Equal(t, exitUserError, exitCode(&types.NotFoundError{Entity: "flashcard", ID: "x"}))
	assert.Equal(t, exitSysError, exitCode(types.NewStorageError("commit", os.ErrClosed)))
	assert.Equal(t, exitSysError, exitCode(os.ErrNotExist))
}
