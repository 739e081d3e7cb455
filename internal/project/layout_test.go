package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_CreateAndValidate(t *testing.T) {
	root := t.TempDir()
	layout := NewLayout(root, "en", "ro")

	// missing before create
	assert.Error(t, layout.Validate())

	require.NoError(t, layout.Create())
	assert.NoError(t, layout.Validate())

	assert.DirExists(t, filepath.Join(root, "01_en_chapters"))
	assert.DirExists(t, filepath.Join(root, "03_ro_segments"))
	assert.DirExists(t, filepath.Join(root, "06_tracking", "statistics"))

	// removing one stage dir makes validation fail again
	require.NoError(t, os.RemoveAll(layout.SourceSegmentsDir()))
	err := layout.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "02_en_segments")
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "translation_config.yaml")

	cfg := &Config{
		BookName:       "The Bands of Mourning",
		EpubFile:       "bands.epub",
		SourceLanguage: "en",
		TargetLanguage: "ro",
		Created:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
