package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/smartcache/internal/memo"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	content := `pure_operations: [len, max]
allow_ident_return: true
key_mode: arguments
parallel: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"len", "max"}, cfg.PureOperations)
	assert.True(t, cfg.AllowIdentReturn)
	assert.Equal(t, memo.KeyByArguments, cfg.KeyMode)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, DefaultReports, cfg.Reports)
}

func TestLoad_RejectsUnknownKeyMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("key_mode: fuzzy\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("parallel: [\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate_Normalises(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, memo.KeyByName, cfg.KeyMode)
	assert.Equal(t, 1, cfg.Parallel)
	assert.Equal(t, DefaultReports, cfg.Reports)
}
