package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDumpConfig(t *testing.T) {
	config, err := ParseDumpConfig([]byte(`
option-format: yaml
option-indent: 4
option-type-key: _type
option-mode: eval
option-exclude-attributes: true
option-trim-token-on-output: 20
`))
	require.NoError(t, err)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, 4, config.Indent)
	assert.Equal(t, "_type", config.TypeKey)
	assert.Equal(t, "eval", config.Mode)
	assert.True(t, config.ExcludeAttributes)
	assert.Equal(t, 20, config.TrimTokenOnOutput)
	assert.False(t, config.PythonSeparators)
}

func TestParseDumpConfigEmpty(t *testing.T) {
	config, err := ParseDumpConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DumpConfig{}, *config)
	assert.Equal(t, DefaultTypeKey, config.typeKey())
}

func TestParseDumpConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseDumpConfig([]byte("option-format: json\noption-colour: red\n"))
	assert.EqualError(t, err, "unknown option 'option-colour' at line 2")
}

func TestParseDumpConfigRejectsNonMapping(t *testing.T) {
	_, err := ParseDumpConfig([]byte("- a\n- b\n"))
	assert.Error(t, err)
}

func TestLoadDumpConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("option-python-separators: true\n"), 0o644))
	config, err := LoadDumpConfig(path)
	require.NoError(t, err)
	assert.True(t, config.PythonSeparators)

	_, err = LoadDumpConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
