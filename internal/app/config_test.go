package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":8000"

[database]
dsn = "file::memory:"
migrations_dir = "./migrations"

[codes]
salt = "exammaster-xinmi"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8000", config.Server.Port)
	assert.Equal(t, "exammaster-xinmi", config.Codes.Salt)
	assert.Equal(t, "*", config.Server.CORSOrigin, "CORS origin defaults to *")
	assert.Equal(t, "Exam User", config.Codes.DefaultName, "display name has a default")
	assert.False(t, config.Auth.EnableCache)
}

func TestLoadConfigRejectsMissingPort(t *testing.T) {
	path := writeConfig(t, `
[codes]
salt = "exammaster-xinmi"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsMissingSalt(t *testing.T) {
	path := writeConfig(t, `
[server]
port = ":8000"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
