package settingsdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSettingsFile(t *testing.T) {
	for name, want := range map[string]bool{
		"appsettings.json":             true,
		"AppSettings.JSON":             true,
		"appsettings.Development.json": true,
		"appsettings.prod-eu.json":     true,
		"appsettings.a.b.json":         false,
		"appsettings..json":            false,
		"myappsettings.json":           false,
		"appsettings.json.bak":         false,
		"web.config":                   false,
	} {
		assert.Equal(t, want, IsSettingsFile(name), name)
	}
}

func TestEnvironment(t *testing.T) {
	assert.Equal(t, "", Environment("appsettings.json"))
	assert.Equal(t, "Staging", Environment("appsettings.Staging.json"))
	assert.Equal(t, "", Environment("other.json"))
}

func TestDiscover_BaseFirst(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"appsettings.Staging.json", "appsettings.Development.json", "appsettings.json", "notes.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(`{}`), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "appsettings.Dir.json"), 0o755))

	names, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"appsettings.json", "appsettings.Development.json", "appsettings.Staging.json"}, names)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
