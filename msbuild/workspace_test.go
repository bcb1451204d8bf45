package msbuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/appsettings"
	"github.com/reoring/appsettings/settingsdoc"
)

func TestWorkspace_NoProject(t *testing.T) {
	ws := NewWorkspace("")
	p, err := ws.Project(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, ws.Reload(context.Background()))

	_, err = appsettings.NewMigrator(appsettings.DefaultOptions()).Analyze(context.Background(), ws)
	assert.ErrorIs(t, err, appsettings.ErrNoProject)
}

func TestWorkspace_ReloadSeesDiskChanges(t *testing.T) {
	path := writeProject(t, "Web.csproj", sdkProject)
	ws := NewWorkspace(path)
	p, err := ws.Project(context.Background())
	require.NoError(t, err)
	assert.False(t, p.ContainsItem("a.json", "Content"))

	other, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, other.AddItem("Content", "a.json"))
	require.NoError(t, other.Save(context.Background()))

	p, err = ws.Project(context.Background())
	require.NoError(t, err)
	assert.False(t, p.ContainsItem("a.json", "Content"), "cached until reload")

	require.NoError(t, ws.Reload(context.Background()))
	p, err = ws.Project(context.Background())
	require.NoError(t, err)
	assert.True(t, p.ContainsItem("a.json", "Content"))
}

func TestWorkspace_MigrationTracksSettingsFile(t *testing.T) {
	path := writeProject(t, "Web.csproj", sdkProject)
	dir := filepath.Dir(path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web.config"), []byte(
		`<configuration><appSettings><add key="Foo" value="true"/><add key="Bar" value="10"/></appSettings></configuration>`), 0o644))

	ws := NewWorkspace(path)
	rep, err := appsettings.NewPipeline([]appsettings.Step{
		appsettings.NewMigrator(appsettings.DefaultOptions()),
	}).Run(context.Background(), ws)
	require.NoError(t, err)
	require.Len(t, rep.Steps, 1)
	assert.True(t, rep.Steps[0].Applied)

	out, err := os.ReadFile(filepath.Join(dir, settingsdoc.BaseFileName))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Foo\": true,\n  \"Bar\": 10\n}\n", string(out))

	fresh, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, fresh.ContainsItem(settingsdoc.BaseFileName, appsettings.ContentItem))

	// second run has nothing to do and leaves the project alone
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	rep, err = appsettings.NewPipeline([]appsettings.Step{
		appsettings.NewMigrator(appsettings.DefaultOptions()),
	}).Run(context.Background(), NewWorkspace(path))
	require.NoError(t, err)
	assert.False(t, rep.Steps[0].Applied)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}
