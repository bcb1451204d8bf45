package msbuild

import (
	"context"

	"github.com/reoring/appsettings"
)

// Workspace holds at most one loaded project. The project is loaded lazily
// and re-read from disk on Reload.
type Workspace struct {
	projectFile string
	proj        *Project
}

var _ appsettings.Workspace = (*Workspace)(nil)

// NewWorkspace returns a workspace for projectFile. An empty projectFile
// yields a workspace with no project loaded.
func NewWorkspace(projectFile string) *Workspace {
	return &Workspace{projectFile: projectFile}
}

// Project returns the loaded project, or nil when the workspace has none.
func (w *Workspace) Project(ctx context.Context) (appsettings.Project, error) {
	if w.projectFile == "" {
		return nil, nil
	}
	if w.proj == nil {
		p, err := Load(ctx, w.projectFile)
		if err != nil {
			return nil, err
		}
		w.proj = p
	}
	return w.proj, nil
}

// Reload discards the in-memory project and reads it again.
func (w *Workspace) Reload(ctx context.Context) error {
	if w.projectFile == "" {
		return nil
	}
	p, err := Load(ctx, w.projectFile)
	if err != nil {
		return err
	}
	w.proj = p
	return nil
}
