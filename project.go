package appsettings

import "context"

// Workspace gives a step access to the project being upgraded.
// msbuild.Workspace is the file-backed implementation.
type Workspace interface {
	// Project returns the loaded project, or nil when none is loaded.
	Project(ctx context.Context) (Project, error)
	// Reload re-reads the project after files on disk changed.
	Reload(ctx context.Context) error
}

// Project is the subset of a project model migration steps need.
type Project interface {
	// Dir is the project root directory.
	Dir() string
	ContainsItem(path, itemType string) bool
	AddItem(itemType, path string) error
	// Save persists the project definition.
	Save(ctx context.Context) error
}

// ContentItem is the item type settings files are tracked under.
const ContentItem = "Content"

func requireProject(ctx context.Context, ws Workspace) (Project, error) {
	if ws == nil {
		return nil, ErrNoProject
	}
	p, err := ws.Project(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoProject
	}
	return p, nil
}
