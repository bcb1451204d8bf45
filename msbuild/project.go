// Package msbuild is a file-backed implementation of the project collaborator
// used by migration steps. It understands just enough of the MSBuild project
// format to query and add item elements such as <Content Include="..."/>.
package msbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoProjectFile is returned by FindProject when the directory holds no
// project file.
var ErrNoProjectFile = errors.New("msbuild: no project file found")

var projectExts = []string{".csproj", ".vbproj", ".fsproj"}

// Project is an MSBuild project file loaded into memory.
type Project struct {
	path string
	doc  *etree.Document
}

// Load reads the project file at path.
func Load(ctx context.Context, path string) (*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("loading project %s: %w", path, err)
	}
	if doc.SelectElement("Project") == nil {
		return nil, fmt.Errorf("loading project %s: missing <Project> root", path)
	}
	return &Project{path: path, doc: doc}, nil
}

// Path returns the project file path.
func (p *Project) Path() string { return p.path }

// Dir returns the project root directory.
func (p *Project) Dir() string { return filepath.Dir(p.path) }

// ContainsItem reports whether an item of itemType includes path. path may be
// absolute or relative to the project directory; comparison ignores case and
// separator style.
func (p *Project) ContainsItem(path, itemType string) bool {
	want := p.normalize(path)
	for _, el := range p.doc.FindElements("./Project/ItemGroup/" + itemType) {
		if inc := el.SelectAttrValue("Include", ""); inc != "" && p.normalize(inc) == want {
			return true
		}
	}
	return false
}

// AddItem appends a new item group holding a single itemType item for path.
func (p *Project) AddItem(itemType, path string) error {
	root := p.doc.SelectElement("Project")
	if root == nil {
		return fmt.Errorf("project %s: missing <Project> root", p.path)
	}
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(p.Dir(), path)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.path, err)
		}
		rel = r
	}
	group := root.CreateElement("ItemGroup")
	item := group.CreateElement(itemType)
	item.CreateAttr("Include", strings.ReplaceAll(rel, "/", `\`))
	return nil
}

// Save writes the project back to its file.
func (p *Project) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.doc.Indent(2)
	if err := p.doc.WriteToFile(p.path); err != nil {
		return fmt.Errorf("saving project %s: %w", p.path, err)
	}
	return nil
}

func (p *Project) normalize(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Dir(), path)
	}
	return strings.ToLower(filepath.Clean(path))
}

// FindProject returns the single project file directly inside dir.
func FindProject(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", dir, err)
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, pe := range projectExts {
			if ext == pe {
				found = append(found, filepath.Join(dir, e.Name()))
			}
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoProjectFile, dir)
	case 1:
		return found[0], nil
	default:
		sort.Strings(found)
		return "", fmt.Errorf("msbuild: multiple project files in %s: %s", dir, strings.Join(found, ", "))
	}
}
