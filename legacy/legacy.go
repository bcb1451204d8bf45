// Package legacy reads <appSettings> entries from .NET Framework style XML
// configuration files (app.config, web.config).
package legacy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// AppSettingsPath is the element path of the settings section, relative to
// the document root.
const AppSettingsPath = "./configuration/appSettings"

// ErrMalformed reports a configuration file that is not well-formed XML.
var ErrMalformed = errors.New("legacy: malformed configuration file")

// Entry is one <add> element. A nil Key or Value means the attribute was
// absent, which is distinct from an empty attribute.
type Entry struct {
	Key   *string
	Value *string
	// Index is the position among the section's <add> elements.
	Index int
}

// Document is a parsed configuration file.
type Document struct {
	name string
	doc  *etree.Document
}

// Parse parses data as an XML configuration document named name.
func Parse(name string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return &Document{name: name, doc: doc}, nil
}

// LoadFile reads and parses path. ok is false when the file does not exist.
func LoadFile(ctx context.Context, path string) (d *Document, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err = Parse(filepath.Base(path), data)
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Name identifies the document in diagnostics.
func (d *Document) Name() string { return d.name }

// AppSettings returns the <add> entries of the first appSettings section in
// document order. found is false when the document has no such section.
func (d *Document) AppSettings() (entries []Entry, found bool) {
	section := d.doc.FindElement(AppSettingsPath)
	if section == nil {
		return nil, false
	}
	for i, el := range section.SelectElements("add") {
		entries = append(entries, Entry{
			Key:   attr(el, "key"),
			Value: attr(el, "value"),
			Index: i,
		})
	}
	return entries, true
}

func attr(el *etree.Element, name string) *string {
	a := el.SelectAttr(name)
	if a == nil {
		return nil
	}
	v := a.Value
	return &v
}
