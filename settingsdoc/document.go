// Package settingsdoc reads and writes JSON settings documents such as
// appsettings.json.
//
// A Document keeps its top-level properties in file order with each value
// held as compact JSON, so a read followed by a write keeps every existing
// value intact. Reading and writing are configured separately: ReadFormat may
// accept comments and trailing commas while WriteFormat always emits strict
// JSON.
package settingsdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tailscale/hujson"

	eng "github.com/reoring/appsettings/internal/engine"
)

var (
	// ErrMalformed wraps any failure to parse an existing settings file.
	ErrMalformed = errors.New("settingsdoc: malformed settings document")
	// ErrNotObject reports a settings document whose root is not an object.
	ErrNotObject = errors.New("settingsdoc: settings document root is not an object")
	// ErrDuplicateKey is returned under DuplicateError.
	ErrDuplicateKey = errors.New("settingsdoc: duplicate key")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Property is a top-level member of a settings document.
type Property struct {
	Name  string
	Value []byte // compact JSON
}

// Warning is a non-fatal finding recorded while reading.
type Warning struct {
	Code    string
	Path    string
	Message string
}

// Document is an ordered JSON object.
type Document struct {
	// Path is the file the document was read from, if any.
	Path string
	// Exists is false when the document was synthesized for a missing file.
	Exists   bool
	Props    []Property
	Warnings []Warning
}

// New returns an empty document.
func New() *Document { return &Document{} }

// Parse parses data according to f.
func Parse(data []byte, f ReadFormat) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if f.Lenient {
		std, err := hujson.Standardize(bytes.Clone(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		data = std
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	doc := &Document{Exists: true}
	src := eng.WrapWithEnforcement(eng.NewBytes(data), eng.EnforceOptions{
		OnDuplicate: toEngineDup(f.OnDuplicate),
		IssueSink: func(si eng.SimpleIssue) {
			doc.Warnings = append(doc.Warnings, Warning{Code: si.Code, Path: si.Path, Message: si.Message})
		},
	})
	members, err := eng.ReadObject(src)
	if err != nil {
		var ie eng.IssueError
		switch {
		case errors.Is(err, eng.ErrNotObject):
			return nil, ErrNotObject
		case errors.As(err, &ie):
			return nil, fmt.Errorf("%w: %s at %s", ErrDuplicateKey, ie.Message, ie.Path)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	doc.Props = make([]Property, 0, len(members))
	for _, m := range members {
		doc.Props = append(doc.Props, Property{Name: m.Name, Value: m.Value})
	}
	return doc, nil
}

// ReadFile reads path. A missing file yields an empty document with Exists
// set to false.
func ReadFile(ctx context.Context, path string, f ReadFormat) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Document{Path: path}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	doc.Path = path
	return doc, nil
}

// Len returns the number of top-level properties.
func (d *Document) Len() int { return len(d.Props) }

// Names returns the top-level property names in document order.
func (d *Document) Names() []string {
	out := make([]string, len(d.Props))
	for i, p := range d.Props {
		out[i] = p.Name
	}
	return out
}

// Has reports whether a top-level property named name exists, ignoring case.
func (d *Document) Has(name string) bool {
	for _, p := range d.Props {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// Get returns the raw value of the first property named exactly name.
func (d *Document) Get(name string) ([]byte, bool) {
	for _, p := range d.Props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Append adds a property after all existing ones. value must be valid JSON.
func (d *Document) Append(name string, value []byte) {
	d.Props = append(d.Props, Property{Name: name, Value: value})
}

// Clone returns a copy that can be appended to without touching d.
func (d *Document) Clone() *Document {
	c := *d
	c.Props = append([]Property(nil), d.Props...)
	c.Warnings = append([]Warning(nil), d.Warnings...)
	return &c
}

// Encode serializes d according to f.
func (d *Document) Encode(f WriteFormat) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, p := range d.Props {
		if i > 0 {
			compact.WriteByte(',')
		}
		k, err := json.MarshalNoEscape(p.Name)
		if err != nil {
			return nil, err
		}
		compact.Write(k)
		compact.WriteByte(':')
		compact.Write(p.Value)
	}
	compact.WriteByte('}')

	out := compact.Bytes()
	if f.Indent != "" {
		var indented bytes.Buffer
		if err := json.Indent(&indented, out, "", f.Indent); err != nil {
			return nil, fmt.Errorf("encoding settings document: %w", err)
		}
		out = indented.Bytes()
	} else if !json.Valid(out) {
		return nil, errors.New("encoding settings document: invalid JSON value")
	}
	if f.FinalNewline {
		out = append(out, '\n')
	}
	return out, nil
}

func toEngineDup(m DuplicateMode) eng.DuplicateStrictness {
	switch m {
	case DuplicateError:
		return eng.DupError
	case DuplicateWarn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
