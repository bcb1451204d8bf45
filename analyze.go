package appsettings

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/reoring/appsettings/legacy"
	"github.com/reoring/appsettings/settingsdoc"
)

// ConfigSource is a parsed legacy configuration document.
// *legacy.Document implements it.
type ConfigSource interface {
	Name() string
	// AppSettings returns the <add> entries of the appSettings section;
	// found is false when the section is absent.
	AppSettings() (entries []legacy.Entry, found bool)
}

var _ ConfigSource = (*legacy.Document)(nil)

// Analyze computes the settings from sources that are not yet present in any
// of the existing settings documents.
//
// Sources are merged in order and a later source overrides the value of an
// earlier one; the key keeps the position where it was first seen. A setting
// is left out when a top-level property with the same name, compared without
// regard to case, exists in any existing document. Entries missing a key or
// value attribute are skipped and reported in the returned Issues.
func Analyze(sources []ConfigSource, existing []*settingsdoc.Document) (*ResidualSet, Issues) {
	var iss Issues

	var order []string
	discovered := make(map[string]string)
	origin := make(map[string]string)
	for _, src := range sources {
		entries, found := src.AppSettings()
		if !found {
			iss = append(iss, newIssue(src.Name(), "", CodeNoAppSettings, nil))
			continue
		}
		for _, e := range entries {
			path := entryPath(e)
			if e.Key == nil {
				iss = append(iss, newIssue(src.Name(), path, CodeMissingKey, nil))
				continue
			}
			key := *e.Key
			if e.Value == nil {
				iss = append(iss, newIssue(src.Name(), path, CodeMissingValue, map[string]string{"key": key}))
				continue
			}
			if prev, ok := discovered[key]; !ok {
				order = append(order, key)
			} else if prev != *e.Value {
				iss = append(iss, newIssue(src.Name(), path, CodeOverridden, map[string]string{"key": key, "source": origin[key]}))
			}
			discovered[key] = *e.Value
			origin[key] = src.Name()
		}
	}

	present := make(map[string]string)
	for _, doc := range existing {
		name := docName(doc)
		iss = append(iss, fromDocWarnings(name, doc.Warnings)...)
		for _, n := range doc.Names() {
			k := strings.ToLower(n)
			if _, ok := present[k]; !ok {
				present[k] = name
			}
		}
	}

	residual := NewResidualSet()
	for _, key := range order {
		if where, ok := present[strings.ToLower(key)]; ok {
			iss = append(iss, newIssue(origin[key], "", CodeAlreadyPresent, map[string]string{"key": key, "source": where}))
			continue
		}
		residual.Add(key, discovered[key])
	}
	return residual, iss
}

func entryPath(e legacy.Entry) string {
	return "/configuration/appSettings/add[" + strconv.Itoa(e.Index+1) + "]"
}

func docName(d *settingsdoc.Document) string {
	if d.Path == "" {
		return settingsdoc.BaseFileName
	}
	return filepath.Base(d.Path)
}
