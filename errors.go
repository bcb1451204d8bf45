package appsettings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/appsettings/i18n"
	"github.com/reoring/appsettings/settingsdoc"
)

// Issue codes
const (
	CodeMissingKey     = "missing_key"
	CodeMissingValue   = "missing_value"
	CodeOverridden     = "overridden"
	CodeAlreadyPresent = "already_present"
	CodeNoAppSettings  = "no_app_settings"
	CodeDuplicateKey   = "duplicate_key"
)

var (
	// ErrNoProject is returned when the workspace has no project loaded.
	ErrNoProject = errors.New("appsettings: no project loaded")
	// ErrUnsupportedPlan is returned when Apply receives a plan produced by
	// a different step.
	ErrUnsupportedPlan = errors.New("appsettings: unsupported plan")
)

// Issue is a non-fatal diagnostic recorded during analysis.
type Issue struct {
	Source  string // file the issue was found in
	Path    string // element path (XML) or JSON Pointer (JSON)
	Code    string
	Message string
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s%s", it.Code, it.Source, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ByCode returns the issues with the given code.
func (iss Issues) ByCode(code string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Code == code {
			out = append(out, it)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func newIssue(source, path, code string, data map[string]string) Issue {
	return Issue{Source: source, Path: path, Code: code, Message: i18n.T(code, data)}
}

func fromDocWarnings(source string, ws []settingsdoc.Warning) Issues {
	var iss Issues
	for _, w := range ws {
		key := w.Path[strings.LastIndex(w.Path, "/")+1:]
		iss = append(iss, newIssue(source, w.Path, w.Code, map[string]string{"key": key}))
	}
	return iss
}
