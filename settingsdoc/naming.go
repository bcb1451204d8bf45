package settingsdoc

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// BaseFileName is the canonical settings file written by migrations.
const BaseFileName = "appsettings.json"

// appsettings.json or appsettings.<Environment>.json, any case.
var fileNamePattern = regexp.MustCompile(`(?i)^appsettings(\.[^./\\]+)?\.json$`)

// IsSettingsFile reports whether name follows the settings file naming
// convention. name is a base name, not a path.
func IsSettingsFile(name string) bool { return fileNamePattern.MatchString(name) }

// Environment returns the environment suffix of a settings file name
// ("Development" for appsettings.Development.json) or "" for the base file.
func Environment(name string) string {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.TrimPrefix(m[1], ".")
}

// Discover lists settings files directly inside dir. The base file comes
// first, followed by environment variants ordered by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSettingsFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		ei, ej := Environment(names[i]), Environment(names[j])
		if (ei == "") != (ej == "") {
			return ei == ""
		}
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}
