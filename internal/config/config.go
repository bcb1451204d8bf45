// Package config loads the settings of the appsettings-migrate command from
// a YAML file, an optional .env file and APPSETTINGS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/reoring/appsettings"
	"github.com/reoring/appsettings/settingsdoc"
)

// DefaultFile is the configuration file looked up in the working directory
// when no path is given.
const DefaultFile = "appsettings-migrate.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "APPSETTINGS_"

// Config holds the command settings.
type Config struct {
	// Project is the project file, or the directory holding exactly one.
	Project string `yaml:"project"`

	// ConfigFiles are the legacy configuration files, in evaluation order
	// (default ["app.config", "web.config"]).
	ConfigFiles []string `yaml:"config_files"`

	// TargetFile is the settings file to write (default "appsettings.json").
	TargetFile string `yaml:"target_file"`

	// Tracking is one of absent, present or never (default "absent").
	Tracking string `yaml:"tracking"`

	// AtomicWrite replaces the target through a temp file (default true).
	AtomicWrite *bool `yaml:"atomic_write"`

	// OnDuplicateKey is one of ignore, warn or error (default "warn").
	OnDuplicateKey string `yaml:"on_duplicate_key"`

	// Indent is the number of spaces per nesting level; 0 writes compact
	// JSON (default 2).
	Indent *int `yaml:"indent"`

	// Language selects issue message language, en or ja (default "en").
	Language string `yaml:"language"`
}

// Atomic returns the effective AtomicWrite setting.
func (c *Config) Atomic() bool {
	if c.AtomicWrite == nil {
		return true
	}
	return *c.AtomicWrite
}

// IndentWidth returns the effective Indent setting.
func (c *Config) IndentWidth() int {
	if c.Indent == nil {
		return 2
	}
	return *c.Indent
}

func (c *Config) applyDefaults() {
	def := appsettings.DefaultOptions()
	if len(c.ConfigFiles) == 0 {
		c.ConfigFiles = def.ConfigFiles
	}
	if c.TargetFile == "" {
		c.TargetFile = def.TargetFile
	}
	if c.Tracking == "" {
		c.Tracking = def.Tracking.String()
	}
	if c.OnDuplicateKey == "" {
		c.OnDuplicateKey = "warn"
	}
	if c.Language == "" {
		c.Language = "en"
	}
}

// Default returns a Config with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path, then applies environment overrides and
// defaults. An empty path tries DefaultFile and tolerates its absence; a
// named file must exist.
func Load(path string) (Config, error) {
	var cfg Config
	optional := path == ""
	if optional {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}
	if v, ok := get("PROJECT"); ok {
		c.Project = v
	}
	if v, ok := get("CONFIG_FILES"); ok {
		c.ConfigFiles = splitList(v)
	}
	if v, ok := get("TARGET_FILE"); ok {
		c.TargetFile = v
	}
	if v, ok := get("TRACKING"); ok {
		c.Tracking = v
	}
	if v, ok := get("ATOMIC_WRITE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sATOMIC_WRITE: %w", EnvPrefix, err)
		}
		c.AtomicWrite = &b
	}
	if v, ok := get("ON_DUPLICATE_KEY"); ok {
		c.OnDuplicateKey = v
	}
	if v, ok := get("INDENT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sINDENT: %w", EnvPrefix, err)
		}
		c.Indent = &n
	}
	if v, ok := get("LANGUAGE"); ok {
		c.Language = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseTracking(c.Tracking); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseSeverity(c.OnDuplicateKey); err != nil {
		errs = append(errs, err)
	}
	if n := c.IndentWidth(); n < 0 || n > 8 {
		errs = append(errs, fmt.Errorf("indent %d out of range 0..8", n))
	}
	switch strings.ToLower(c.Language) {
	case "en", "ja":
	default:
		errs = append(errs, fmt.Errorf("unsupported language %q", c.Language))
	}
	for _, f := range c.ConfigFiles {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, errors.New("config_files contains an empty entry"))
			break
		}
	}
	if c.TargetFile != "" && !settingsdoc.IsSettingsFile(c.TargetFile) {
		errs = append(errs, fmt.Errorf("target_file %q is not an appsettings*.json name", c.TargetFile))
	}
	return errors.Join(errs...)
}

// Options converts c into migrator options.
func (c *Config) Options() (appsettings.Options, error) {
	if err := c.Validate(); err != nil {
		return appsettings.Options{}, err
	}
	tracking, _ := ParseTracking(c.Tracking)
	sev, _ := ParseSeverity(c.OnDuplicateKey)
	return appsettings.Options{
		ConfigFiles:    append([]string(nil), c.ConfigFiles...),
		TargetFile:     c.TargetFile,
		Tracking:       tracking,
		AtomicWrite:    c.Atomic(),
		OnDuplicateKey: sev,
		Write: settingsdoc.WriteFormat{
			Indent:       strings.Repeat(" ", c.IndentWidth()),
			FinalNewline: true,
		},
	}, nil
}

// ParseTracking maps absent, present or never to a TrackingMode.
func ParseTracking(s string) (appsettings.TrackingMode, error) {
	for _, m := range []appsettings.TrackingMode{appsettings.TrackWhenAbsent, appsettings.TrackWhenPresent, appsettings.TrackNever} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown tracking mode %q (want absent, present or never)", s)
}

// ParseSeverity maps ignore, warn or error to a Severity.
func ParseSeverity(s string) (appsettings.Severity, error) {
	switch strings.ToLower(s) {
	case "ignore":
		return appsettings.Ignore, nil
	case "warn":
		return appsettings.Warn, nil
	case "error":
		return appsettings.Error, nil
	}
	return 0, fmt.Errorf("unknown duplicate key severity %q (want ignore, warn or error)", s)
}
