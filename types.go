package appsettings

import "github.com/reoring/appsettings/settingsdoc"

// Setting is a legacy key/value pair taken from an <add key="" value=""/>
// element. Key keeps the case it was written with.
type Setting struct {
	Key   string
	Value string
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// TrackingMode decides when Apply adds the settings file to the project as
// a content item.
type TrackingMode int

const (
	// TrackWhenAbsent adds the item when the project does not already
	// contain it.
	TrackWhenAbsent TrackingMode = iota
	// TrackWhenPresent adds the item only when the project already contains
	// it. This reproduces the inverted check of the tool this step replaces
	// and exists for compatibility testing.
	TrackWhenPresent
	// TrackNever leaves the project definition untouched.
	TrackNever
)

func (m TrackingMode) String() string {
	switch m {
	case TrackWhenAbsent:
		return "absent"
	case TrackWhenPresent:
		return "present"
	case TrackNever:
		return "never"
	default:
		return "unknown"
	}
}

// Options configures a Migrator.
type Options struct {
	// ConfigFiles are legacy configuration files relative to the project
	// directory, in evaluation order. Later files override earlier ones.
	ConfigFiles []string
	// TargetFile is the settings file written at the project root.
	TargetFile string
	Tracking   TrackingMode
	// AtomicWrite replaces the target through a temp file and rename.
	AtomicWrite bool
	// OnDuplicateKey applies to duplicate keys in existing settings files.
	OnDuplicateKey Severity
	// Write is the output format of the rewritten settings file.
	Write settingsdoc.WriteFormat
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ConfigFiles:    []string{"app.config", "web.config"},
		TargetFile:     settingsdoc.BaseFileName,
		Tracking:       TrackWhenAbsent,
		AtomicWrite:    true,
		OnDuplicateKey: Warn,
		Write:          settingsdoc.CanonicalWrite,
	}
}

func (o Options) readFormat() settingsdoc.ReadFormat {
	f := settingsdoc.LenientRead
	switch o.OnDuplicateKey {
	case Error:
		f.OnDuplicate = settingsdoc.DuplicateError
	case Warn:
		f.OnDuplicate = settingsdoc.DuplicateWarn
	default:
		f.OnDuplicate = settingsdoc.DuplicateIgnore
	}
	return f
}
