package settingsdoc

// DuplicateMode controls how duplicate keys in an existing settings file are
// handled on read.
type DuplicateMode int

const (
	DuplicateIgnore DuplicateMode = iota
	DuplicateWarn                 // record a Warning and keep every occurrence
	DuplicateError                // fail the read with ErrDuplicateKey
)

// ReadFormat configures how settings files are parsed.
type ReadFormat struct {
	// Lenient accepts // and /* */ comments and trailing commas.
	Lenient bool
	// OnDuplicate applies at every object depth.
	OnDuplicate DuplicateMode
}

// WriteFormat configures how settings files are serialized. Output is always
// strict RFC 8259 JSON regardless of how the input was read.
type WriteFormat struct {
	// Indent is the per-level indentation; empty means compact output.
	Indent string
	// FinalNewline appends a trailing "\n".
	FinalNewline bool
}

var (
	// LenientRead is the format used for existing settings files.
	LenientRead = ReadFormat{Lenient: true, OnDuplicate: DuplicateWarn}
	// StrictRead rejects comments and trailing commas.
	StrictRead = ReadFormat{OnDuplicate: DuplicateWarn}
	// CanonicalWrite is the format every rewritten settings file uses.
	CanonicalWrite = WriteFormat{Indent: "  ", FinalNewline: true}
)
