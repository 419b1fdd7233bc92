// Package settings provides build metadata, per-run options, and context
// helpers shared by the frota CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "frota"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Source describes where the rows of a run come from: a file path, stdin,
// or one of the built-in datasets.
type Source struct {
	Path    string
	Stdin   bool
	Dataset string
}

// Run holds the options for a single execution.
type Run struct {
	MinLogLevel int8
	Source      Source
	Interactive bool
	IsQuiet     bool
	NoColor     bool
	ExitOnError bool
	ExportDir   string
}

// NewCliParams returns the defaults used when running from the command line.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		ExitOnError: true,
		ExportDir:   ".",
	}
}

// Label describes the source for log lines and titles.
func (s Source) Label() string {
	switch {
	case s.Dataset != "":
		return "dataset:" + s.Dataset
	case s.Path != "":
		return s.Path
	case s.Stdin:
		return "stdin"
	default:
		return "empty"
	}
}
