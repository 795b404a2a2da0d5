package config

// Version is the current dkcheck version.
// Set at build time via -ldflags or by editing this file for a release.
var Version = "0.1.0"

const SourceFileExt = ".dk"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".dk", ".dkm"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running under `go test`. No code
// in this repository sets or reads it; the CLI decides on color output
// from isatty alone.
var IsTestMode = false

// IsTraceMode is a run-mode flag for verbose AC search logging. No code in
// this repository sets or reads it, and the AC search does no logging.
var IsTraceMode = false

// JokerIdent is the reserved surface-syntax identifier for an AC joker
// wildcard (SPEC_FULL.md section 7).
const JokerIdent = "J"

// DefaultCachePath is where `dkcheck serve` stores its compiled-rule cache
// when dkcheck.yaml sets no cache_path.
const DefaultCachePath = ".dkcheck/cache.sqlite"

// DefaultServeAddr is the default listen address for `dkcheck serve`.
const DefaultServeAddr = "127.0.0.1:7643"
