package ramltools

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during build by GoReleaser
	// For development builds, this will show "dev"
	version = "dev"
	// commit is the git short hash, set via ldflags
	commit = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// GoVersion returns the Go runtime version the binary was built with
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns a multi-line summary of the build metadata.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nGo Version: %s", Version(), Commit(), GoVersion())
}
