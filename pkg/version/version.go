// Package version exposes build metadata set through -ldflags.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/Yasharm4x/CarbonSense-v5/pkg/version.version=v1.2.0"
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
