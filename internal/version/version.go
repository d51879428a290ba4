// Package version carries build information injected at link time.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/bongard/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/bongard/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/bongard/internal/version.Date={{.Date}}
)

// String formats the build information for the version command.
func String() string {
	return fmt.Sprintf("bongard version %s\n  commit: %s\n  built:  %s", Version, Commit, Date)
}
