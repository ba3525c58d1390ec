// Package version carries the build information printed by `dotstash version`.
package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dotstash/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotstash/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dotstash/internal/version.Date={{.Date}}
)

// String is the one-line form shown by the version command.
func String() string {
	return fmt.Sprintf("dotstash %s (commit %s, built %s)", Version, Commit, Date)
}
