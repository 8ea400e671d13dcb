// Package version carries build metadata stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/rcfiber/internal/version.Version=0.2.0"
package version

import "fmt"

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

const (
	Author = "Alexius Academia"
	Year   = "2026"
)

// String is the one-line version banner.
func String() string {
	return fmt.Sprintf("rcfiber v%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
