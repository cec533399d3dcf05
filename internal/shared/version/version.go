// Package version carries build metadata, injected via ldflags at release
// time.
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)
