// FILE: idevlog/src/internal/version/version.go
package version

import (
	"fmt"
	"runtime"
)

// Set at link time: -ldflags "-X idevlog/src/internal/version.Version=v0.3.0 ..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String returns the full version line shown by "idevlog version"
func String() string {
	return fmt.Sprintf("idevlog %s (commit: %s, built: %s, %s %s/%s)",
		Version, GitCommit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns the version tag
func Short() string {
	return Version
}

// Fields returns build metadata as logger key/value pairs
func Fields() []any {
	return []any{
		"version", Version,
		"commit", GitCommit,
		"built", BuildTime,
		"go", runtime.Version(),
	}
}
