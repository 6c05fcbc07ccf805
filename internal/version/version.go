// Package version holds the reldocs build information, set with -ldflags
// "-X github.com/ndcmsl/workflows/internal/version.Version=v1.2.3".
package version

import "runtime/debug"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild reports whether the binary was built without a release version.
func IsDevBuild() bool {
	return Version == "dev"
}

// Resolved returns Version, or the module version recorded by
// 'go install module@version' when no version was linked in.
func Resolved() string {
	if !IsDevBuild() {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
