package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the release version, set at build time via ldflags. When
// built without ldflags (e.g. go install), the module build info is
// consulted instead.
var Version = ""

// GetVersionString returns a human-readable version string including
// the Go runtime version.
func GetVersionString() string {
	return fmt.Sprintf("%s %s/%s %s", get(), runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func get() string {
	if Version != "" {
		return Version
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}

	return "(devel)"
}
