package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Override is set at link time (-ldflags "-X .../version.Override=v1.2.3").
var Override string

// String gives you the version of the create tool.
func String() string {
	if Override != "" {
		return Override
	}
	return fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
}

// Revision returns the VCS revision the binary was built from, if known.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			if len(setting.Value) > 12 {
				return setting.Value[:12]
			}
			return setting.Value
		}
	}
	return ""
}

// UserAgent is sent with every registry and asset request.
func UserAgent() string {
	return fmt.Sprintf("frontity-create/%s (%s/%s)", String(), runtime.GOOS, runtime.GOARCH)
}
