package version

import "runtime/debug"

var (
	// version and commit are set at build time with
	// -ldflags "-X provpush/internal/application/version.version=1.2.3".
	version = "0.0.0"
	commit  = ""
)

func GetVersion() string {
	return version
}

// GetCommit returns the VCS revision the binary was built from, falling back
// to the build info recorded by the Go toolchain.
func GetCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// String returns the version line printed by --version.
func String() string {
	return "provpush " + GetVersion() + " (" + GetCommit() + ")"
}
