// Package tykocommon holds small helpers shared by the Tyko server packages: precision
// dates, build version reporting and common errors.
package tykocommon

import (
	"runtime/debug"
)

const (
	ServerVersion = "0.1.0"
	ApiVersion    = "v1"
	// SchemaVersion is the version of the database schema this build creates.
	SchemaVersion = "1.0.0"
)

// GetVersion reports the version of the running build. Builds from a git checkout
// report "GIT:<revision>". Otherwise the module version is used, and ServerVersion
// when neither is known.
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ServerVersion
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			rev := s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
			return "GIT:" + rev
		}
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return ServerVersion
}
