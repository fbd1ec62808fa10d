package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
)

// Version is set at build time with -ldflags "-X github.com/temirov/alchemist/internal/utils.Version=v1.2.3".
var Version string

// GetApplicationVersion reports the version stamped at build time, the module
// version from build info, or the output of git describe, in that order.
func GetApplicationVersion() string {
	if strings.TrimSpace(Version) != "" {
		return Version
	}
	if buildInfo, available := debug.ReadBuildInfo(); available {
		if moduleVersion := buildInfo.Main.Version; moduleVersion != "" && moduleVersion != developmentVersion {
			return moduleVersion
		}
	}
	// #nosec G204
	describeOutput, describeError := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if describeError == nil {
		if described := strings.TrimSpace(string(describeOutput)); described != "" {
			return described
		}
	}
	return unknownVersion
}
