package fixture

import (
	"fmt"

	"golang.org/x/mod/semver"
)

const Version = "v0.3.0"

// VersionHeader carries the client version on API requests.
const VersionHeader = "X-Fixturegen-Version"

// IsCompatibleVersion checks if a client version is compatible with the server version.
// Compatibility rules:
// - Major version must match exactly.
// - Minor and patch versions can differ.
func IsCompatibleVersion(clientVersion, serverVersion string) (bool, error) {
	if !semver.IsValid(clientVersion) {
		return false, fmt.Errorf("invalid client version: %s", clientVersion)
	}
	if !semver.IsValid(serverVersion) {
		return false, fmt.Errorf("invalid server version: %s", serverVersion)
	}

	return semver.Major(clientVersion) == semver.Major(serverVersion), nil
}

// CompatibilityError returns a user-friendly message for incompatible versions.
func CompatibilityError(clientVersion, serverVersion string) string {
	return fmt.Sprintf(
		"Client version %s is incompatible with server version %s. Required version: %s.x.x",
		clientVersion, serverVersion, semver.Major(serverVersion),
	)
}
