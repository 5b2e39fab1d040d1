package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// version represents a semantic version with major, minor, and patch components.
// It supports parsing of standard semver strings (e.g., "3.0.1", "3.1.0-rc1").
type version struct {
	major      int
	minor      int
	patch      int
	hasPatch   bool
	prerelease string
}

// parseVersion parses a semantic version string into a version struct.
// Supports standard semver format: "major.minor(.patch)?" with optional
// "-prerelease" suffix. Examples: "3.0", "3.0.1", "3.1.0-rc1"
func parseVersion(s string) (*version, error) {
	// Split off pre-release suffix if present
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
		if prerelease == "" {
			return nil, fmt.Errorf("empty pre-release suffix")
		}
	}

	// Split version components
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	// Parse major with bounds checking
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 || major > math.MaxInt32 {
		return nil, fmt.Errorf("invalid major version: %q", parts[0])
	}

	// Parse minor with bounds checking
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 || minor > math.MaxInt32 {
		return nil, fmt.Errorf("invalid minor version: %q", parts[1])
	}

	// Parse patch (optional, defaults to 0) with bounds checking
	patch := 0
	hasPatch := false
	if len(parts) == 3 {
		patch, err = strconv.Atoi(parts[2])
		if err != nil || patch < 0 || patch > math.MaxInt32 {
			return nil, fmt.Errorf("invalid patch version: %q", parts[2])
		}
		hasPatch = true
	}

	return &version{
		major:      major,
		minor:      minor,
		patch:      patch,
		hasPatch:   hasPatch,
		prerelease: prerelease,
	}, nil
}
