package ffbuild

import (
	"fmt"
	"runtime"
	"strings"
)

// ToolRequirement describes one external tool the pipeline needs.
//
// A requirement is satisfied when the primary name or any alternative is
// found in PATH. Optional tools are checked but never fail the run.
type ToolRequirement struct {
	// Name is the primary tool binary name (e.g. "make").
	Name string

	// Alternatives can satisfy the requirement instead of Name.
	// Example: []string{"gmake"}.
	Alternatives []string

	// Optional tools don't cause an error when missing.
	Optional bool

	// Purpose is a human-readable description used in error messages.
	Purpose string
}

// RequiredTools returns the external tools a from-source build depends on.
// The probe needs only the host C compiler; git is not listed because the
// checkout happens in-process.
func RequiredTools(opts *Options) []ToolRequirement {
	tools := []ToolRequirement{
		{
			Name:         "make",
			Alternatives: []string{"gmake"},
			Purpose:      "FFmpeg build and install steps",
		},
		{
			Name:         opts.HostCC,
			Alternatives: []string{"gcc", "clang", "cc"},
			Purpose:      "host compiler for the capability probe",
		},
	}

	if runtime.GOOS == "windows" {
		tools = append(tools, ToolRequirement{
			Name:    "sh",
			Purpose: "POSIX shell required to run FFmpeg's configure script",
		})
	}

	return tools
}

// CheckRequiredTools verifies that every required tool is reachable,
// reporting all missing ones in a single error so the user can fix the
// environment in one pass.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string

	for _, req := range requirements {
		found := toolAvailable(req.Name)
		for _, alt := range req.Alternatives {
			if found {
				break
			}
			found = toolAvailable(alt)
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missing = append(missing, req.Name)
			}
		}
	}

	if len(missing) == 1 {
		return fmt.Errorf("required tool missing: %s", missing[0])
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}

func toolAvailable(tool string) bool {
	if tool == "" {
		return false
	}
	_, err := execLookPath(tool)
	return err == nil
}
