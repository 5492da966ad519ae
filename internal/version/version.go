// Package version carries the sanmd build fingerprints.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Overridable at link time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var componentStyles = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Pretty colors the dotted components of Version for terminal output.
// Coloring happens at render time so link-time overrides stay styled
// and honor the color mode in effect.
func Pretty() string {
	if Version == "" {
		return "dev"
	}
	parts := strings.SplitN(Version, ".", len(componentStyles))
	for i, part := range parts {
		parts[i] = componentStyles[i].Sprint(part)
	}
	return strings.Join(parts, ".")
}
