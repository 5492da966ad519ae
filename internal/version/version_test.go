package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}

	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

// TestPretty_PreservesVersionText tests that coloring only decorates:
// with color disabled, Pretty is the plain version string, including a
// link-time override.
func TestPretty_PreservesVersionText(t *testing.T) {
	origNoColor := color.NoColor
	origVersion := Version
	defer func() {
		color.NoColor = origNoColor
		Version = origVersion
	}()
	color.NoColor = true

	if got := Pretty(); got != Version {
		t.Errorf("Pretty() = %q, want %q", got, Version)
	}

	Version = "1.2.3"
	if got := Pretty(); got != "1.2.3" {
		t.Errorf("Pretty() = %q, want %q", got, "1.2.3")
	}

	Version = ""
	if got := Pretty(); got != "dev" {
		t.Errorf("Pretty() = %q, want %q", got, "dev")
	}
}
