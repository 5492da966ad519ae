package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sanmd/internal/sanmd"
)

type manifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Metadata metadataConfig `toml:"metadata"`
	Run      runConfig      `toml:"run"`
}

type metadataConfig struct {
	Covered bool `toml:"covered"`
	Atomics bool `toml:"atomics"`
	UAR     bool `toml:"uar"`
}

type runConfig struct {
	Jobs int `toml:"jobs"`
}

// findSanmdToml walks up from startDir looking for a sanmd.toml.
func findSanmdToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "sanmd.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest loads the nearest sanmd.toml, if any. A missing
// manifest is not an error; all options then default to off.
func loadManifest(startDir string) (*manifest, bool, error) {
	manifestPath, ok, err := findSanmdToml(startDir)
	if err != nil || !ok {
		return nil, false, err
	}
	var cfg manifestConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse %q: %w", manifestPath, err)
	}
	return &manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// options converts manifest values to pass options.
func (m *manifest) options() sanmd.Options {
	if m == nil {
		return sanmd.Options{}
	}
	return sanmd.Options{
		Covered: m.Config.Metadata.Covered,
		Atomics: m.Config.Metadata.Atomics,
		UAR:     m.Config.Metadata.UAR,
	}
}
