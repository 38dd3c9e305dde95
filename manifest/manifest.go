// Package manifest loads a project's driftmod.toml, the configuration
// surface spec.md §6 assumes a caller already has in hand before
// constructing a SemanticPass: the module's name, the directories its
// imports resolve against, and any extra version tags it lists (read into
// Manifest.VersionTags; the driftc driver does not pass them on to the
// semantic pass). Grounded on the teacher's
// mods/load.go TOML module file, trimmed to what a semantic-analysis-only
// front end needs (no build profiles, caching, or dependency fetching,
// since those serve the out-of-scope codegen/link stages).
package manifest

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the manifest file a module root directory is expected to
// contain, mirroring the teacher's common.ModuleFileName convention.
const FileName = "driftmod.toml"

// tomlManifest is the on-disk shape of driftmod.toml.
type tomlManifest struct {
	Module *tomlModule `toml:"module"`
}

type tomlModule struct {
	Name         string   `toml:"name"`
	IncludeDirs  []string `toml:"include-dirs,omitempty"`
	LogLevel     string   `toml:"log-level,omitempty"`
	VersionTags  []string `toml:"version-tags,omitempty"`
	DriftVersion string   `toml:"drift-version"`
}

// Manifest is the resolved, validated project configuration.
type Manifest struct {
	Name         string
	ModuleRoot   string
	IncludePaths []string
	LogLevel     string
	VersionTags  []string
}

// Load reads and validates the driftmod.toml manifest rooted at dir.
func Load(dir string) (*Manifest, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tm := &tomlManifest{}
	if err := toml.Unmarshal(buff, tm); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if tm.Module == nil || tm.Module.Name == "" {
		return nil, fmt.Errorf("%s is missing a [module] name", FileName)
	}

	m := &Manifest{
		Name:        tm.Module.Name,
		ModuleRoot:  dir,
		LogLevel:    tm.Module.LogLevel,
		VersionTags: tm.Module.VersionTags,
	}

	for _, inc := range tm.Module.IncludeDirs {
		if filepath.IsAbs(inc) {
			m.IncludePaths = append(m.IncludePaths, inc)
		} else {
			m.IncludePaths = append(m.IncludePaths, filepath.Join(dir, inc))
		}
	}

	return m, nil
}
