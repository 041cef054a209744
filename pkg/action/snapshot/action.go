// Package snapshot labels generation runs in the manifest so successive
// outputs can be listed and compared.
package snapshot

import (
	"fmt"

	"github.com/bldgen/bldgen/pkg/action/generate"
	"github.com/bldgen/bldgen/pkg/manifest"
)

// Generate runs a full generation round and records the written files in the
// manifest under the given version label.
func Generate(opts generate.Options, manifestPath, version string) (*generate.Result, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	res, err := generate.Run(opts)
	if err != nil {
		return nil, err
	}

	m.Record(manifest.Entry{Version: version, Files: res.Files})
	if err := m.Save(manifestPath); err != nil {
		return nil, err
	}
	return res, nil
}

// List returns all runs recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and
// previous runs, and returns a textual diff of their generated files.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}
	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", fmt.Errorf("no current/previous runs recorded")
	}
	return m.Diff(m.PreviousVersion, m.CurrentVersion)
}
