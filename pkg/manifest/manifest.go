// Package manifest tracks the builder files each generation run produced, so
// runs can be labeled, listed, and diffed.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// Entry records one generation run: its version label and every builder file
// written during it.
type Entry struct {
	Version string   `yaml:"version" json:"version"`
	Files   []string `yaml:"files" json:"files"`
}

// Manifest tracks the lifecycle of generation runs.
type Manifest struct {
	CurrentVersion  string  `yaml:"current_version" json:"current_version"`
	PreviousVersion string  `yaml:"previous_version" json:"previous_version"`
	Entries         []Entry `yaml:"entries" json:"entries"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories
// as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Record adds an entry, updating the version pointers and replacing any
// existing entry with the same version.
func (m *Manifest) Record(e Entry) {
	if m.CurrentVersion != "" && m.CurrentVersion != e.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = e.Version

	for i := range m.Entries {
		if m.Entries[i].Version == e.Version {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Files returns the files recorded for a version, nil when unknown.
func (m *Manifest) Files(version string) []string {
	for _, e := range m.Entries {
		if e.Version == version {
			return e.Files
		}
	}
	return nil
}

// Diff compares the file contents of two recorded versions. Files missing on
// disk are represented by an empty string so the diff still names them.
func (m *Manifest) Diff(fromVersion, toVersion string) (string, error) {
	from := m.Files(fromVersion)
	to := m.Files(toVersion)
	if from == nil || to == nil {
		return "", fmt.Errorf("versions %q and %q are not both recorded", fromVersion, toVersion)
	}
	return cmp.Diff(contents(from), contents(to)), nil
}

func contents(files []string) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			out[f] = ""
			continue
		}
		out[f] = string(data)
	}
	return out
}
