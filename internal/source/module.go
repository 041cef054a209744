package source

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModulePath walks up from dir until it finds go.mod and returns the module
// path together with the module root directory.
func ModulePath(dir string) (module string, root string, err error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		modFile := filepath.Join(from, "go.mod")
		if _, statErr := os.Stat(modFile); statErr == nil {
			data, readErr := os.ReadFile(modFile)
			if readErr != nil {
				return "", "", fmt.Errorf("read %s: %w", modFile, readErr)
			}
			mf, parseErr := modfile.Parse("go.mod", data, nil)
			if parseErr != nil {
				return "", "", fmt.Errorf("parse %s: %w", modFile, parseErr)
			}
			return mf.Module.Mod.Path, from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", "", fmt.Errorf("no go.mod found above %s", dir)
		}
		from = parent
	}
}

// ImportPathFor derives the import path of dir from the enclosing module.
func ImportPathFor(dir string) (string, error) {
	module, root, err := ModulePath(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return module, nil
	}
	return module + "/" + filepath.ToSlash(rel), nil
}
