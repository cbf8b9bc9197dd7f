// Package home describes the project root a deck run operates in.
package home

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "deck.yaml"

// Dir represents the project root. Relative document paths are resolved
// against it.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the working directory.
func New(path string) (*Dir, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root %s: %w", path, err)
	}
	return &Dir{path: abs}, nil
}

// Path returns the root path of the project.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// Exists returns true if the project root exists.
func (d *Dir) Exists() bool {
	info, err := os.Stat(d.path)
	return err == nil && info.IsDir()
}

// ConfigExists returns true if the config file exists in the project root.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// Resolve returns p unchanged when absolute, otherwise joined to the
// project root.
func (d *Dir) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.path, p)
}

// Rel returns p relative to the project root when it lies inside it, for
// display.
func (d *Dir) Rel(p string) string {
	rel, err := filepath.Rel(d.path, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}
