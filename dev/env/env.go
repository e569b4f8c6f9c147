// Package devenv locates the workspace and its development state
// directory, and loads optional per-developer configuration out of it.
package devenv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/titanous/json5"
)

var moduleNameRegex = regexp.MustCompile(`(?m)^module *([\w\-_/.]+)$`)

// GetWorkspaceRoot walks upward from the working directory until it
// finds the go.mod belonging to this module and returns its directory.
func GetWorkspaceRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	current := cwd
	for {
		gomod, err := os.ReadFile(filepath.Join(current, "go.mod"))
		if err == nil {
			matches := moduleNameRegex.FindSubmatch(gomod)
			if len(matches) >= 2 && string(matches[1]) == "headlinewatch" {
				return current, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("could not find workspace root from '%s'", cwd)
		}
		current = parent
	}
}

// GetStateDir returns the development state directory, creating it if
// necessary.
func GetStateDir() (string, error) {
	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "dev", ".state")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func GetStateFilePath(name string) (string, error) {
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GetStateConfig reads a json5 config file from the state directory.
// Callers should treat os.ErrNotExist as "not configured".
func GetStateConfig[T any](name string) (T, error) {
	var out T
	path, err := GetStateFilePath(name)
	if err != nil {
		return out, err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, fmt.Errorf("parse '%s': %w", path, err)
	}
	return out, nil
}

// ResolvePath expands the <dev_state> prefix to the state directory so
// config files can point at per-developer scratch locations.
func ResolvePath(path string) (string, error) {
	const prefix = "<dev_state>"
	if !strings.HasPrefix(path, prefix) {
		return path, nil
	}
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, strings.TrimPrefix(path, prefix)), nil
}
