// Package configutil reads json5 configuration files and layers local
// overrides on top of them.
package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func readInto[T any](path string, out *T) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json5.Unmarshal(contents, out); err != nil {
		return fmt.Errorf("parse '%s': %w", path, err)
	}
	return nil
}

// ReadConfig reads the config file at path. If a sibling file with a
// ".local" suffix before the extension exists (config.local.json5 next
// to config.json5), its values override the base file.
func ReadConfig[T any](path string) (T, error) {
	var base T
	if err := readInto(path, &base); err != nil {
		return base, err
	}

	var local T
	err := readInto(localPath(path), &local)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}

	slog.Info("merging local config override", "path", localPath(path))
	if err := mergo.Merge(&base, local, mergo.WithOverride); err != nil {
		return base, err
	}
	return base, nil
}

// ReadRecursively looks for the named config file in the working
// directory and then in each parent directory, reading the first one
// found. It returns os.ErrNotExist when no directory has the file.
func ReadRecursively[T any](name string) (T, error) {
	var out T
	cwd, err := os.Getwd()
	if err != nil {
		return out, err
	}
	current := cwd
	for {
		path := filepath.Join(current, name)
		if _, err := os.Stat(path); err == nil {
			return ReadConfig[T](path)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return out, fmt.Errorf("find '%s' from '%s': %w", name, cwd, os.ErrNotExist)
		}
		current = parent
	}
}
