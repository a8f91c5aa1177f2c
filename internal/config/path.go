// Package config loads the rules that drive a cleaning run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RulesFileName is the rules file looked up when none is given.
const RulesFileName = "rules.yaml"

// ExpandPath expands a leading ~ and $VAR references in a path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + strings.TrimPrefix(path, "~")
		}
	}

	return os.ExpandEnv(path)
}

// RulesSearchPaths lists where a rules file is looked for, in order: the
// working directory, $XDG_CONFIG_HOME/sweep, then ~/.config/sweep.
func RulesSearchPaths() []string {
	paths := []string{RulesFileName}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "sweep", RulesFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sweep", RulesFileName))
	}
	return paths
}

// FindRules returns the first existing rules file from RulesSearchPaths,
// or "" when there is none and the built-in rules apply.
func FindRules() (string, error) {
	for _, path := range RulesSearchPaths() {
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", err
		}
	}
	return "", nil
}
