// Package state centralizes filesystem locations for perfhar's own files.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeDirEnv overrides the default root.
	HomeDirEnv = "PERFHAR_HOME"

	xdgConfigHomeEnv = "XDG_CONFIG_HOME"
	appName          = "perfhar"
	legacyDirName    = ".perfhar"
)

// RootDir returns the directory holding perfhar's global files.
// Resolution order:
//  1. PERFHAR_HOME (if set)
//  2. XDG_CONFIG_HOME/perfhar (if XDG_CONFIG_HOME is set)
//  3. ~/.perfhar
func RootDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(HomeDirEnv)); override != "" {
		return normalizePath(override)
	}

	if xdg := strings.TrimSpace(os.Getenv(xdgConfigHomeEnv)); xdg != "" {
		root, err := normalizePath(xdg)
		if err != nil {
			return "", err
		}
		return filepath.Join(root, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, legacyDirName), nil
}

// GlobalConfigFile returns the path of the user-wide config file.
func GlobalConfigFile() (string, error) {
	return InRoot("config.yaml")
}

// InRoot returns a path rooted under RootDir with additional path elements.
func InRoot(parts ...string) (string, error) {
	root, err := RootDir()
	if err != nil {
		return "", err
	}
	all := make([]string, 0, len(parts)+1)
	all = append(all, root)
	all = append(all, parts...)
	return filepath.Join(all...), nil
}

func normalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	return filepath.Clean(absPath), nil
}
