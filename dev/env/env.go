package devenv

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// StatePlaceholder is the path prefix that ResolvePath substitutes with the
// state directory.
const StatePlaceholder = "<dev_state>"

var modName = regexp.MustCompile(`(?m)^module *([\w\-_./]+)$`)

func isWorkspaceRoot(currentdir string) bool {
	mod, err := os.ReadFile(filepath.Join(currentdir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == "roeval"
}

// GetWorkspaceRoot searches up from the working directory for the
// repository root.
func GetWorkspaceRoot() (string, error) {
	currentdir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs("/")
	if err != nil {
		return "", err
	}

	for currentdir != root {
		if isWorkspaceRoot(currentdir) {
			return currentdir, nil
		}
		currentdir = filepath.Dir(currentdir)
	}
	return "", os.ErrNotExist
}

// StateDir returns the directory backing <dev_state>, `dev/.state` when run
// inside the repository and `<user config dir>/roeval` otherwise.
func StateDir() (string, error) {
	root, err := GetWorkspaceRoot()
	if err == nil {
		return filepath.Join(root, "dev", ".state"), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "roeval"), nil
}

// ResolvePath replaces a leading <dev_state> in path with StateDir, creating
// the state directory if necessary. other paths are returned unchanged.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, StatePlaceholder) {
		return path, nil
	}

	state, err := StateDir()
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(state, 0777)
	if err != nil {
		return "", err
	}

	subpath := strings.TrimLeft(strings.TrimPrefix(path, StatePlaceholder), `/\`)
	return filepath.Join(state, filepath.FromSlash(subpath)), nil
}
