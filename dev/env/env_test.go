package devenv

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePathPassthrough(t *testing.T) {
	path, err := ResolvePath("results/history.db")
	require.NoError(t, err)
	require.Equal(t, "results/history.db", path)
}

func TestResolvePathState(t *testing.T) {
	state, err := StateDir()
	require.NoError(t, err)

	path, err := ResolvePath("<dev_state>/resty/evaluate")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(state, "resty", "evaluate"), path)
	require.True(t, strings.HasPrefix(path, state))
}

func TestWorkspaceRoot(t *testing.T) {
	root, err := GetWorkspaceRoot()
	require.NoError(t, err)
	require.True(t, isWorkspaceRoot(root))
}
