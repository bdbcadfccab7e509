package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertAlias checks that alias (relative to the working directory) is a
// link pointing at target. On in-memory filesystems only the stored
// target is compared.
func (env *TestEnvironment) AssertAlias(t *testing.T, alias, target string) {
	t.Helper()

	full := env.Path(alias)
	if env.Type == EnvIsolated {
		info, err := env.FS.Lstat(full)
		require.NoError(t, err, "alias %s should exist", alias)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "alias %s should be a symlink", alias)
	}

	got, err := env.FS.Readlink(full)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(target), filepath.Clean(got), "alias %s target", alias)
}

// AliasEntries returns every entry name under the farm directory
func (env *TestEnvironment) AliasEntries(t *testing.T, prefix string) []string {
	t.Helper()

	entries, err := env.FS.ReadDir(env.Path(prefix))
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
