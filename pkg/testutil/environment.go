// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Working directory plus filesystem for alias and rewrite tests

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/jackman/pkg/filesystem"
	"github.com/arthur-debert/jackman/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FileTree maps paths relative to the working directory to file contents
type FileTree map[string]string

// TestEnvironment provides a working directory and the filesystem it lives on
type TestEnvironment struct {
	WorkingDir string
	FS         types.FS
	Type       EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.WorkingDir = "/virtual/build"
		env.FS = NewTestFS()
	case EnvIsolated:
		// Resolve symlinked temp roots (macOS /var) so link targets compare equal.
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		env.WorkingDir = dir
		env.FS = filesystem.NewOS()
	}

	require.NoError(t, env.FS.MkdirAll(env.WorkingDir, 0755))
	return env
}

// Path returns rel resolved against the working directory
func (env *TestEnvironment) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(env.WorkingDir, rel)
}

// WithFileTree creates every file in tree, with parent directories
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()

	for rel, content := range tree {
		full := env.Path(rel)
		require.NoError(env.t, env.FS.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(env.t, env.FS.WriteFile(full, []byte(content), 0644))
	}
}

// WithDirs creates the given directories relative to the working directory
func (env *TestEnvironment) WithDirs(dirs ...string) {
	env.t.Helper()

	for _, dir := range dirs {
		require.NoError(env.t, env.FS.MkdirAll(env.Path(dir), 0755))
	}
}

// ReadFile returns the content of rel as a string
func (env *TestEnvironment) ReadFile(rel string) string {
	env.t.Helper()

	data, err := env.FS.ReadFile(env.Path(rel))
	require.NoError(env.t, err)
	return string(data)
}
