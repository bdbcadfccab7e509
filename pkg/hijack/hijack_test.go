package hijack

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/jackman/pkg/errors"
	"github.com/arthur-debert/jackman/pkg/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHijacker(t *testing.T, env *testutil.TestEnvironment, modify ...func(*Options)) *Hijacker {
	t.Helper()
	opts := DefaultOptions(env.WorkingDir, "_t")
	for _, m := range modify {
		m(&opts)
	}
	h, err := New(env.FS, opts)
	require.NoError(t, err)
	return h
}

func TestRewriteCompileStep(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	args := []string{"-Wall", "-Wextra", "-c", "foo/bar/baz.c", "-Ipath/to/include", "-o", "myexe"}
	got, err := h.Rewrite(args)
	require.NoError(t, err)

	want := []string{
		"-Wall", "-Wextra",
		"-c", "_t/ad884951a73c822f/baz.c",
		"-I", "_t/b9e95d2b2621ea80",
		"-o", "_t/f01d79cfb6e37084/myexe",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rewrite() mismatch (-want +got):\n%s", diff)
	}

	assert.ElementsMatch(t,
		[]string{"ad884951a73c822f", "b9e95d2b2621ea80", "f01d79cfb6e37084"},
		env.AliasEntries(t, "_t"))
	env.AssertAlias(t, "_t/ad884951a73c822f", env.Path("foo/bar"))
	env.AssertAlias(t, "_t/b9e95d2b2621ea80", env.Path("path/to/include"))
	env.AssertAlias(t, "_t/f01d79cfb6e37084", env.WorkingDir)
}

func TestRewriteSeparateDirectoryFlag(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"-I", "path/to/include", "-Lpath/to/include"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-I", "_t/b9e95d2b2621ea80", "-L", "_t/b9e95d2b2621ea80"}, got)
}

func TestRewriteSearchPath(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"-Wl,-rpath,some/lib/dir"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-Wl,-rpath," + filepath.Join(env.WorkingDir, "_t", "aca8312f493b464e")}, got)
	env.AssertAlias(t, "_t/aca8312f493b464e", env.Path("some/lib/dir"))
}

func TestRewriteUnknownIntermediate(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"-c", "foo/bar/baz.c", "CMakeFiles/app.dir/baz.c.obj"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownIntermediate))
}

func TestRewriteDropsIntermediates(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"-MD", "CMakeFiles/app.dir/main.c.o.d", "-Wall", "CMakeFiles/app.dir/main.c.o"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-MD", "-Wall"}, got)
}

func TestRewriteLibraries(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"foo/bar/libz.a", "CMakeFiles/libdep.so", "-lm"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"_t/ad884951a73c822f/libz.a",
		filepath.Join("_t", "11f0be6312b4a790", "libdep.so"),
		"-lm",
	}, got)
}

func TestRewriteResponseFileWithoutRewrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{"foo.rsp": "foo/bar/a.o\n"})
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"@foo.rsp", "@rpath-thing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"@_t/f01d79cfb6e37084/foo.rsp", "@rpath-thing"}, got)

	assert.Equal(t, "foo/bar/a.o\n", env.ReadFile("foo.rsp"))
	assert.NoFileExists(t, env.Path("_jacked_foo.rsp"))
}

func TestRewriteResponseFileWithRewrite(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WithFileTree(testutil.FileTree{"objs/foo.rsp": "foo/bar/a.o\nfoo/bar/b.o"})
	h := newHijacker(t, env, func(o *Options) { o.RewriteResponseFiles = true })

	got, err := h.Rewrite([]string{"@objs/foo.rsp"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "@"+filepath.Join("_t", "6466e275f9fa86c2", "_jacked_foo.rsp"), got[0])

	assert.Equal(t, "_t/ad884951a73c822f/a.o\n_t/ad884951a73c822f/b.o", env.ReadFile("objs/_jacked_foo.rsp"))
}

func TestRewriteStopsOnMissingValue(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"-Wall", "-o"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-Wall", "-o"}, got)

	got, err = h.Rewrite([]string{"-I"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-I"}, got)
}

func TestRewriteLengthGuard(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env, func(o *Options) { o.MaxArgumentLength = 32 })

	long := "-D" + strings.Repeat("X", 40)
	got, err := h.Rewrite([]string{"-Wall", long})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArgTooLong))
}

func TestRewriteShortensLongPaths(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	deep := strings.Repeat("very-long-directory-name/", 12) + "src"
	env.WithFileTree(testutil.FileTree{deep + "/main.c": "int main(void) { return 0; }\n"})
	h := newHijacker(t, env)

	got, err := h.Rewrite([]string{"-c", deep + "/main.c", "-I" + deep})
	require.NoError(t, err)
	for _, token := range got {
		assert.LessOrEqual(t, len(token), DefaultMaxArgumentLength)
	}
	assert.FileExists(t, env.Path(got[1]))
}

func TestAllIsLazy(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	h := newHijacker(t, env)

	var seen []string
	for token, err := range h.All([]string{"-c", "foo/bar/baz.c", "-o", "out/app"}) {
		require.NoError(t, err)
		seen = append(seen, token)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"-c", "_t/ad884951a73c822f/baz.c"}, seen)
	// Stopping early means the alias for "out" was never created.
	assert.Equal(t, []string{"ad884951a73c822f"}, env.AliasEntries(t, "_t"))
}

func TestNewValidatesOptions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"relative_working_dir", func(o *Options) { o.WorkingDir = "build" }},
		{"short_prefix", func(o *Options) { o.Prefix = "_" }},
		{"bad_digest", func(o *Options) { o.DigestSize = 100 }},
		{"bad_vocabulary", func(o *Options) { o.Vocabulary.DirectoryFlags = []string{"-"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions(env.WorkingDir, "_t")
			tt.modify(&opts)
			_, err := New(env.FS, opts)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		})
	}
}
