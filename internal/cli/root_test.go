//go:build !windows

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/jackman/pkg/filesystem"
	"github.com/arthur-debert/jackman/pkg/launch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	for _, name := range []string{
		"JACKMAN_CONFIG", "JACKMAN_PREFIX", "JACKMAN_REWRITE_RSP", "JACKMAN_REWRITE_TOOLS",
		"JACKMAN_VERBOSE", "JACKMAN_DEBUG_PERF", "JACKMAN_VERIFY_ALIASES", "JACKMAN_LOG_FILE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testApp{
		App: &App{
			WorkingDir: dir,
			FS:         filesystem.NewOS(),
			Launcher:   &launch.Launcher{Stdout: stdout, Stderr: stderr},
		},
		stdout: stdout,
		stderr: stderr,
		dir:    dir,
	}
}

// run executes the root command and returns its error and command output
func (a *testApp) run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd := a.NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWrapRewritesArguments(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run("echo", "-I", "path/to/include", "-Ifoo/bar", "plain")
	require.NoError(t, err)

	assert.Equal(t, 0, app.ExitCode)
	assert.Equal(t, "-I _jackman/b9e95d2b2621ea80 -I _jackman/ad884951a73c822f plain\n", app.stdout.String())

	target, err := os.Readlink(filepath.Join(app.dir, "_jackman", "ad884951a73c822f"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app.dir, "foo/bar"), target)
}

func TestWrapVerboseLines(t *testing.T) {
	app := newTestApp(t)
	t.Setenv("JACKMAN_VERBOSE", "1")
	t.Setenv("JACKMAN_DEBUG_PERF", "1")

	out, err := app.run("echo", "-Ifoo/bar")
	require.NoError(t, err)

	assert.Contains(t, out, ">>> [jackman] REWRITE: echo -I _jackman/ad884951a73c822f\n")
	assert.Regexp(t, `>>> \[jackman\] PERF: \d+\.\d{2} ms\n`, out)
}

func TestWrapRunsInWorkingDir(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run("pwd")
	require.NoError(t, err)
	assert.Equal(t, app.dir+"\n", app.stdout.String())
}

func TestWrapPropagatesExitCode(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run("false")
	require.NoError(t, err)
	assert.Equal(t, 1, app.ExitCode)
}

func TestWrapFlagsBeforeTool(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run("--prefix", "_short", "echo", "-Lsome/lib/dir", "-v")
	require.NoError(t, err)
	assert.Equal(t, "-L _short/aca8312f493b464e -v\n", app.stdout.String())
}

func TestWrapNoTool(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgErrNoTool)
}

func TestWrapUnknownIntermediate(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run("echo", "CMakeFiles/thing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNKNOWN_INTERMEDIATE")
	assert.Empty(t, app.stdout.String(), "tool must not run")
}

func TestWrapMissingTool(t *testing.T) {
	app := newTestApp(t)

	_, err := app.run("jackman-no-such-tool-here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAUNCH")
}

func TestExecuteReportsErrors(t *testing.T) {
	app := newTestApp(t)

	code := app.Execute(context.Background(), []string{"echo", "CMakeFiles/thing.txt"})
	assert.Equal(t, 1, code)

	code = app.Execute(context.Background(), []string{"false"})
	assert.Equal(t, 1, code)
}

func TestFarmCommands(t *testing.T) {
	app := newTestApp(t)

	out, err := app.run("farm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No aliases in")

	out, err = app.run("farm", "alias", "foo/bar")
	require.NoError(t, err)
	assert.Equal(t, "_jackman/ad884951a73c822f\n", out)
	_, err = os.Lstat(filepath.Join(app.dir, "_jackman"))
	assert.True(t, os.IsNotExist(err), "alias without --create must not touch the farm")

	out, err = app.run("farm", "alias", "--create", "foo/bar", ".")
	require.NoError(t, err)
	assert.Equal(t, "_jackman/ad884951a73c822f\n_jackman/f01d79cfb6e37084\n", out)

	out, err = app.run("farm", "resolve", "ad884951a73c822f")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(app.dir, "foo/bar")+"\n", out)

	out, err = app.run("farm", "list", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: ad884951a73c822f")
	assert.Contains(t, out, "id: f01d79cfb6e37084")
	assert.Contains(t, out, "target: "+app.dir+"\n")

	out, err = app.run("farm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ALIAS")
	assert.Contains(t, out, filepath.Join(app.dir, "foo/bar"))

	_, err = app.run("farm", "list", "-o", "json")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.dir, ".jackman.toml"), []byte("prefix = \"_from_file\"\n"), 0644))

	out, err := app.run("config", "--rewrite-rsp")
	require.NoError(t, err)

	lines := strings.SplitN(out, "\n", 2)
	assert.Equal(t, "# loaded from "+filepath.Join(app.dir, ".jackman.toml"), lines[0])
	assert.Contains(t, out, "_from_file")
	assert.Contains(t, out, "rewrite_rsp = true")
}

func TestVersionCommand(t *testing.T) {
	app := newTestApp(t)

	out, err := app.run("version")
	require.NoError(t, err)
	assert.Contains(t, out, "jackman version ")
	assert.Contains(t, out, "platform:")
}
