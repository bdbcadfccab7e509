package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.2.3", Commit: "abc123", Date: "2025-01-01", GoVersion: "go1.24.0", Platform: "linux/amd64"}

	out := info.String()
	assert.Contains(t, out, "jackman version v1.2.3\n")
	assert.Contains(t, out, "commit:   abc123")
	assert.Contains(t, out, "platform: linux/amd64")
}
