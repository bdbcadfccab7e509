// Package rspfile rewrites response files so that every path they list
// goes through the alias farm.
package rspfile

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/jackman/pkg/alias"
	"github.com/arthur-debert/jackman/pkg/errors"
	"github.com/arthur-debert/jackman/pkg/logging"
	"github.com/arthur-debert/jackman/pkg/types"
	"github.com/rs/zerolog"
)

// OutputPrefix is prepended to the base name of rewritten response files
const OutputPrefix = "_jacked_"

// Rewriter writes aliased copies of response files
type Rewriter struct {
	fs     types.FS
	farm   *alias.Farm
	maxLen int
	logger zerolog.Logger
}

// New creates a Rewriter. Relative response file paths are resolved
// against the farm's working directory.
func New(fsys types.FS, farm *alias.Farm, maxLen int) *Rewriter {
	return &Rewriter{
		fs:     fsys,
		farm:   farm,
		maxLen: maxLen,
		logger: logging.GetLogger("rspfile"),
	}
}

// OutputPath returns the path of the rewritten copy of path
func OutputPath(path string) string {
	return filepath.Join(filepath.Dir(path), OutputPrefix+filepath.Base(path))
}

// Rewrite aliases every path listed in the response file at path and
// writes the result next to it. The returned path is in the same form as
// path (relative stays relative) and is not aliased itself.
func (r *Rewriter) Rewrite(path string) (string, error) {
	data, err := r.fs.ReadFile(r.farm.Resolve(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "cannot read response file %s", path)
	}

	var aliased []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rewritten, err := r.farm.EnsureFile(line)
		if err != nil {
			return "", err
		}
		aliased = append(aliased, rewritten)
	}

	outPath := OutputPath(path)
	if err := r.fs.WriteFile(r.farm.Resolve(outPath), []byte(strings.Join(aliased, "\n")), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot write response file %s", outPath)
	}

	for _, line := range aliased {
		if len(line) > r.maxLen {
			return "", errors.Newf(errors.ErrRspLineTooLong,
				"modified response file contains too long filenames even after aliasing, see %s", outPath).
				WithDetail("file", outPath).
				WithDetail("line", line).
				WithDetail("length", len(line)).
				WithDetail("max", r.maxLen)
		}
	}

	r.logger.Debug().
		Str("input", path).
		Str("output", outPath).
		Int("entries", len(aliased)).
		Msg("Response file rewritten")

	return outPath, nil
}
