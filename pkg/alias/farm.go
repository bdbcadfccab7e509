package alias

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/arthur-debert/jackman/pkg/errors"
	"github.com/arthur-debert/jackman/pkg/logging"
	"github.com/arthur-debert/jackman/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const tempSuffix = ".tmp"

// FarmOptions configures a Farm
type FarmOptions struct {
	// WorkingDir is the absolute directory relative paths are resolved against
	WorkingDir string

	// Prefix is the farm directory, relative to WorkingDir unless absolute
	Prefix string

	// Namer derives identifiers; ForDirectory when nil
	Namer Namer

	// Verify makes Ensure check that an existing alias points at the
	// expected target instead of trusting it
	Verify bool
}

// Farm creates and looks up aliases under a prefix directory
type Farm struct {
	fs         types.FS
	workingDir string
	prefix     string
	namer      Namer
	verify     bool
	logger     zerolog.Logger
}

// Entry is one alias found in the farm
type Entry struct {
	ID     string `yaml:"id"`
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
}

// NewFarm creates a Farm on the given filesystem
func NewFarm(fsys types.FS, opts FarmOptions) *Farm {
	namer := opts.Namer
	if namer == nil {
		namer = ForDirectory
	}
	return &Farm{
		fs:         fsys,
		workingDir: opts.WorkingDir,
		prefix:     filepath.Clean(opts.Prefix),
		namer:      namer,
		verify:     opts.Verify,
		logger:     logging.GetLogger("alias"),
	}
}

// Resolve makes p absolute against the working directory
func (f *Farm) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(f.workingDir, p)
}

// Root returns the absolute farm directory
func (f *Farm) Root() string {
	return f.Resolve(f.prefix)
}

// AliasPath returns the alias path for dir without touching the filesystem.
// The result is relative when the prefix is.
func (f *Farm) AliasPath(dir string) string {
	return filepath.Join(f.prefix, f.namer(dir))
}

// Ensure makes sure the alias for dir exists and returns its path.
// An entry already present at the alias path is reused as is.
func (f *Farm) Ensure(dir string) (string, error) {
	id := f.namer(dir)
	aliasPath := filepath.Join(f.prefix, id)
	target := f.Resolve(dir)
	final := f.Resolve(aliasPath)

	if _, err := f.fs.Lstat(final); err == nil {
		if f.verify {
			if err := f.checkTarget(final, target); err != nil {
				return "", err
			}
		}
		return aliasPath, nil
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot inspect alias %s", final)
	}

	if err := f.ensureRoot(); err != nil {
		return "", err
	}

	tmp := filepath.Join(f.Root(), "."+id+"."+uuid.NewString()+tempSuffix)
	if err := f.fs.Symlink(target, tmp); err != nil {
		return "", errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot create alias for %s", dir).
			WithDetail("target", target).
			WithDetail("link", tmp)
	}

	if err := f.fs.Rename(tmp, final); err != nil {
		_ = f.fs.Remove(tmp)
		if !alreadyExists(err) {
			return "", errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot install alias %s", final).
				WithDetail("target", target)
		}
		f.logger.Trace().Str("alias", final).Msg("Alias installed by another process")
	}

	f.logger.Debug().
		Str("dir", dir).
		Str("alias", aliasPath).
		Str("target", target).
		Msg("Alias created")

	return aliasPath, nil
}

// EnsureFile aliases the parent directory of file and returns the aliased
// file path, keeping the file name.
func (f *Farm) EnsureFile(file string) (string, error) {
	aliasDir, err := f.Ensure(filepath.Dir(file))
	if err != nil {
		return "", err
	}
	return filepath.Join(aliasDir, filepath.Base(file)), nil
}

// Lookup returns the target an existing alias points at. The argument may
// be an identifier or an alias path.
func (f *Farm) Lookup(alias string) (string, error) {
	name := filepath.Base(alias)
	return f.fs.Readlink(filepath.Join(f.Root(), name))
}

// Entries lists the aliases in the farm sorted by identifier.
// Temporary links left by interrupted racers are skipped.
func (f *Farm) Entries() ([]Entry, error) {
	dirEntries, err := f.fs.ReadDir(f.Root())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "cannot read alias farm %s", f.Root())
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		target, err := f.fs.Readlink(filepath.Join(f.Root(), name))
		if err != nil {
			f.logger.Warn().Err(err).Str("entry", name).Msg("Skipping non-link entry in alias farm")
			continue
		}
		entries = append(entries, Entry{
			ID:     name,
			Path:   filepath.Join(f.prefix, name),
			Target: target,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// ensureRoot creates the farm directory. It runs only when an alias is
// missing, and may be called from several goroutines sharing the Farm.
func (f *Farm) ensureRoot() error {
	if err := f.fs.MkdirAll(f.Root(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create alias farm %s", f.Root())
	}
	return nil
}

func (f *Farm) checkTarget(final, want string) error {
	got, err := f.fs.Readlink(final)
	if err != nil {
		return errors.Wrapf(err, errors.ErrAliasConflict, "alias %s is not a symlink", final).
			WithDetail("expected", want)
	}
	if filepath.Clean(got) != want {
		return errors.Newf(errors.ErrAliasConflict, "alias %s points at %s, expected %s", final, got, want).
			WithDetail("actual", got).
			WithDetail("expected", want)
	}
	return nil
}

// alreadyExists reports whether a rename failed only because another
// racer installed the alias first.
func alreadyExists(err error) bool {
	return stderrors.Is(err, fs.ErrExist) || stderrors.Is(err, syscall.ENOTEMPTY)
}
