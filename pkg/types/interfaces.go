package types

import (
	"io/fs"
)

// FS defines the filesystem operations the alias farm and the response-file
// rewriter rely on.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Rename must be atomic on the target filesystem; racing alias creators
	// depend on it.
	Rename(oldpath, newpath string) error

	// Other operations
	Remove(name string) error

	// Lstat must not follow symlinks. Implementations without symlink
	// support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}
