// Package filesystem provides filesystem implementations for jackman.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used at runtime and an afero-backed filesystem that
// can wrap in-memory filesystems for tests.
package filesystem
