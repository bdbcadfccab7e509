// Package alias maps directory paths to short deterministic identifiers and
// maintains the alias farm: a directory of symlinks named after those
// identifiers, each pointing back at the original directory.
//
// Identifiers are derived from the exact bytes of the path as it appeared
// on the command line. No cleaning or resolution happens before hashing, so
// "./foo" and "foo" get different aliases even though they name the same
// directory. Both links are valid; duplicates are harmless.
//
// Several build workers may alias the same directory at the same time.
// Each creates its link under a unique temporary name inside the farm and
// renames it onto the final alias path. Rename is atomic, so every racer
// either installs the link or finds an identical one already in place.
package alias
