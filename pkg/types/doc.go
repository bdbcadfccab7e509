// Package types defines the interfaces shared across jackman's packages,
// most importantly the FS abstraction the alias farm is built on.
package types
