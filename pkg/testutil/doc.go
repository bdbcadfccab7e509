// Package testutil provides utilities for testing jackman components.
//
// Key components:
//   - TestEnvironment: a working directory plus filesystem, either in memory
//     or on a real temp directory
//   - FileTree: declarative setup of files relative to the working directory
//   - AssertAlias: checks a farm entry is a link to the expected target
//
// Usage guidelines:
//   - Tests that need real symlinks or rename atomicity use EnvIsolated
//   - Response-file and classification tests can use EnvMemoryOnly
package testutil
