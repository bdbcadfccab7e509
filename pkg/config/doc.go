// Package config loads jackman's configuration.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the config file: $JACKMAN_CONFIG, or .jackman.toml in the working directory
//  3. JACKMAN_* environment variables (JACKMAN_PREFIX, JACKMAN_REWRITE_RSP, ...)
//  4. command-line overrides
//
// The resulting Config is turned into hijack.Options once per invocation;
// nothing below this package reads the environment.
package config
