package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/jackman/pkg/hijack"
	"github.com/arthur-debert/jackman/pkg/logging"
	"github.com/arthur-debert/jackman/pkg/rules"
	"github.com/pelletier/go-toml/v2"
)

// LogFileXDG selects the default log file location
const LogFileXDG = "xdg"

// Config is the effective jackman configuration
type Config struct {
	Prefix            string           `koanf:"prefix" toml:"prefix"`
	RewriteRSP        bool             `koanf:"rewrite_rsp" toml:"rewrite_rsp"`
	RewriteTools      []string         `koanf:"rewrite_tools" toml:"rewrite_tools"`
	MaxArgumentLength int              `koanf:"max_argument_length" toml:"max_argument_length"`
	DigestSize        int              `koanf:"digest_size" toml:"digest_size"`
	VerifyAliases     bool             `koanf:"verify_aliases" toml:"verify_aliases"`
	Verbose           bool             `koanf:"verbose" toml:"verbose"`
	DebugPerf         bool             `koanf:"debug_perf" toml:"debug_perf"`
	LogFile           string           `koanf:"log_file" toml:"log_file"`
	Rules             rules.Vocabulary `koanf:"rules" toml:"rules"`

	// Source is the config file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// Validate checks values that would make the invocation fail later
func (c *Config) Validate() error {
	if len(c.Prefix) < 2 {
		return fmt.Errorf("prefix is too short, got: %q", c.Prefix)
	}
	if c.MaxArgumentLength <= 0 {
		return fmt.Errorf("max_argument_length must be positive, got %d", c.MaxArgumentLength)
	}
	if c.DigestSize < 1 || c.DigestSize > 64 {
		return fmt.Errorf("digest_size must be between 1 and 64, got %d", c.DigestSize)
	}
	return c.Rules.Validate()
}

// RewritesResponseFiles decides whether response files passed to tool get
// their contents rewritten
func (c *Config) RewritesResponseFiles(tool string) bool {
	return c.RewriteRSP || slices.Contains(c.RewriteTools, filepath.Base(tool))
}

// Options builds the per-invocation options for tool running in workingDir
func (c *Config) Options(tool, workingDir string) hijack.Options {
	return hijack.Options{
		WorkingDir:           workingDir,
		Prefix:               c.Prefix,
		RewriteResponseFiles: c.RewritesResponseFiles(tool),
		MaxArgumentLength:    c.MaxArgumentLength,
		DigestSize:           c.DigestSize,
		VerifyAliases:        c.VerifyAliases,
		Vocabulary:           c.Rules,
	}
}

// Verbosity maps the verbose and debug_perf switches to a log verbosity
func (c *Config) Verbosity() int {
	if c.Verbose || c.DebugPerf {
		return 1
	}
	return 0
}

// LogFilePath returns the log file to append to, or "" for none
func (c *Config) LogFilePath() (string, error) {
	if c.LogFile == LogFileXDG {
		return logging.DefaultLogFile()
	}
	return c.LogFile, nil
}

// Dump renders the configuration as TOML
func (c *Config) Dump() ([]byte, error) {
	return toml.Marshal(c)
}
