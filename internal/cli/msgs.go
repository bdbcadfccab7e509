package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Shorten long paths in compiler and linker command lines"
	MsgFarmShort        = "Inspect the alias farm"
	MsgFarmListShort    = "List aliases and the directories they point at"
	MsgFarmAliasShort   = "Print the alias path for directories"
	MsgFarmResolveShort = "Print the directory an alias points at"
	MsgConfigShort      = "Print the effective configuration"
	MsgVersionShort     = "Print version information"

	// Flags
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagPrefix        = "Alias farm directory (default from config, \"_jackman\")"
	MsgFlagRewriteRSP    = "Rewrite the contents of response files"
	MsgFlagVerifyAliases = "Fail when an existing alias points somewhere unexpected"
	MsgFlagOutput        = "Output format: table or yaml"
	MsgFlagCreate        = "Create the aliases as well"

	// Errors
	MsgErrNoTool        = "no tool specified"
	MsgErrWorkingDir    = "cannot determine working directory: %w"
	MsgErrOutputFormat  = "unknown output format %q"
	MsgErrorPrefix      = "Error: %v"
	MsgNoAliases        = "No aliases in %s\n"
	MsgConfigSourceNone = "# no config file, defaults and environment only\n"
	MsgConfigSource     = "# loaded from %s\n"
)

// MsgRootLong is the long description of the root command
const MsgRootLong = `jackman sits between a build system and a compiler or linker. It finds the
file system paths in the command line, replaces each directory with a short
alias (a symlink in the alias farm pointing back at the real directory) and
runs the tool with the rewritten arguments.

Use it as a compiler launcher:

  cmake -DCMAKE_C_COMPILER_LAUNCHER=jackman -DCMAKE_CXX_COMPILER_LAUNCHER=jackman ..

or call it directly:

  jackman gcc -c very/long/path/to/source.c -o very/long/path/to/source.o

Flags for jackman itself go before the tool name; everything after it is
passed to the tool. Configuration comes from .jackman.toml in the working
directory and JACKMAN_* environment variables.`
