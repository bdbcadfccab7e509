// Package rules classifies compiler and linker arguments.
//
// A rule table is an ordered list of matchers built from a Vocabulary (the
// flags, extensions and markers that identify paths). Each token of the
// argument vector is offered to the rules in order and the first match
// wins, producing a Classification:
//
//   - Passthrough: emitted unchanged
//   - FlagPassthrough: a flag emitted unchanged (marker flags, or a path
//     flag whose value is missing)
//   - FileArgument: a file path; its parent directory gets aliased
//   - DirectoryArgument: a directory path aliased as a whole
//   - ResponseFileArgument: a marker-prefixed response file
//   - Droppable: build-system bookkeeping removed from the command line
//
// # Rule Order
//
//  1. short tokens (less than two characters)
//  2. file flags (-c, -o): the next token is a file
//  3. directory flag prefixes (-I, -L): joined or separate directory
//  4. search path prefixes (-Wl,-rpath,): embedded directory, made absolute
//  5. response files (@foo.rsp)
//  6. other marker flags (@anything-else)
//  7. library binaries (.a, .so, .dylib, .lib)
//  8. build intermediates (CMakeFiles): dropped, or fatal when the
//     extension is unknown
//  9. everything else
//
// # Configuration
//
// The vocabulary can be extended from the [rules] table of .jackman.toml:
//
//	[rules]
//	file_flags = ["-c", "-o", "-MF"]
//	library_extensions = [".a", ".so", ".dylib", ".lib", ".tbd"]
package rules
