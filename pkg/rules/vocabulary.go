package rules

import (
	"fmt"
	"strings"
)

// Vocabulary is the set of tokens the rule table recognises
type Vocabulary struct {
	// FileFlags are exact flags followed by a file path (-c, -o)
	FileFlags []string `koanf:"file_flags" toml:"file_flags" yaml:"file_flags"`

	// DirectoryFlags are flag prefixes followed by a directory, joined
	// or as the next token (-I, -L)
	DirectoryFlags []string `koanf:"directory_flags" toml:"directory_flags" yaml:"directory_flags"`

	// SearchPathPrefixes embed a directory in the same token (-Wl,-rpath,)
	SearchPathPrefixes []string `koanf:"search_path_prefixes" toml:"search_path_prefixes" yaml:"search_path_prefixes"`

	// ResponseFileMarker prefixes response file arguments (@)
	ResponseFileMarker string `koanf:"response_file_marker" toml:"response_file_marker" yaml:"response_file_marker"`

	// ResponseFileExtensions tell response files apart from other marker flags
	ResponseFileExtensions []string `koanf:"response_file_extensions" toml:"response_file_extensions" yaml:"response_file_extensions"`

	// LibraryExtensions identify positional library binaries
	LibraryExtensions []string `koanf:"library_extensions" toml:"library_extensions" yaml:"library_extensions"`

	// IntermediateMarkers are substrings identifying build-system bookkeeping
	IntermediateMarkers []string `koanf:"intermediate_markers" toml:"intermediate_markers" yaml:"intermediate_markers"`

	// DroppableExtensions are the intermediate file types safe to drop
	DroppableExtensions []string `koanf:"droppable_extensions" toml:"droppable_extensions" yaml:"droppable_extensions"`
}

// DefaultVocabulary returns the vocabulary for gcc/clang style tools driven by CMake
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FileFlags:              []string{"-c", "-o"},
		DirectoryFlags:         []string{"-I", "-L"},
		SearchPathPrefixes:     []string{"-Wl,-rpath,"},
		ResponseFileMarker:     "@",
		ResponseFileExtensions: []string{".rsp"},
		LibraryExtensions:      []string{".a", ".so", ".dylib", ".lib"},
		IntermediateMarkers:    []string{"CMakeFiles"},
		DroppableExtensions:    []string{".d", ".o", ".dep"},
	}
}

// Validate checks the vocabulary can drive a rule table
func (v Vocabulary) Validate() error {
	for _, group := range []struct {
		name   string
		values []string
	}{
		{"file_flags", v.FileFlags},
		{"directory_flags", v.DirectoryFlags},
		{"search_path_prefixes", v.SearchPathPrefixes},
		{"response_file_extensions", v.ResponseFileExtensions},
		{"library_extensions", v.LibraryExtensions},
		{"intermediate_markers", v.IntermediateMarkers},
		{"droppable_extensions", v.DroppableExtensions},
	} {
		for _, value := range group.values {
			if value == "" {
				return fmt.Errorf("rules.%s contains an empty entry", group.name)
			}
		}
	}

	for _, flag := range v.DirectoryFlags {
		if len(flag) < 2 {
			return fmt.Errorf("rules.directory_flags entry %q is shorter than two characters", flag)
		}
	}

	for _, ext := range append(append(append([]string{}, v.ResponseFileExtensions...), v.LibraryExtensions...), v.DroppableExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if len([]rune(v.ResponseFileMarker)) > 1 {
		return fmt.Errorf("rules.response_file_marker must be a single character, got %q", v.ResponseFileMarker)
	}

	return nil
}
