package rules

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/jackman/pkg/errors"
)

// ruleFunc adapts a function to the Rule interface
type ruleFunc struct {
	name string
	fn   func(args []string, i int) (Classification, bool, error)
}

func (r ruleFunc) Name() string { return r.name }

func (r ruleFunc) Match(args []string, i int) (Classification, bool, error) {
	c, ok, err := r.fn(args, i)
	if ok {
		c.Rule = r.name
	}
	return c, ok, err
}

// NewRule creates a Rule from a match function
func NewRule(name string, fn func(args []string, i int) (Classification, bool, error)) Rule {
	return ruleFunc{name: name, fn: fn}
}

// Table builds the ordered rule table for a vocabulary
func Table(v Vocabulary) []Rule {
	return []Rule{
		NewRule("short", matchShort),
		NewRule("file-flag", v.matchFileFlag),
		NewRule("directory-flag", v.matchDirectoryFlag),
		NewRule("search-path", v.matchSearchPath),
		NewRule("response-file", v.matchResponseFile),
		NewRule("marker-flag", v.matchMarkerFlag),
		NewRule("library", v.matchLibrary),
		NewRule("intermediate", v.matchIntermediate),
	}
}

// Classify offers args[i] to each rule in order; the first match wins.
// Tokens no rule claims pass through unchanged.
func Classify(table []Rule, args []string, i int) (Classification, error) {
	for _, rule := range table {
		c, ok, err := rule.Match(args, i)
		if err != nil {
			return Classification{}, err
		}
		if ok {
			return c, nil
		}
	}
	return passthrough("fallback", args[i]), nil
}

func passthrough(rule, token string) Classification {
	return Classification{Kind: Passthrough, Rule: rule, Token: token, Consumed: 1}
}

func matchShort(args []string, i int) (Classification, bool, error) {
	if len(args[i]) >= 2 {
		return Classification{}, false, nil
	}
	return passthrough("", args[i]), true, nil
}

func (v Vocabulary) matchFileFlag(args []string, i int) (Classification, bool, error) {
	token := args[i]
	if !slices.Contains(v.FileFlags, token) {
		return Classification{}, false, nil
	}
	if i+1 >= len(args) || args[i+1] == "" {
		return Classification{Kind: FlagPassthrough, Token: token, Lead: []string{token}, Consumed: 1, Exhausted: true}, true, nil
	}
	return Classification{
		Kind:     FileArgument,
		Token:    token,
		Lead:     []string{token},
		Value:    args[i+1],
		Consumed: 2,
	}, true, nil
}

func (v Vocabulary) matchDirectoryFlag(args []string, i int) (Classification, bool, error) {
	token := args[i]
	for _, flag := range v.DirectoryFlags {
		if !strings.HasPrefix(token, flag) {
			continue
		}
		c := Classification{Kind: DirectoryArgument, Token: token, Lead: []string{flag}}
		switch {
		case len(token) > len(flag):
			c.Value = token[len(flag):]
			c.Consumed = 1
		case i+1 < len(args) && args[i+1] != "":
			c.Value = args[i+1]
			c.Consumed = 2
		default:
			c.Kind = FlagPassthrough
			c.Consumed = 1
			c.Exhausted = true
		}
		return c, true, nil
	}
	return Classification{}, false, nil
}

func (v Vocabulary) matchSearchPath(args []string, i int) (Classification, bool, error) {
	token := args[i]
	for _, prefix := range v.SearchPathPrefixes {
		if !strings.HasPrefix(token, prefix) {
			continue
		}
		return Classification{
			Kind:     DirectoryArgument,
			Token:    token,
			Value:    token[len(prefix):],
			Marker:   prefix,
			Absolute: true,
			Consumed: 1,
		}, true, nil
	}
	return Classification{}, false, nil
}

func (v Vocabulary) matchResponseFile(args []string, i int) (Classification, bool, error) {
	token := args[i]
	if v.ResponseFileMarker == "" || !strings.HasPrefix(token, v.ResponseFileMarker) {
		return Classification{}, false, nil
	}
	if !hasAnySuffix(token, v.ResponseFileExtensions) {
		return Classification{}, false, nil
	}
	return Classification{
		Kind:     ResponseFileArgument,
		Token:    token,
		Value:    token[len(v.ResponseFileMarker):],
		Marker:   v.ResponseFileMarker,
		Consumed: 1,
	}, true, nil
}

func (v Vocabulary) matchMarkerFlag(args []string, i int) (Classification, bool, error) {
	token := args[i]
	if v.ResponseFileMarker == "" || !strings.HasPrefix(token, v.ResponseFileMarker) {
		return Classification{}, false, nil
	}
	return Classification{Kind: FlagPassthrough, Token: token, Consumed: 1}, true, nil
}

func (v Vocabulary) matchLibrary(args []string, i int) (Classification, bool, error) {
	token := args[i]
	if !slices.Contains(v.LibraryExtensions, filepath.Ext(token)) {
		return Classification{}, false, nil
	}
	return Classification{Kind: FileArgument, Token: token, Value: token, Consumed: 1}, true, nil
}

func (v Vocabulary) matchIntermediate(args []string, i int) (Classification, bool, error) {
	token := args[i]
	marker := ""
	for _, m := range v.IntermediateMarkers {
		if strings.Contains(token, m) {
			marker = m
			break
		}
	}
	if marker == "" {
		return Classification{}, false, nil
	}
	ext := filepath.Ext(token)
	if !slices.Contains(v.DroppableExtensions, ext) {
		return Classification{}, false, errors.Newf(errors.ErrUnknownIntermediate,
			"unknown %s file type: %s", marker, token).
			WithDetail("token", token).
			WithDetail("extension", ext)
	}
	return Classification{Kind: Droppable, Token: token, Consumed: 1}, true, nil
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
