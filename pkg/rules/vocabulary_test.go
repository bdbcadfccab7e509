package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultVocabularyIsValid(t *testing.T) {
	assert.NoError(t, DefaultVocabulary().Validate())
}

func TestVocabularyValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(v *Vocabulary)
	}{
		{"empty_file_flag", func(v *Vocabulary) { v.FileFlags = []string{""} }},
		{"short_directory_flag", func(v *Vocabulary) { v.DirectoryFlags = []string{"-"} }},
		{"extension_without_dot", func(v *Vocabulary) { v.LibraryExtensions = []string{"so"} }},
		{"long_marker", func(v *Vocabulary) { v.ResponseFileMarker = "@@" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultVocabulary()
			tt.modify(&v)
			assert.Error(t, v.Validate())
		})
	}
}
