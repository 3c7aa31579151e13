package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      string
		corrected bool
	}{
		{"known misspelling", "blockchain baisce", "Blockchain Basics", true},
		{"already canonical", "Linear Algebra", "Linear Algebra", false},
		{"case only is not a correction", "linear algebra", "Linear Algebra", false},
		{"extra whitespace is collapsed", "  linear   algebra ", "Linear Algebra", false},
		{"misspelled language", "learn pyhton", "Learn Python", true},
		{"two fixes in one topic", "javscript devlopment", "Javascript Development", true},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got.Topic)
			assert.Equal(t, tt.corrected, got.Corrected)
		})
	}
}

func TestNormalize_SubstringMatchInsideWord(t *testing.T) {
	// Fragments match anywhere in the lowercased topic.
	got := Normalize("advanced statistcsology")
	assert.Equal(t, "Advanced Statisticsology", got.Topic)
	assert.True(t, got.Corrected)
}
