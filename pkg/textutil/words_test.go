package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "whitespace only", input: "  \n\t ", want: 0},
		{name: "simple sentence", input: "The quick brown fox", want: 4},
		{name: "punctuation ignored", input: "Hello, world! How are you?", want: 5},
		{name: "html tags stripped", input: "<p>Hello <b>world</b></p>", want: 2},
		{name: "hyphenated counts as two", input: "well-known fact", want: 3},
		{name: "numbers count", input: "Chapter 12 begins", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.input))
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph.\n\n\n\nThird one."
	paras := SplitParagraphs(text)
	assert.Equal(t, []string{"First paragraph.", "Second paragraph.", "Third one."}, paras)

	assert.Empty(t, SplitParagraphs("   \n\n  "))
	assert.Equal(t, []string{"single"}, SplitParagraphs("single"))
}

func TestStripCommentHeader(t *testing.T) {
	content := "<!-- placeholder -->\nTranslated text here."
	assert.Equal(t, "Translated text here.", StripCommentHeader(content))

	// multi-line comment
	content = "<!--\nsegment 1 of 3\n-->\nBody text."
	assert.Equal(t, "Body text.", StripCommentHeader(content))

	// no header passes through untouched
	assert.Equal(t, "Plain text.", StripCommentHeader("Plain text."))
}

func TestStripHeadingLine(t *testing.T) {
	content := "# Chapter 1\n\nOnce upon a time."
	assert.Equal(t, "Once upon a time.", StripHeadingLine(content))

	assert.Equal(t, "No heading here.", StripHeadingLine("No heading here."))
	assert.Equal(t, "", StripHeadingLine("# Only a heading"))
}

func TestFirstLastWords(t *testing.T) {
	content := "<!-- note -->\nOne two three four five"
	assert.Equal(t, "One two three", FirstWords(content, 3))
	assert.Equal(t, "three four five", LastWords(content, 3))

	assert.Equal(t, "N/A", FirstWords("", 3))
	assert.Equal(t, "N/A", LastWords("<!-- empty -->", 3))

	// fewer words than requested
	assert.Equal(t, "only two", FirstWords("only two", 5))
}

func TestNormalizeBlankLines(t *testing.T) {
	text := "a\n\n\n\nb\n\n\nc"
	assert.Equal(t, "a\n\nb\n\nc", NormalizeBlankLines(text))
}
