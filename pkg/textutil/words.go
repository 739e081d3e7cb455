package textutil

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
	wordRe    = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	paraRe    = regexp.MustCompile(`\n\s*\n`)
)

// CountWords counts words in text, ignoring markup and punctuation.
// HTML tags are stripped before counting so that word counts survive
// formatting differences between source and translated files.
func CountWords(text string) int {
	if text == "" {
		return 0
	}
	text = htmlTagRe.ReplaceAllString(text, "")
	return len(wordRe.FindAllString(text, -1))
}

// SplitParagraphs splits text into paragraphs on blank-line boundaries.
// Empty paragraphs are dropped; paragraph order is preserved.
func SplitParagraphs(text string) []string {
	parts := paraRe.Split(strings.TrimSpace(text), -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// NormalizeBlankLines collapses runs of three or more newlines down to a
// single blank line.
func NormalizeBlankLines(text string) string {
	re := regexp.MustCompile(`\n\s*\n\s*\n+`)
	return strings.TrimSpace(re.ReplaceAllString(text, "\n\n"))
}

// StripCommentHeader removes a leading <!-- ... --> block, if present.
// Translated segment files may carry such a header as a placeholder marker;
// it never counts as translation content.
func StripCommentHeader(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimSpace(lines[0]), "<!--") {
		return content
	}
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			return strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		}
	}
	return content
}

// StripHeadingLine removes a leading markdown heading and the blank line
// after it. Chapter files start with such a heading written at extraction
// time; word-count comparisons must exclude it.
func StripHeadingLine(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		if len(lines) > 2 {
			return strings.Join(lines[2:], "\n")
		}
		return ""
	}
	return content
}

// normalizeForPreview strips comment headers and collapses whitespace
func normalizeForPreview(content string) string {
	content = StripCommentHeader(content)
	return strings.Join(strings.Fields(content), " ")
}

// FirstWords returns the first n words of content, ignoring any comment
// header. Returns "N/A" for effectively empty content.
func FirstWords(content string, n int) string {
	cleaned := normalizeForPreview(content)
	if cleaned == "" {
		return "N/A"
	}
	words := strings.Fields(cleaned)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// LastWords returns the last n words of content, ignoring any comment
// header. Returns "N/A" for effectively empty content.
func LastWords(content string, n int) string {
	cleaned := normalizeForPreview(content)
	if cleaned == "" {
		return "N/A"
	}
	words := strings.Fields(cleaned)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}
