package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lightsongjs/book-translator/pkg/file"
)

var (
	chapterNumRe  = regexp.MustCompile(`(?i)chapter\s+(\w+)`)
	seqPrefixRe   = regexp.MustCompile(`^(\d+)_`)
	segSuffixRe   = regexp.MustCompile(`_seg(\d+)_of_(\d+)$`)
	unsafeCharsRe = regexp.MustCompile(`[^\w]+`)
)

// ChapterFilename builds the canonical chapter filename:
// "{seq:02d}_{slug}.md".
func ChapterFilename(seq int, slug string) string {
	return fmt.Sprintf("%02d_%s.md", seq, slug)
}

// SegmentFilename builds the canonical segment filename:
// "{prefix}_seg{index:02d}_of_{count:02d}.md". index == count identifies
// the final segment by name alone.
func SegmentFilename(prefix string, index, count int) string {
	return fmt.Sprintf("%s_seg%02d_of_%02d.md", prefix, index, count)
}

// TranslatedFilename converts a source-side filename to its translated
// counterpart by inserting the language suffix before the extension.
func TranslatedFilename(name, suffix string) string {
	return file.InsertSuffix(name, suffix)
}

// ChapterPrefix strips the extension from a chapter filename, yielding the
// prefix its segment files share.
func ChapterPrefix(chapterFilename string) string {
	return file.Stem(chapterFilename)
}

// SequenceFromFilename extracts the leading sequence number of a chapter
// or segment filename. Returns 0 if the name carries none.
func SequenceFromFilename(name string) int {
	m := seqPrefixRe.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// ParseSegmentName extracts index and count from a segment filename.
// The ok result is false for names that are not segment files.
func ParseSegmentName(name string) (index, count int, ok bool) {
	stem := file.Stem(filepath.Base(name))
	m := segSuffixRe.FindStringSubmatch(stem)
	if m == nil {
		return 0, 0, false
	}
	index, _ = strconv.Atoi(m[1])
	count, _ = strconv.Atoi(m[2])
	return index, count, true
}

// IsFinalSegment reports whether a segment filename names the last segment
// of its chapter (index == count).
func IsFinalSegment(name string) bool {
	index, count, ok := ParseSegmentName(name)
	return ok && index == count
}

// SegmentsMatch reports whether a source segment file and a translated
// segment file describe the same segment: same stem once the language
// suffix is removed.
func SegmentsMatch(sourceName, translatedName, suffix string) bool {
	src := file.Stem(sourceName)
	tgt := strings.TrimSuffix(file.Stem(translatedName), suffix)
	return src != "" && src == tgt
}

// Slug converts a chapter title into a filename-safe descriptive name.
// Numbered chapters become "Chapter_N"; named special chapters keep their
// words joined by underscores.
func Slug(title string) string {
	title = strings.TrimSpace(strings.TrimPrefix(title, "# "))
	if title == "" {
		return "Unknown_Chapter"
	}

	if m := chapterNumRe.FindStringSubmatch(title); m != nil {
		return "Chapter_" + toTitle(m[1])
	}

	slug := unsafeCharsRe.ReplaceAllString(title, "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "Unknown_Chapter"
	}
	return slug
}

// toTitle uppercases only the first rune, leaving digits untouched
func toTitle(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
