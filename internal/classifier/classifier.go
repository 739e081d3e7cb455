// Package classifier decides which raw document units are narrative
// content, and whether each is a regular numbered chapter, a special
// chapter, or separately filed metadata. Decisions follow a fixed
// precedence: TOC titles first, then content heuristics.
package classifier

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/lightsongjs/book-translator/internal/epub"
	"github.com/lightsongjs/book-translator/pkg/log"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

const (
	// units shorter than this after whitespace normalization are
	// boilerplate regardless of any other signal
	minUnitChars = 50

	minNonBlankLines   = 10
	minContentWords    = 200
	strongContentWords = 500
	minNarrativeScore  = 3
)

// Decision is one accepted unit with its classification.
type Decision struct {
	Seq      int
	Unit     epub.Unit
	Type     ChapterType
	Title    string
	TocTitle string
}

// Classifier holds optional tuning applied on top of the fixed rule list.
type Classifier struct {
	extraMetadataMarkers []string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMetadataMarkers adds book-specific metadata marker strings, such as
// author-name lines, to the fixed metadata set.
func WithMetadataMarkers(markers ...string) Option {
	return func(c *Classifier) {
		for _, m := range markers {
			c.extraMetadataMarkers = append(c.extraMetadataMarkers, strings.ToLower(m))
		}
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildTitleMap collapses TOC entries into one title per source id,
// applying the override precedence for units referenced more than once.
func (c *Classifier) BuildTitleMap(entries []epub.TocEntry) map[string]string {
	titles := make(map[string]string, len(entries))
	for _, e := range entries {
		existing, seen := titles[e.SourceID]
		switch {
		case !seen:
			titles[e.SourceID] = e.Title
		case titleOverrides(e.Title, existing):
			log.Debug("TOC title %q overrides %q for %s", e.Title, existing, e.SourceID)
			titles[e.SourceID] = e.Title
		}
	}
	return titles
}

// Classify runs the decision procedure over the ordered unit list and
// returns the accepted units with 1-based sequence numbers in document
// order. Units failing every rule are excluded, never errors.
func (c *Classifier) Classify(units []epub.Unit, toc []epub.TocEntry) []Decision {
	titles := c.BuildTitleMap(toc)

	var decisions []Decision
	seq := 0
	for _, unit := range units {
		text := textutil.NormalizeBlankLines(unit.Text)
		if len(strings.Join(strings.Fields(text), " ")) < minUnitChars {
			continue
		}

		tocTitle := titles[unit.SourceID]
		if tocTitle == "" {
			tocTitle = titles[path.Base(unit.SourceID)]
		}

		var chapterType ChapterType
		var title string
		switch {
		case tocTitle != "" && c.isStoryTitle(tocTitle):
			// TOC-first: a narrative TOC title decides regardless of text
			chapterType = c.CategorizeTitle(tocTitle)
			title = tocTitle
		case c.isLikelyContent(text, unit.SourceID, tocTitle):
			if tocTitle != "" {
				chapterType = c.CategorizeTitle(tocTitle)
				title = tocTitle
			} else {
				title = extractTitleFromContent(text, seq+1)
				chapterType = inferTypeFromContent(text)
			}
		default:
			log.Debug("Skipping unit %s: not content", unit.SourceID)
			continue
		}

		seq++
		decisions = append(decisions, Decision{
			Seq:      seq,
			Unit:     epub.Unit{SourceID: unit.SourceID, Text: text},
			Type:     chapterType,
			Title:    strings.TrimSpace(title),
			TocTitle: tocTitle,
		})
	}

	return decisions
}

// isLikelyContent applies the no-TOC content heuristic: a reasonable
// filename, enough non-blank lines, and at least one of length, narrative
// markers, or an explicit chapter indicator.
func (c *Classifier) isLikelyContent(text, sourceID, tocTitle string) bool {
	if tocTitle == "" && filenameSkipped(sourceID) {
		return false
	}

	nonBlank := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	if nonBlank < minNonBlankLines {
		return false
	}

	wordCount := len(strings.Fields(text))
	if wordCount < minContentWords {
		return false
	}

	lower := strings.ToLower(text)
	return wordCount >= strongContentWords ||
		narrativeScore(lower) >= minNarrativeScore ||
		hasChapterIndicator(lower)
}

var (
	chapterHeadingRe   = regexp.MustCompile(`(?i)^CHAPTER\s+(.+)$`)
	standaloneNumberRe = regexp.MustCompile(`(?i)^(One|Two|Three|Four|Five|Six|Seven|Eight|Nine|Ten|\d+)$`)
)

// extractTitleFromContent looks for a chapter heading in the first lines
// of a unit that has no TOC title.
func extractTitleFromContent(text string, seq int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := chapterHeadingRe.FindStringSubmatch(line); m != nil {
			return "Chapter " + titleCase(strings.TrimSpace(m[1]))
		}
		if standaloneNumberRe.MatchString(line) {
			return "Chapter " + titleCase(line)
		}
	}
	return fmt.Sprintf("Chapter %d", seq)
}

// titleCase uppercases the first rune only; digits pass through unchanged
func titleCase(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}

// inferTypeFromContent guesses a chapter type when no TOC title exists.
func inferTypeFromContent(text string) ChapterType {
	lower := strings.ToLower(text)
	for _, m := range specialMarkers {
		if strings.Contains(lower, m) {
			return Special
		}
	}
	for _, m := range []string{"dedication", "acknowledgment", "about the author"} {
		if strings.Contains(lower, m) {
			return Metadata
		}
	}
	return Regular
}
