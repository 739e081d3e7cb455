package classifier

import (
	"regexp"
	"strings"
)

// ChapterType labels what a classified unit is.
type ChapterType string

const (
	// Regular is a numbered narrative chapter.
	Regular ChapterType = "regular"
	// Special is a non-numbered narrative chapter (prologue, interlude...).
	Special ChapterType = "special"
	// Metadata is front or back matter filed separately from narrative.
	Metadata ChapterType = "metadata"
)

// titleRule is one predicate -> label rule. Rules are evaluated top to
// bottom; the first match wins, so precedence is explicit and auditable.
type titleRule struct {
	name  string
	match func(lowerTitle string) bool
	label ChapterType
}

var specialMarkers = []string{
	"prologue", "epilogue", "preface", "introduction", "intermezzo",
	"interlude", "intermission", "aside", "appendix", "ars arcanum",
}

var metadataMarkers = []string{
	"title page", "copyright", "dedication", "acknowledgments",
	"map of", "about the author", "postscript", "newsletter",
	"broadsheet", "part one", "part two", "part three",
	"contents", "table of contents",
}

var numberedChapterRe = regexp.MustCompile(`^chapter\s+\d+$`)

func containsAny(markers []string) func(string) bool {
	return func(title string) bool {
		for _, m := range markers {
			if strings.Contains(title, m) {
				return true
			}
		}
		return false
	}
}

func isNumberedChapter(title string) bool {
	if numberedChapterRe.MatchString(title) {
		return true
	}
	return strings.Contains(title, "chapter") && strings.ContainsAny(title, "0123456789")
}

// titleRules is the ordered decision list for title categorization.
// Unclassifiable titles default to Special: titled entries we cannot
// place are kept as content rather than discarded.
var titleRules = []titleRule{
	{name: "special marker", match: containsAny(specialMarkers), label: Special},
	{name: "numbered chapter", match: isNumberedChapter, label: Regular},
	{name: "metadata marker", match: containsAny(metadataMarkers), label: Metadata},
}

// CategorizeTitle applies the ordered title rules to a candidate title.
func (c *Classifier) CategorizeTitle(title string) ChapterType {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, rule := range titleRules {
		if rule.match(lower) {
			return rule.label
		}
	}
	if containsAny(c.extraMetadataMarkers)(lower) {
		return Metadata
	}
	return Special
}

// isStoryTitle reports whether a TOC title names narrative content.
func (c *Classifier) isStoryTitle(title string) bool {
	t := c.CategorizeTitle(title)
	return t == Regular || t == Special
}

var partNumberRe = regexp.MustCompile(`part\s+\w+`)

// titleOverrides decides whether a newly seen TOC title replaces one
// already recorded for the same unit. A numbered-chapter title strictly
// overrides a "part N" or broadsheet-style title; everything else keeps
// the first-seen entry.
func titleOverrides(newTitle, existingTitle string) bool {
	n := strings.ToLower(newTitle)
	e := strings.ToLower(existingTitle)
	if !isNumberedChapter(n) {
		return false
	}
	return partNumberRe.MatchString(e) || strings.Contains(e, "broadsheet")
}

// Content heuristics for units absent from the TOC.

var filenameSkipList = []string{
	"nav", "toc", "cover", "title", "copyright", "contents", "index",
}

var chapterIndicators = []string{
	"chapter", "prologue", "epilogue", "interlude", "part",
}

// narrativeMarkers is the fixed lexicon whose presence suggests story
// text. The score counts how many distinct markers appear, not total
// occurrences.
var narrativeMarkers = []string{
	`"`, "said", "looked", "walked", "felt", "thought", "knew",
}

func narrativeScore(lowerText string) int {
	score := 0
	for _, m := range narrativeMarkers {
		if strings.Contains(lowerText, m) {
			score++
		}
	}
	return score
}

func hasChapterIndicator(lowerText string) bool {
	for _, ind := range chapterIndicators {
		if strings.Contains(lowerText, ind) {
			return true
		}
	}
	return false
}

func filenameSkipped(sourceID string) bool {
	lower := strings.ToLower(sourceID)
	for _, p := range filenameSkipList {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
