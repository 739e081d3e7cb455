// Package validator reports on translation completeness and integrity.
// It compares source segments against their translated counterparts and
// flags loss, omission, and suspicious length ratios. It never mutates
// segments or ledger state; callers decide what to do with the report.
package validator

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"github.com/lightsongjs/book-translator/internal/config"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// SegmentPair couples one source segment with its translated counterpart.
// TranslatedText may be empty when the translation does not exist yet.
type SegmentPair struct {
	SourceName     string
	TranslatedName string
	SourceText     string
	TranslatedText string
	Final          bool
}

// Stats aggregates a chapter's translation progress.
type Stats struct {
	TotalSegments        int
	TranslatedSegments   int
	CompletionPercent    float64
	TotalSourceWords     int
	TotalTranslatedWords int
	OverallRatio         float64
}

// Report is the outcome of validating one chapter.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Stats    Stats
}

// Validator checks translated content against configured thresholds.
type Validator struct {
	cfg    config.ValidateConfig
	target language.Tag
}

// New creates a Validator for the given target language.
func New(cfg config.ValidateConfig, target language.Tag) *Validator {
	return &Validator{cfg: cfg, target: target}
}

// WordsPreserved reports whether two word counts agree within the
// configured tolerance. The tolerance absorbs whitespace and markup
// differences in counting, not actual loss.
func (v *Validator) WordsPreserved(originalWords, segmentWords int) bool {
	diff := originalWords - segmentWords
	if diff < 0 {
		diff = -diff
	}
	return diff <= v.cfg.WordTolerance
}

// ValidateChapter computes the completion and quality report for one
// chapter's segment pairs.
func (v *Validator) ValidateChapter(pairs []SegmentPair) *Report {
	report := &Report{Valid: true}

	if len(pairs) == 0 {
		report.Valid = false
		report.Errors = append(report.Errors, "no segments found")
		return report
	}

	for _, pair := range pairs {
		report.Stats.TotalSegments++

		srcWords := textutil.CountWords(pair.SourceText)
		report.Stats.TotalSourceWords += srcWords

		if issues := v.EncodingIssues(pair.SourceName, pair.SourceText, false); len(issues) > 0 {
			report.Warnings = append(report.Warnings, issues...)
		}

		translated := textutil.StripCommentHeader(pair.TranslatedText)
		words := textutil.CountWords(translated)
		if words == 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: Not translated", pair.TranslatedName))
			continue
		}

		report.Stats.TranslatedSegments++
		report.Stats.TotalTranslatedWords += words

		if issues := v.EncodingIssues(pair.TranslatedName, translated, true); len(issues) > 0 {
			report.Warnings = append(report.Warnings, issues...)
		}

		ratio := 0.0
		if srcWords > 0 {
			ratio = float64(words) / float64(srcWords)
		}

		switch {
		case ratio < v.cfg.RatioError:
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: Translation too short (ratio: %.2f)", pair.TranslatedName, ratio))
			report.Valid = false
		case ratio < v.cfg.RatioWarnLow && !pair.Final:
			// final segments carry whatever is left over, often little
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: Translation shorter than expected (ratio: %.2f)", pair.TranslatedName, ratio))
		case ratio > v.cfg.RatioWarnHigh*2:
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: Translation much longer than expected (ratio: %.2f)", pair.TranslatedName, ratio))
		}

		if LooksIncomplete(translated) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s: Translation appears incomplete", pair.TranslatedName))
		}
	}

	report.Stats.CompletionPercent =
		float64(report.Stats.TranslatedSegments) / float64(report.Stats.TotalSegments) * 100
	if report.Stats.TotalSourceWords > 0 {
		report.Stats.OverallRatio =
			float64(report.Stats.TotalTranslatedWords) / float64(report.Stats.TotalSourceWords)
	}

	return report
}

// LooksIncomplete detects translations that trail off or carry explicit
// todo markers.
func LooksIncomplete(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "...") || strings.HasSuffix(trimmed, "…") {
		return true
	}
	return strings.Contains(strings.ToUpper(trimmed), "[TODO]")
}

// romanianDiacritics is the character set expected in any substantial
// Romanian text; its total absence signals an encoding problem upstream.
var romanianDiacritics = []rune("ăâîșțĂÂÎȘȚ")

// EncodingIssues inspects content for encoding anomalies. For
// translated-side content it additionally applies target-language
// heuristics: missing diacritics and a language-detection sanity check.
func (v *Validator) EncodingIssues(name, content string, translatedSide bool) []string {
	var issues []string

	if strings.ContainsRune(content, '�') {
		issues = append(issues,
			fmt.Sprintf("%s: Contains Unicode replacement characters (encoding issue)", name))
	}

	if !translatedSide || len(content) <= 100 {
		return issues
	}

	base, _ := v.target.Base()
	if base.String() == "ro" && !containsAnyRune(content, romanianDiacritics) {
		issues = append(issues,
			fmt.Sprintf("%s: Romanian file missing diacritics (possible encoding issue)", name))
	}

	info := whatlanggo.Detect(content)
	if info.IsReliable() && info.Lang.Iso6391() != "" &&
		info.Lang.Iso6391() != base.String() {
		issues = append(issues,
			fmt.Sprintf("%s: Detected language %q, expected %q", name, info.Lang.Iso6391(), base.String()))
	}

	return issues
}

func containsAnyRune(s string, runes []rune) bool {
	for _, r := range runes {
		if strings.ContainsRune(s, r) {
			return true
		}
	}
	return false
}
