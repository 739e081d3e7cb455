package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/lightsongjs/book-translator/internal/config"
)

func defaultConfig() config.ValidateConfig {
	return config.ValidateConfig{
		WordTolerance: 5,
		RatioError:    0.5,
		RatioWarnLow:  0.8,
		RatioWarnHigh: 1.5,
	}
}

func newValidator() *Validator {
	return New(defaultConfig(), language.Romanian)
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("cuvânt ", n))
}

func TestWordsPreserved(t *testing.T) {
	v := newValidator()

	assert.True(t, v.WordsPreserved(1000, 1000))
	assert.True(t, v.WordsPreserved(1000, 995))
	assert.True(t, v.WordsPreserved(995, 1000))
	assert.False(t, v.WordsPreserved(1000, 994))
}

func TestValidateChapter_Empty(t *testing.T) {
	report := newValidator().ValidateChapter(nil)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "no segments")
}

func TestValidateChapter_RatioError(t *testing.T) {
	v := newValidator()

	report := v.ValidateChapter([]SegmentPair{{
		SourceName:     "01_Ch_seg01_of_01.md",
		TranslatedName: "01_Ch_seg01_of_01_ro.md",
		SourceText:     words(100),
		TranslatedText: words(40),
		Final:          true,
	}})

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "too short")
}

func TestValidateChapter_ShortWarningSkipsFinal(t *testing.T) {
	v := newValidator()

	pair := SegmentPair{
		SourceName:     "seg",
		TranslatedName: "seg_ro",
		SourceText:     words(100),
		TranslatedText: words(70),
	}

	// non-final: warning
	report := v.ValidateChapter([]SegmentPair{pair})
	assert.True(t, report.Valid)
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "shorter than expected") {
			found = true
		}
	}
	assert.True(t, found)

	// final: exempt from the short warning, but not from the hard error
	pair.Final = true
	report = v.ValidateChapter([]SegmentPair{pair})
	for _, w := range report.Warnings {
		assert.NotContains(t, w, "shorter than expected")
	}
}

func TestValidateChapter_LongWarning(t *testing.T) {
	v := newValidator()

	report := v.ValidateChapter([]SegmentPair{{
		TranslatedName: "seg_ro",
		SourceText:     words(100),
		TranslatedText: words(350),
		Final:          true,
	}})

	assert.True(t, report.Valid)
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "much longer") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateChapter_IncompleteMarkers(t *testing.T) {
	v := newValidator()

	for _, text := range []string{
		words(100) + "...",
		words(100) + "…",
		words(50) + " [todo] " + words(50),
	} {
		report := v.ValidateChapter([]SegmentPair{{
			TranslatedName: "seg_ro",
			SourceText:     words(100),
			TranslatedText: text,
			Final:          true,
		}})
		found := false
		for _, w := range report.Warnings {
			if strings.Contains(w, "appears incomplete") {
				found = true
			}
		}
		assert.True(t, found, "text %q", text)
	}
}

func TestValidateChapter_PlaceholderHeaderNotContent(t *testing.T) {
	v := newValidator()

	report := v.ValidateChapter([]SegmentPair{{
		TranslatedName: "seg_ro",
		SourceText:     words(100),
		TranslatedText: "<!-- segment 1 of 2 -->",
	}})

	assert.Equal(t, 0, report.Stats.TranslatedSegments)
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w, "Not translated") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateChapter_Stats(t *testing.T) {
	v := newValidator()

	report := v.ValidateChapter([]SegmentPair{
		{
			TranslatedName: "a_ro",
			SourceText:     words(100),
			TranslatedText: words(100),
		},
		{
			TranslatedName: "b_ro",
			SourceText:     words(100),
			TranslatedText: "",
			Final:          true,
		},
	})

	assert.Equal(t, 2, report.Stats.TotalSegments)
	assert.Equal(t, 1, report.Stats.TranslatedSegments)
	assert.InDelta(t, 50.0, report.Stats.CompletionPercent, 0.01)
	assert.Equal(t, 200, report.Stats.TotalSourceWords)
	assert.Equal(t, 100, report.Stats.TotalTranslatedWords)
	assert.InDelta(t, 0.5, report.Stats.OverallRatio, 0.01)
}

func TestEncodingIssues(t *testing.T) {
	v := newValidator()

	issues := v.EncodingIssues("seg_ro.md", "text with � inside", true)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0], "replacement characters")

	// long Romanian text without any diacritics
	plain := strings.Repeat("o traducere lunga fara semne speciale in text ", 5)
	issues = v.EncodingIssues("seg_ro.md", plain, true)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "missing diacritics") {
			found = true
		}
	}
	assert.True(t, found)

	// diacritics present: no complaint
	issues = v.EncodingIssues("seg_ro.md", strings.Repeat("mulțumesc, spuse ea, privind îngândurată ", 5), true)
	for _, issue := range issues {
		assert.NotContains(t, issue, "missing diacritics")
	}

	// source side skips target-language heuristics
	issues = v.EncodingIssues("seg.md", plain, false)
	assert.Empty(t, issues)
}
