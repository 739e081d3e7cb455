package stats

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightsongjs/book-translator/internal/config"
	"github.com/lightsongjs/book-translator/internal/validator"
)

var thresholds = config.ValidateConfig{
	WordTolerance: 5,
	RatioError:    0.5,
	RatioWarnLow:  0.8,
	RatioWarnHigh: 1.5,
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("cuvânt ", n))
}

func TestBuildRows_Statuses(t *testing.T) {
	pairs := []validator.SegmentPair{
		{SourceName: "a_seg01_of_05.md", SourceText: words(100), TranslatedText: ""},
		{SourceName: "a_seg02_of_05.md", SourceText: words(100), TranslatedText: words(40) + "..."},
		{SourceName: "a_seg03_of_05.md", SourceText: words(100), TranslatedText: words(60)},
		{SourceName: "a_seg04_of_05.md", SourceText: words(100), TranslatedText: words(400)},
		{SourceName: "a_seg05_of_05.md", SourceText: words(100), TranslatedText: words(30), Final: true},
	}

	rows := BuildRows(pairs, thresholds)
	require.Len(t, rows, 5)
	assert.Equal(t, StatusNotTranslated, rows[0].Status)
	assert.Equal(t, StatusIncomplete, rows[1].Status)
	assert.Equal(t, StatusWarningShort, rows[2].Status)
	assert.Equal(t, StatusWarningLong, rows[3].Status)
	assert.Equal(t, StatusOKSmallFinal, rows[4].Status)
}

func TestBuildRows_OKAndCommentHeader(t *testing.T) {
	pairs := []validator.SegmentPair{
		{
			SourceName:     "a_seg01_of_01.md",
			SourceText:     words(100),
			TranslatedText: "<!-- placeholder header -->\n" + words(95),
			Final:          true,
		},
	}

	rows := BuildRows(pairs, thresholds)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusOK, rows[0].Status)
	assert.Equal(t, 95, rows[0].TranslatedWords)
	assert.InDelta(t, 0.95, rows[0].Ratio, 0.001)
	assert.True(t, rows[0].Final)
}

func TestWriteChapterCSV(t *testing.T) {
	dir := t.TempDir()
	rows := []Row{
		{Segment: "a_seg01_of_02.md", SourceWords: 100, TranslatedWords: 90, Ratio: 0.9, Status: StatusOK},
		{Segment: "a_seg02_of_02.md", SourceWords: 50, TranslatedWords: 0, Final: true, Status: StatusNotTranslated, Notes: "no translation"},
	}

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	path, err := WriteChapterCSV(dir, 7, rows, now)
	require.NoError(t, err)
	assert.Equal(t, "Chapter_07_Statistics_20260314_150926.csv", strings.TrimPrefix(path, dir+"/"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "Segment", records[0][0])
	assert.Equal(t, "a_seg01_of_02.md", records[1][0])
	assert.Equal(t, "OK", records[1][7])
	assert.Equal(t, "NOT_TRANSLATED", records[2][7])

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "TOTAL_SEGMENTS,2")
	assert.Contains(t, string(content), "TRANSLATED_SEGMENTS,1")
	assert.Contains(t, string(content), "COMPLETION_PERCENT,50.0")
	assert.Contains(t, string(content), "OVERALL_RATIO,0.60")
}
