// Package stats exports per-segment translation statistics as CSV
// reports, one file per chapter, for review outside the tool.
package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lightsongjs/book-translator/internal/config"
	"github.com/lightsongjs/book-translator/internal/validator"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// Segment status labels, ordered from worst to best. A segment gets the
// first label that applies.
const (
	StatusNotTranslated = "NOT_TRANSLATED"
	StatusIncomplete    = "ERROR_INCOMPLETE"
	StatusWarningShort  = "WARNING_SHORT"
	StatusWarningLong   = "WARNING_LONG"
	StatusOKSmallFinal  = "OK_SMALL_FINAL"
	StatusOK            = "OK"
)

// Row is the per-segment line of a chapter report.
type Row struct {
	Segment         string
	SourceWords     int
	SourceChars     int
	TranslatedWords int
	TranslatedChars int
	Ratio           float64
	Final           bool
	Status          string
	Notes           string
}

// BuildRows derives a report row per segment pair, using the validate
// ratio thresholds. Small final segments are reported as a distinct OK
// status rather than a warning.
func BuildRows(pairs []validator.SegmentPair, cfg config.ValidateConfig) []Row {
	rows := make([]Row, 0, len(pairs))
	for _, pair := range pairs {
		source := strings.TrimSpace(pair.SourceText)
		translated := strings.TrimSpace(textutil.StripCommentHeader(pair.TranslatedText))

		row := Row{
			Segment:         pair.SourceName,
			SourceWords:     textutil.CountWords(source),
			SourceChars:     len(source),
			TranslatedWords: textutil.CountWords(translated),
			TranslatedChars: len(translated),
			Final:           pair.Final,
		}
		if row.SourceWords > 0 {
			row.Ratio = float64(row.TranslatedWords) / float64(row.SourceWords)
		}

		switch {
		case row.TranslatedWords == 0:
			row.Status = StatusNotTranslated
			row.Notes = "no translation"
		case validator.LooksIncomplete(translated):
			row.Status = StatusIncomplete
			row.Notes = "trails off or carries a todo marker"
		case row.Ratio < cfg.RatioWarnLow && pair.Final:
			row.Status = StatusOKSmallFinal
		case row.Ratio < cfg.RatioWarnLow:
			row.Status = StatusWarningShort
			row.Notes = "short against the source"
		case row.Ratio > cfg.RatioWarnHigh*2:
			row.Status = StatusWarningLong
			row.Notes = "much longer than the source"
		default:
			row.Status = StatusOK
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteChapterCSV writes the rows plus a summary block to a timestamped
// file in dir and returns the file path.
func WriteChapterCSV(dir string, chapterSeq int, rows []Row, now time.Time) (string, error) {
	name := fmt.Sprintf("Chapter_%02d_Statistics_%s.csv", chapterSeq, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create statistics file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"Segment", "Source_Words", "Source_Chars",
		"Translated_Words", "Translated_Chars",
		"Ratio", "Is_Final", "Status", "Notes",
	}); err != nil {
		return "", fmt.Errorf("failed to write statistics header: %w", err)
	}

	var srcWords, trWords, translated int
	for _, row := range rows {
		srcWords += row.SourceWords
		trWords += row.TranslatedWords
		if row.TranslatedWords > 0 {
			translated++
		}
		record := []string{
			row.Segment,
			strconv.Itoa(row.SourceWords),
			strconv.Itoa(row.SourceChars),
			strconv.Itoa(row.TranslatedWords),
			strconv.Itoa(row.TranslatedChars),
			fmt.Sprintf("%.2f", row.Ratio),
			strconv.FormatBool(row.Final),
			row.Status,
			row.Notes,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write statistics row: %w", err)
		}
	}

	overall := 0.0
	if srcWords > 0 {
		overall = float64(trWords) / float64(srcWords)
	}
	completion := 0.0
	if len(rows) > 0 {
		completion = float64(translated) / float64(len(rows)) * 100
	}
	summary := [][]string{
		{""},
		{"TOTAL_SEGMENTS", strconv.Itoa(len(rows))},
		{"TRANSLATED_SEGMENTS", strconv.Itoa(translated)},
		{"COMPLETION_PERCENT", fmt.Sprintf("%.1f", completion)},
		{"TOTAL_SOURCE_WORDS", strconv.Itoa(srcWords)},
		{"TOTAL_TRANSLATED_WORDS", strconv.Itoa(trWords)},
		{"OVERALL_RATIO", fmt.Sprintf("%.2f", overall)},
	}
	for _, record := range summary {
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write statistics summary: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush statistics file: %w", err)
	}
	return path, nil
}
