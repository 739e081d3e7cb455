// Package ledger persists the project-wide translation state: one record
// per chapter plus a running list of non-fatal warnings. The ledger is a
// single JSON document, read fully at the start of every operation and
// replaced fully at the end. Concurrent writers are last-writer-wins and
// unsupported.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Status is a chapter's monotonic lifecycle position. Per-segment
// translation state lives in the filesystem, not here.
type Status string

const (
	StatusExtracted Status = "extracted"
	StatusSegmented Status = "segmented"
	StatusCombined  Status = "combined"
)

// Chapter is one classified, numbered unit tracked through the workflow.
type Chapter struct {
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	WordCount   int       `json:"word_count"`
	ChapterType string    `json:"chapter_type"`
	TocTitle    string    `json:"toc_title,omitempty"`
	SourceUnit  string    `json:"original_file"`
	Status      Status    `json:"status"`
	Extracted   time.Time `json:"extracted"`

	// set by segmentation
	Segments     int        `json:"segments,omitempty"`
	SegmentWords int        `json:"segment_words,omitempty"`
	Segmented    *time.Time `json:"segmented,omitempty"`

	// set by reassembly
	Combined *time.Time `json:"combined,omitempty"`
}

// Project summarizes the book under translation.
type Project struct {
	BookName         string     `json:"book_name"`
	Created          time.Time  `json:"created"`
	TotalChapters    int        `json:"total_chapters"`
	TotalWordsSource int        `json:"total_words_source"`
	LastExtraction   *time.Time `json:"last_extraction,omitempty"`
}

// Ledger is the whole persisted record.
type Ledger struct {
	Project  Project             `json:"project"`
	Chapters map[string]*Chapter `json:"chapters"`
	Warnings []string            `json:"warnings"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		Chapters: make(map[string]*Chapter),
		Warnings: []string{},
	}
}

// Load reads the ledger file. A missing file yields an empty ledger, not
// an error: every operation starts from whatever state exists.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	l := New()
	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("failed to parse ledger: %w", err)
	}
	if l.Chapters == nil {
		l.Chapters = make(map[string]*Chapter)
	}
	if l.Warnings == nil {
		l.Warnings = []string{}
	}
	return l, nil
}

// Save replaces the ledger file wholesale.
func (l *Ledger) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create tracking directory: %w", err)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// Key converts a chapter sequence number to its ledger key.
func Key(seq int) string {
	return strconv.Itoa(seq)
}

// MetadataKey builds the ledger key for separately filed metadata.
func MetadataKey(n int) string {
	return fmt.Sprintf("meta_%d", n)
}

// Chapter looks up a chapter by key.
func (l *Ledger) Chapter(key string) (*Chapter, bool) {
	c, ok := l.Chapters[key]
	return c, ok
}

// Reset discards every chapter record and project total ahead of a full
// re-extraction. Warnings survive: they describe past operations.
func (l *Ledger) Reset() {
	l.Chapters = make(map[string]*Chapter)
	l.Project.TotalChapters = 0
	l.Project.TotalWordsSource = 0
}

// AddWarning appends a warning unless the exact text is already present.
func (l *Ledger) AddWarning(warning string) bool {
	for _, w := range l.Warnings {
		if w == warning {
			return false
		}
	}
	l.Warnings = append(l.Warnings, warning)
	return true
}

// SortedKeys returns chapter keys with numeric chapters first in
// numeric order, then metadata keys alphabetically.
func (l *Ledger) SortedKeys() []string {
	var numeric []int
	var meta []string
	for key := range l.Chapters {
		if strings.HasPrefix(key, "meta_") {
			meta = append(meta, key)
			continue
		}
		if n, err := strconv.Atoi(key); err == nil {
			numeric = append(numeric, n)
		}
	}
	sort.Ints(numeric)
	sort.Strings(meta)

	keys := make([]string, 0, len(numeric)+len(meta))
	for _, n := range numeric {
		keys = append(keys, strconv.Itoa(n))
	}
	return append(keys, meta...)
}
