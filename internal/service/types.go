package service

import "github.com/lightsongjs/book-translator/internal/ledger"

// ChapterProgress is one chapter's position in the workflow, combining
// the tracking log with a filesystem scan of its translated segments.
type ChapterProgress struct {
	Key        string
	Title      string
	Type       string
	Status     ledger.Status
	WordCount  int
	Segments   int
	Translated int
	Percent    float64
}

// ProgressReport summarizes the whole project.
type ProgressReport struct {
	BookName      string
	TotalChapters int
	TotalWords    int

	Combined   int
	Done       int // all segments translated, not yet combined
	InProgress int
	Untouched  int

	Chapters []ChapterProgress
	Warnings []string

	// NextKey is the first chapter with untranslated segments, empty
	// when everything is translated.
	NextKey string
}

// PreviewPair shows the opening and closing words of one segment next
// to its translation, for a quick eyeball check without spoilers.
type PreviewPair struct {
	SegmentName   string
	SourceOpening string
	SourceClosing string
	TargetOpening string
	TargetClosing string
	Translated    bool
}

// CombineResult reports one reassembled chapter.
type CombineResult struct {
	Key        string
	OutputPath string
	Segments   int
	Words      int

	// Missing lists translated segment names that were empty and were
	// replaced with an inline placeholder marker.
	Missing []string
}

// BookResult reports a whole-book reassembly.
type BookResult struct {
	Chapters   []*CombineResult
	Skipped    []string
	OutputPath string
}
