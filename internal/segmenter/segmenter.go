// Package segmenter partitions chapter text into translation-sized
// segments. The partition is deterministic and never drops content: the
// concatenation of the segments reproduces the original paragraph
// sequence exactly.
package segmenter

import (
	"strings"

	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// Segment is one bounded-size slice of a chapter, the unit of
// translation work.
type Segment struct {
	Index int // 1-based
	Count int // total segments in the chapter
	Text  string
	Words int
	Final bool // Index == Count
}

// Segmenter packs paragraphs into segments under a soft upper bound.
type Segmenter struct {
	maxWords        int
	minIntermediate int
	smallContent    int
}

// New creates a Segmenter with the given bounds. maxWords is the soft
// upper bound per segment; minIntermediate is the smallest a non-final
// segment may be when closed; smallContent is the total below which a
// chapter stays one segment.
func New(maxWords, minIntermediate, smallContent int) *Segmenter {
	return &Segmenter{
		maxWords:        maxWords,
		minIntermediate: minIntermediate,
		smallContent:    smallContent,
	}
}

// Split partitions content into ordered segments.
//
// Paragraphs are accumulated greedily. A paragraph that would push the
// buffer past maxWords closes the buffer only if the buffer already holds
// minIntermediate words; otherwise the paragraph is appended anyway and
// the bound is exceeded. The bound is soft so that content is never
// dropped and no undersized non-final segment is emitted. Whatever
// remains when the last paragraph lands is flushed unconditionally, so
// the final segment may be arbitrarily small.
//
// Non-empty input always yields at least one segment.
func (s *Segmenter) Split(content string) []Segment {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	totalWords := textutil.CountWords(trimmed)
	if totalWords < s.smallContent {
		return finalize([]string{trimmed})
	}

	paragraphs := textutil.SplitParagraphs(trimmed)

	var texts []string
	var buffer []string
	bufferWords := 0

	for i, paragraph := range paragraphs {
		words := textutil.CountWords(paragraph)
		last := i == len(paragraphs)-1

		if bufferWords+words <= s.maxWords {
			buffer = append(buffer, paragraph)
			bufferWords += words
		} else if bufferWords >= s.minIntermediate {
			texts = append(texts, strings.Join(buffer, "\n\n"))
			buffer = []string{paragraph}
			bufferWords = words
		} else {
			// buffer too small to close: exceed the bound instead
			buffer = append(buffer, paragraph)
			bufferWords += words
		}

		if last && len(buffer) > 0 {
			texts = append(texts, strings.Join(buffer, "\n\n"))
			buffer = nil
			bufferWords = 0
		}
	}

	// degenerate paragraph structure still yields one segment
	if len(texts) == 0 {
		texts = []string{trimmed}
	}

	return finalize(texts)
}

func finalize(texts []string) []Segment {
	segments := make([]Segment, len(texts))
	for i, text := range texts {
		segments[i] = Segment{
			Index: i + 1,
			Count: len(texts),
			Text:  text,
			Words: textutil.CountWords(text),
			Final: i == len(texts)-1,
		}
	}
	return segments
}
