package classifier

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightsongjs/book-translator/internal/epub"
)

// narrativeText builds text that passes the content heuristics
func narrativeText(paragraphs int) string {
	var sb strings.Builder
	for i := 0; i < paragraphs; i++ {
		sb.WriteString(fmt.Sprintf(
			"Paragraph %d. \"Where are we going?\" she said. He looked at the horizon "+
				"and walked on, and felt the wind rise as the night thought itself dark. "+
				"They knew the road would be long and the words kept coming all the same.\n\n", i+1))
	}
	return sb.String()
}

func TestClassify_TocFirstResolution(t *testing.T) {
	c := New()

	units := []epub.Unit{
		{SourceID: "ch01.xhtml", Text: "Almost no text here, but enough characters to pass the boilerplate floor."},
	}
	toc := []epub.TocEntry{
		{SourceID: "ch01.xhtml", Title: "Chapter 1"},
	}

	decisions := c.Classify(units, toc)
	require.Len(t, decisions, 1)
	assert.Equal(t, 1, decisions[0].Seq)
	assert.Equal(t, Regular, decisions[0].Type)
	assert.Equal(t, "Chapter 1", decisions[0].Title)
}

func TestClassify_TocConflictPrecedence(t *testing.T) {
	// a unit with both "Part Two" and "Chapter 12" TOC titles resolves
	// to regular / "Chapter 12"
	c := New()

	units := []epub.Unit{
		{SourceID: "part2.xhtml", Text: narrativeText(12)},
	}
	toc := []epub.TocEntry{
		{SourceID: "part2.xhtml", Title: "Part Two"},
		{SourceID: "part2.xhtml", Title: "Chapter 12"},
	}

	decisions := c.Classify(units, toc)
	require.Len(t, decisions, 1)
	assert.Equal(t, Regular, decisions[0].Type)
	assert.Equal(t, "Chapter 12", decisions[0].Title)
}

func TestClassify_BasenameLookup(t *testing.T) {
	c := New()

	units := []epub.Unit{
		{SourceID: "OEBPS/text/ch05.xhtml", Text: narrativeText(2)},
	}
	toc := []epub.TocEntry{
		{SourceID: "ch05.xhtml", Title: "Chapter 5"},
	}

	decisions := c.Classify(units, toc)
	require.Len(t, decisions, 1)
	assert.Equal(t, "Chapter 5", decisions[0].Title)
}

func TestClassify_ShortUnitsDiscarded(t *testing.T) {
	c := New()

	units := []epub.Unit{
		{SourceID: "blank.xhtml", Text: "   \n\n  "},
		{SourceID: "tiny.xhtml", Text: "Too short."},
	}
	toc := []epub.TocEntry{
		// even a TOC title does not rescue a sub-50-char unit
		{SourceID: "tiny.xhtml", Title: "Chapter 1"},
	}

	assert.Empty(t, c.Classify(units, toc))
}

func TestClassify_NoTocHeuristic(t *testing.T) {
	c := New()

	units := []epub.Unit{
		// nav file: skipped by filename regardless of content
		{SourceID: "nav.xhtml", Text: narrativeText(12)},
		// real narrative without a TOC entry: accepted
		{SourceID: "text00042.xhtml", Text: narrativeText(12)},
		// long enough characters but few lines: rejected
		{SourceID: "text00043.xhtml", Text: strings.Repeat("word ", 60)},
	}

	decisions := c.Classify(units, nil)
	require.Len(t, decisions, 1)
	assert.Equal(t, "text00042.xhtml", decisions[0].Unit.SourceID)
	assert.Equal(t, 1, decisions[0].Seq)
}

func TestClassify_MetadataTocTitleFiledSeparately(t *testing.T) {
	c := New()

	// a metadata-titled unit that still reads like substantial content is
	// filed as metadata instead of being discarded
	units := []epub.Unit{
		{SourceID: "ack.xhtml", Text: narrativeText(12)},
	}
	toc := []epub.TocEntry{
		{SourceID: "ack.xhtml", Title: "Acknowledgments"},
	}

	decisions := c.Classify(units, toc)
	require.Len(t, decisions, 1)
	assert.Equal(t, Metadata, decisions[0].Type)
}

func TestClassify_SequenceNumbersInDocumentOrder(t *testing.T) {
	c := New()

	units := []epub.Unit{
		{SourceID: "a.xhtml", Text: narrativeText(12)},
		{SourceID: "skip.xhtml", Text: "short"},
		{SourceID: "b.xhtml", Text: narrativeText(12)},
	}
	toc := []epub.TocEntry{
		{SourceID: "a.xhtml", Title: "Prologue"},
		{SourceID: "b.xhtml", Title: "Chapter 1"},
	}

	decisions := c.Classify(units, toc)
	require.Len(t, decisions, 2)
	assert.Equal(t, 1, decisions[0].Seq)
	assert.Equal(t, Special, decisions[0].Type)
	assert.Equal(t, 2, decisions[1].Seq)
	assert.Equal(t, Regular, decisions[1].Type)
}

func TestExtractTitleFromContent(t *testing.T) {
	assert.Equal(t, "Chapter One", extractTitleFromContent("CHAPTER ONE\n\nIt began at night.", 3))
	assert.Equal(t, "Chapter 7", extractTitleFromContent("7\n\nIt began at night.", 3))
	assert.Equal(t, "Chapter 3", extractTitleFromContent("It began at night.", 3))
}

func TestInferTypeFromContent(t *testing.T) {
	assert.Equal(t, Special, inferTypeFromContent("PROLOGUE\n\nWax crouched low."))
	assert.Equal(t, Metadata, inferTypeFromContent("This dedication is for the reader."))
	assert.Equal(t, Regular, inferTypeFromContent("It began at night, with rain."))
}
