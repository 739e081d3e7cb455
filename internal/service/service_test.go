package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightsongjs/book-translator/internal/config"
	"github.com/lightsongjs/book-translator/internal/ledger"
	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// newFixture builds a Service over an initialized but empty project,
// with segmentation bounds small enough for short test content.
func newFixture(t *testing.T) *Service {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.New(dir)
	require.NoError(t, err)
	cfg.Segment.MaxWords = 50
	cfg.Segment.MinIntermediateWords = 30
	cfg.Segment.SmallContentWords = 10

	svc := New(cfg, dir)
	require.NoError(t, svc.layout.Create())

	led := ledger.New()
	led.Project.BookName = "testbook"
	led.Project.Created = time.Now()
	require.NoError(t, led.Save(svc.layout.LedgerPath()))
	return svc
}

// addChapter writes an extracted chapter file and tracks it, returning
// the ledger key.
func addChapter(t *testing.T, svc *Service, seq int, title, body string) string {
	t.Helper()

	led, err := ledger.Load(svc.layout.LedgerPath())
	require.NoError(t, err)

	filename := project.ChapterFilename(seq, project.Slug(title))
	path := filepath.Join(svc.layout.ChaptersDir(), filename)
	require.NoError(t, os.WriteFile(path, []byte("# "+title+"\n\n"+body+"\n"), 0o644))

	key := ledger.Key(seq)
	led.Chapters[key] = &ledger.Chapter{
		Title:       title,
		Filename:    filename,
		WordCount:   textutil.CountWords(body),
		ChapterType: "regular",
		Status:      ledger.StatusExtracted,
		Extracted:   time.Now(),
	}
	require.NoError(t, led.Save(svc.layout.LedgerPath()))
	return key
}

// paragraph generates n distinct words as one paragraph.
func paragraph(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

// translate fills the translated counterpart of the given source
// segment name.
func translate(t *testing.T, svc *Service, srcName, text string) {
	t.Helper()
	trName := project.TranslatedFilename(srcName, svc.cfg.TargetSuffix())
	path := filepath.Join(svc.layout.TranslatedSegmentsDir(), trName)
	require.NoError(t, os.WriteFile(path, []byte(text+"\n"), 0o644))
}

func sourceNames(t *testing.T, svc *Service, filename string) []string {
	t.Helper()
	paths, err := svc.sourceSegments(project.ChapterPrefix(filename))
	require.NoError(t, err)
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestSegmentChapter(t *testing.T) {
	svc := newFixture(t)
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	key := addChapter(t, svc, 1, "Chapter 1", body)

	require.NoError(t, svc.SegmentChapter(key))

	names := sourceNames(t, svc, "01_Chapter_1.md")
	assert.Equal(t, []string{
		"01_Chapter_1_seg01_of_03.md",
		"01_Chapter_1_seg02_of_03.md",
		"01_Chapter_1_seg03_of_03.md",
	}, names)

	// each segment gets an untouched placeholder on the translated side
	for _, name := range names {
		trName := project.TranslatedFilename(name, "_ro")
		data, err := os.ReadFile(filepath.Join(svc.layout.TranslatedSegmentsDir(), trName))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "<!--"))
	}

	led, err := ledger.Load(svc.layout.LedgerPath())
	require.NoError(t, err)
	ch, ok := led.Chapter(key)
	require.True(t, ok)
	assert.Equal(t, 3, ch.Segments)
	assert.Equal(t, 120, ch.SegmentWords)
	assert.Equal(t, ledger.StatusSegmented, ch.Status)
	assert.NotNil(t, ch.Segmented)
	assert.Empty(t, led.Warnings)
}

func TestSegmentChapter_UntrackedChapter(t *testing.T) {
	svc := newFixture(t)
	err := svc.SegmentChapter("9")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrFileNotFound))
}

func TestSegmentChapter_PreservesTranslatedWork(t *testing.T) {
	svc := newFixture(t)
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	key := addChapter(t, svc, 1, "Chapter 1", body)
	require.NoError(t, svc.SegmentChapter(key))

	translated := "Aceasta este traducerea celui de-al doilea segment."
	translate(t, svc, "01_Chapter_1_seg02_of_03.md", translated)

	// re-segmenting must not discard the translated segment
	require.NoError(t, svc.SegmentChapter(key))

	trPath := filepath.Join(svc.layout.TranslatedSegmentsDir(), "01_Chapter_1_seg02_of_03_ro.md")
	data, err := os.ReadFile(trPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), translated)

	// untouched placeholders are still in place
	data, err = os.ReadFile(filepath.Join(svc.layout.TranslatedSegmentsDir(), "01_Chapter_1_seg01_of_03_ro.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!--"))
}

func TestSegmentChapter_RebuildsWhenNothingTranslated(t *testing.T) {
	svc := newFixture(t)
	key := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	require.NoError(t, svc.SegmentChapter(key))

	// grow the chapter so the re-split produces more segments
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	path := filepath.Join(svc.layout.ChaptersDir(), "01_Chapter_1.md")
	require.NoError(t, os.WriteFile(path, []byte("# Chapter 1\n\n"+body+"\n"), 0o644))

	require.NoError(t, svc.SegmentChapter(key))

	names := sourceNames(t, svc, "01_Chapter_1.md")
	assert.Len(t, names, 3)

	// the single-segment placeholders from the first run are gone
	matches, err := filepath.Glob(filepath.Join(svc.layout.TranslatedSegmentsDir(), "*_of_01_ro.md"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSegmentAll_GlobalPreserve(t *testing.T) {
	svc := newFixture(t)
	key1 := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	key2 := addChapter(t, svc, 2, "Chapter 2", paragraph(40))
	require.NoError(t, svc.SegmentAll())

	translated := "Traducere reală pentru primul capitol."
	translate(t, svc, "01_Chapter_1_seg01_of_01.md", translated)

	// any real content anywhere switches SegmentAll to preserve mode
	require.NoError(t, svc.SegmentAll())

	data, err := os.ReadFile(filepath.Join(svc.layout.TranslatedSegmentsDir(), "01_Chapter_1_seg01_of_01_ro.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), translated)

	led, err := ledger.Load(svc.layout.LedgerPath())
	require.NoError(t, err)
	for _, key := range []string{key1, key2} {
		ch, ok := led.Chapter(key)
		require.True(t, ok)
		assert.Equal(t, ledger.StatusSegmented, ch.Status)
		assert.Equal(t, 1, ch.Segments)
	}
}

func TestCombineChapter(t *testing.T) {
	svc := newFixture(t)
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	key := addChapter(t, svc, 1, "Chapter 1", body)
	require.NoError(t, svc.SegmentChapter(key))

	for i, name := range sourceNames(t, svc, "01_Chapter_1.md") {
		translate(t, svc, name, fmt.Sprintf("Traducerea segmentului %d din capitol.", i+1))
	}

	result, err := svc.CombineChapter(key)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Segments)
	assert.Empty(t, result.Missing)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# Chapter 1\n\n"))
	assert.Contains(t, content, "Traducerea segmentului 1")
	assert.Contains(t, content, "Traducerea segmentului 3")
	assert.NotContains(t, content, "MISSING TRANSLATION")

	led, err := ledger.Load(svc.layout.LedgerPath())
	require.NoError(t, err)
	ch, _ := led.Chapter(key)
	assert.Equal(t, ledger.StatusCombined, ch.Status)
	assert.NotNil(t, ch.Combined)

	// a safety copy of the reassembled chapter lands in the backup stage
	backups, err := filepath.Glob(filepath.Join(svc.layout.BackupDir(), "*_01_Chapter_1_ro.md"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestCombineChapter_MissingSegmentsMarked(t *testing.T) {
	svc := newFixture(t)
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	key := addChapter(t, svc, 1, "Chapter 1", body)
	require.NoError(t, svc.SegmentChapter(key))

	translate(t, svc, "01_Chapter_1_seg01_of_03.md", "Doar primul segment este tradus.")

	result, err := svc.CombineChapter(key)
	require.NoError(t, err)
	assert.Len(t, result.Missing, 2)

	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[MISSING TRANSLATION: 01_Chapter_1_seg02_of_03_ro.md]")
	assert.Contains(t, string(data), "[MISSING TRANSLATION: 01_Chapter_1_seg03_of_03_ro.md]")
}

func TestCombineChapter_NothingTranslated(t *testing.T) {
	svc := newFixture(t)
	key := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	require.NoError(t, svc.SegmentChapter(key))

	_, err := svc.CombineChapter(key)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrValidation))
}

func TestCombineAll(t *testing.T) {
	svc := newFixture(t)
	key1 := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	key2 := addChapter(t, svc, 2, "Chapter 2", paragraph(40))
	require.NoError(t, svc.SegmentAll())

	translate(t, svc, "01_Chapter_1_seg01_of_01.md", "Întregul prim capitol, tradus.")

	book, err := svc.CombineAll()
	require.NoError(t, err)
	require.Len(t, book.Chapters, 1)
	assert.Equal(t, key1, book.Chapters[0].Key)
	assert.Contains(t, book.Skipped, key2)

	assert.Equal(t,
		filepath.Join(svc.layout.FinalOutputDir(), "testbook_ro.md"),
		book.OutputPath)
	data, err := os.ReadFile(book.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Chapter 1")
	assert.Contains(t, string(data), "Întregul prim capitol, tradus.")
}

func TestValidateChapter(t *testing.T) {
	svc := newFixture(t)
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	key := addChapter(t, svc, 1, "Chapter 1", body)
	require.NoError(t, svc.SegmentChapter(key))

	report, err := svc.ValidateChapter(key)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Stats.TotalSegments)
	assert.Equal(t, 0, report.Stats.TranslatedSegments)

	// untranslated placeholders warn but do not invalidate the chapter
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.Warnings)
}

func TestProgress(t *testing.T) {
	svc := newFixture(t)
	body := paragraph(40) + "\n\n" + paragraph(40) + "\n\n" + paragraph(40)
	key1 := addChapter(t, svc, 1, "Chapter 1", body)
	addChapter(t, svc, 2, "Chapter 2", paragraph(40))
	require.NoError(t, svc.SegmentAll())

	translate(t, svc, "01_Chapter_1_seg01_of_03.md", "Primul segment tradus.")

	report, err := svc.Progress()
	require.NoError(t, err)
	assert.Equal(t, "testbook", report.BookName)
	assert.Equal(t, 2, report.TotalChapters)
	assert.Equal(t, 1, report.InProgress)
	assert.Equal(t, 1, report.Untouched)
	assert.Equal(t, key1, report.NextKey)

	require.Len(t, report.Chapters, 2)
	first := report.Chapters[0]
	assert.Equal(t, key1, first.Key)
	assert.Equal(t, 3, first.Segments)
	assert.Equal(t, 1, first.Translated)
	assert.InDelta(t, 33.3, first.Percent, 0.1)
}

func TestQuickCheck(t *testing.T) {
	svc := newFixture(t)
	body := "First paragraph with several distinct words inside it.\n\n" + paragraph(40)
	key := addChapter(t, svc, 1, "Chapter 1", body)
	require.NoError(t, svc.SegmentChapter(key))

	names := sourceNames(t, svc, "01_Chapter_1.md")
	translate(t, svc, names[0], "Primul paragraf cu mai multe cuvinte distincte în el.")

	previews, err := svc.QuickCheck(key)
	require.NoError(t, err)
	require.NotEmpty(t, previews)

	first := previews[0]
	assert.Equal(t, names[0], first.SegmentName)
	assert.True(t, strings.HasPrefix(first.SourceOpening, "First paragraph"))
	assert.True(t, strings.HasPrefix(first.TargetOpening, "Primul paragraf"))
	assert.Equal(t, "word37 word38 word39", first.SourceClosing)
	assert.Equal(t, "distincte în el.", first.TargetClosing)
	assert.True(t, first.Translated)
}

func TestBackup_WholeProject(t *testing.T) {
	svc := newFixture(t)
	key := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	require.NoError(t, svc.SegmentChapter(key))

	dst, err := svc.Backup("")
	require.NoError(t, err)

	tracked := filepath.Join(dst, filepath.Base(svc.layout.TrackingDir()), "translation_log.json")
	assert.FileExists(t, tracked)
	segs, err := filepath.Glob(filepath.Join(dst, filepath.Base(svc.layout.SourceSegmentsDir()), "*_seg*"))
	require.NoError(t, err)
	assert.NotEmpty(t, segs)
}

func TestBackup_SingleChapter(t *testing.T) {
	svc := newFixture(t)
	key := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	require.NoError(t, svc.SegmentChapter(key))

	dst, err := svc.Backup(key)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dst, "01_Chapter_1_seg01_of_01.md"))
	assert.FileExists(t, filepath.Join(dst, "01_Chapter_1_seg01_of_01_ro.md"))
	assert.FileExists(t, filepath.Join(dst, "translation_log.json"))
}

func TestStatsChapter(t *testing.T) {
	svc := newFixture(t)
	key := addChapter(t, svc, 1, "Chapter 1", paragraph(40))
	require.NoError(t, svc.SegmentChapter(key))
	translate(t, svc, "01_Chapter_1_seg01_of_01.md", paragraph(35))

	path, err := svc.StatsChapter(key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Chapter_01_Statistics_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "01_Chapter_1_seg01_of_01.md")
	assert.Contains(t, content, "TOTAL_SEGMENTS,1")
	assert.Contains(t, content, "COMPLETION_PERCENT,100.0")
}

func TestResolveKey(t *testing.T) {
	key, err := ResolveKey("7")
	require.NoError(t, err)
	assert.Equal(t, "7", key)

	key, err = ResolveKey("meta_3")
	require.NoError(t, err)
	assert.Equal(t, "meta_3", key)

	_, err = ResolveKey("seven")
	assert.Error(t, err)
	_, err = ResolveKey("0")
	assert.Error(t, err)
}
