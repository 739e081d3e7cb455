package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lightsongjs/book-translator/internal/ledger"
	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/pkg/log"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// SegmentChapter splits one chapter into bounded segments. Existing
// translated segments for the chapter are preserved whenever any of
// them holds real content; only untouched placeholders are rebuilt.
func (s *Service) SegmentChapter(key string) error {
	led, err := s.loadLedger()
	if err != nil {
		return err
	}
	ch, err := s.chapter(led, key)
	if err != nil {
		return err
	}

	existing, err := s.translatedSegments(project.ChapterPrefix(ch.Filename))
	if err != nil {
		return err
	}
	if err := s.segmentOne(led, ch, hasRealContent(existing)); err != nil {
		return err
	}
	return s.saveLedger(led)
}

// SegmentAll splits every tracked chapter. The preserve decision is
// global: if any translated segment anywhere holds real content,
// translation is underway and no translated file is deleted.
func (s *Service) SegmentAll() error {
	led, err := s.loadLedger()
	if err != nil {
		return err
	}

	all, err := filepath.Glob(filepath.Join(s.layout.TranslatedSegmentsDir(), "*_seg*"))
	if err != nil {
		return WrapError(err, ErrFileRead, "failed to list translated segments")
	}
	preserve := hasRealContent(all)
	if preserve {
		log.Info("Translation in progress, preserving translated segments")
	}

	for _, key := range led.SortedKeys() {
		ch, _ := led.Chapter(key)
		if err := s.segmentOne(led, ch, preserve); err != nil {
			return err
		}
	}
	return s.saveLedger(led)
}

func (s *Service) segmentOne(led *ledger.Ledger, ch *ledger.Chapter, preserve bool) error {
	path := filepath.Join(s.layout.ChaptersDir(), ch.Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Chapter file %s is missing, skipping", ch.Filename)
			return nil
		}
		return WrapError(err, ErrFileRead, fmt.Sprintf("failed to read %s", ch.Filename))
	}

	body := textutil.StripHeadingLine(string(data))
	segments := s.segmenter.Split(body)
	prefix := project.ChapterPrefix(ch.Filename)

	stale, err := s.sourceSegments(prefix)
	if err != nil {
		return err
	}
	if err := removeFiles(stale); err != nil {
		return err
	}
	if !preserve {
		old, err := s.translatedSegments(prefix)
		if err != nil {
			return err
		}
		if err := removeFiles(old); err != nil {
			return err
		}
	}

	segmentWords := 0
	for _, seg := range segments {
		name := project.SegmentFilename(prefix, seg.Index, seg.Count)
		srcPath := filepath.Join(s.layout.SourceSegmentsDir(), name)
		if err := os.WriteFile(srcPath, []byte(seg.Text+"\n"), 0o644); err != nil {
			return WrapError(err, ErrFileWrite, fmt.Sprintf("failed to write %s", name))
		}
		segmentWords += seg.Words

		trName := project.TranslatedFilename(name, s.cfg.TargetSuffix())
		trPath := filepath.Join(s.layout.TranslatedSegmentsDir(), trName)
		if err := s.writePlaceholder(trPath, trName, seg.Index, seg.Count); err != nil {
			return err
		}
	}

	now := time.Now()
	ch.Segments = len(segments)
	ch.SegmentWords = segmentWords
	ch.Status = ledger.StatusSegmented
	ch.Segmented = &now

	originalWords := textutil.CountWords(body)
	if !s.validator.WordsPreserved(originalWords, segmentWords) {
		warning := fmt.Sprintf("%s: word count mismatch after segmentation (original: %d, segments: %d)",
			ch.Filename, originalWords, segmentWords)
		if led.AddWarning(warning) {
			log.Warn("%s", warning)
		}
	}

	log.Info("Segmented %s into %d segments (%d words)", ch.Filename, len(segments), segmentWords)
	return nil
}

// writePlaceholder creates the translated-side file for a segment if it
// does not already exist. Existing files are left alone, whatever their
// content.
func (s *Service) writePlaceholder(path, name string, index, count int) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return WrapError(err, ErrFileRead, fmt.Sprintf("failed to stat %s", name))
	}

	header := fmt.Sprintf("<!-- %s: segment %d of %d, add the translation below -->\n", name, index, count)
	if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
		return WrapError(err, ErrFileWrite, fmt.Sprintf("failed to write %s", name))
	}
	return nil
}
