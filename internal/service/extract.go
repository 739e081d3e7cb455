package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lightsongjs/book-translator/internal/classifier"
	"github.com/lightsongjs/book-translator/internal/epub"
	"github.com/lightsongjs/book-translator/internal/ledger"
	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/pkg/file"
	"github.com/lightsongjs/book-translator/pkg/log"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// InitProject creates the stage directories, copies the EPUB into the
// project and runs the initial extract and segment passes so the
// project is immediately ready for translation work.
func (s *Service) InitProject(epubPath string) error {
	if _, err := os.Stat(epubPath); err != nil {
		return WrapError(err, ErrFileNotFound, fmt.Sprintf("EPUB not found: %s", epubPath))
	}

	if err := s.layout.Create(); err != nil {
		return WrapError(err, ErrFileWrite, "failed to create project directories")
	}

	dst := filepath.Join(s.layout.SourceBookDir(), filepath.Base(epubPath))
	if err := file.Copy(epubPath, dst); err != nil {
		return WrapError(err, ErrFileWrite, "failed to copy EPUB into project")
	}

	pcfg := &project.Config{
		BookName:       file.Stem(epubPath),
		EpubFile:       filepath.Base(epubPath),
		SourceLanguage: s.cfg.Language.Source,
		TargetLanguage: s.cfg.Language.Target,
		Created:        time.Now(),
	}
	if err := project.SaveConfig(s.layout.ConfigPath(), pcfg); err != nil {
		return WrapError(err, ErrFileWrite, "failed to save project config")
	}
	log.Info("Initialized project %q in %s", pcfg.BookName, s.layout.Root)

	if err := s.Extract(); err != nil {
		return err
	}
	return s.SegmentAll()
}

// Extract reads the project EPUB, classifies its spine units and writes
// the accepted ones as numbered chapter files. The tracking log is
// rebuilt from scratch; accumulated warnings survive.
func (s *Service) Extract() error {
	pcfg, err := project.LoadConfig(s.layout.ConfigPath())
	if err != nil {
		return WrapError(err, ErrConfig, "project is not initialized")
	}

	epubPath := filepath.Join(s.layout.SourceBookDir(), pcfg.EpubFile)
	units, err := epub.ExtractUnits(epubPath)
	if err != nil {
		return WrapError(err, ErrParse, fmt.Sprintf("failed to read EPUB %s", pcfg.EpubFile))
	}

	toc, err := epub.ExtractTOC(epubPath)
	if err != nil {
		// classification falls back to content heuristics without a TOC
		log.Warn("No usable TOC in %s: %v", pcfg.EpubFile, err)
		toc = nil
	}

	decisions := s.classifier.Classify(units, toc)
	if len(decisions) == 0 {
		return NewError(ErrParse, fmt.Sprintf("no chapters found in %s", pcfg.EpubFile))
	}
	log.Info("Classified %d of %d units as chapters", len(decisions), len(units))

	led, err := s.loadLedger()
	if err != nil {
		return err
	}
	if err := s.clearChapterFiles(); err != nil {
		return err
	}
	led.Reset()

	now := time.Now()
	totalWords := 0
	for _, d := range decisions {
		filename := project.ChapterFilename(d.Seq, project.Slug(d.Title))
		content := "# " + d.Title + "\n\n" + d.Unit.Text + "\n"
		path := filepath.Join(s.layout.ChaptersDir(), filename)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return WrapError(err, ErrFileWrite, fmt.Sprintf("failed to write %s", filename))
		}

		words := textutil.CountWords(d.Unit.Text)
		totalWords += words

		key := ledger.Key(d.Seq)
		if d.Type == classifier.Metadata {
			key = ledger.MetadataKey(d.Seq)
		}
		led.Chapters[key] = &ledger.Chapter{
			Title:       d.Title,
			Filename:    filename,
			WordCount:   words,
			ChapterType: string(d.Type),
			TocTitle:    d.TocTitle,
			SourceUnit:  d.Unit.SourceID,
			Status:      ledger.StatusExtracted,
			Extracted:   now,
		}
		log.Debug("Extracted %s (%s, %d words)", filename, d.Type, words)
	}

	led.Project.BookName = pcfg.BookName
	if led.Project.Created.IsZero() {
		led.Project.Created = now
	}
	led.Project.TotalChapters = len(decisions)
	led.Project.TotalWordsSource = totalWords
	led.Project.LastExtraction = &now

	if err := s.saveLedger(led); err != nil {
		return err
	}
	log.Info("Extracted %d chapters, %d words total", len(decisions), totalWords)
	return nil
}

// clearChapterFiles removes previously extracted chapter files so a
// re-extract never leaves stale chapters behind.
func (s *Service) clearChapterFiles() error {
	matches, err := filepath.Glob(filepath.Join(s.layout.ChaptersDir(), "*.md"))
	if err != nil {
		return WrapError(err, ErrFileRead, "failed to list chapter files")
	}
	return removeFiles(matches)
}
