package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lightsongjs/book-translator/internal/ledger"
	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/pkg/file"
	"github.com/lightsongjs/book-translator/pkg/log"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// CombineChapter reassembles one chapter from its translated segments.
// Empty segments become inline placeholder markers so a partial
// reassembly is visibly partial; a chapter with no translated content
// at all is an error.
func (s *Service) CombineChapter(key string) (*CombineResult, error) {
	led, err := s.loadLedger()
	if err != nil {
		return nil, err
	}
	ch, err := s.chapter(led, key)
	if err != nil {
		return nil, err
	}

	result, err := s.combineOne(led, key, ch)
	if err != nil {
		return nil, err
	}
	if err := s.saveLedger(led); err != nil {
		return nil, err
	}
	return result, nil
}

// CombineAll reassembles every chapter that has translated content and
// concatenates the results into the final book document. Chapters with
// nothing translated yet are skipped with a warning, not treated as
// errors: the final document grows as translation progresses.
func (s *Service) CombineAll() (*BookResult, error) {
	led, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	book := &BookResult{}
	var parts []string
	for _, key := range led.SortedKeys() {
		ch, _ := led.Chapter(key)
		if ch.Segments == 0 {
			book.Skipped = append(book.Skipped, key)
			continue
		}

		result, err := s.combineOne(led, key, ch)
		if err != nil {
			if IsErrorType(err, ErrValidation) {
				log.Warn("Skipping chapter %s: %v", key, err)
				book.Skipped = append(book.Skipped, key)
				continue
			}
			return nil, err
		}
		book.Chapters = append(book.Chapters, result)

		data, err := os.ReadFile(result.OutputPath)
		if err != nil {
			return nil, WrapError(err, ErrFileRead, "failed to re-read combined chapter")
		}
		parts = append(parts, strings.TrimRight(string(data), "\n"))
	}

	if len(book.Chapters) == 0 {
		return nil, NewError(ErrValidation, "no chapter has translated content to combine")
	}

	name := fmt.Sprintf("%s_%s.md", led.Project.BookName, strings.ToLower(s.cfg.Language.Target))
	book.OutputPath = filepath.Join(s.layout.FinalOutputDir(), name)
	content := strings.Join(parts, "\n\n") + "\n"
	if err := os.WriteFile(book.OutputPath, []byte(content), 0o644); err != nil {
		return nil, WrapError(err, ErrFileWrite, "failed to write final document")
	}

	if err := s.saveLedger(led); err != nil {
		return nil, err
	}
	log.Info("Combined %d chapters into %s", len(book.Chapters), book.OutputPath)
	return book, nil
}

func (s *Service) combineOne(led *ledger.Ledger, key string, ch *ledger.Chapter) (*CombineResult, error) {
	prefix := project.ChapterPrefix(ch.Filename)
	sources, err := s.sourceSegments(prefix)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, NewError(ErrValidation,
			fmt.Sprintf("chapter %s has no segments; run segment first", key))
	}

	result := &CombineResult{Key: key, Segments: len(sources)}
	var parts []string
	translated := 0
	for _, srcPath := range sources {
		trName := project.TranslatedFilename(filepath.Base(srcPath), s.cfg.TargetSuffix())
		trPath := filepath.Join(s.layout.TranslatedSegmentsDir(), trName)

		text := ""
		if data, err := os.ReadFile(trPath); err == nil {
			text = strings.TrimSpace(textutil.StripCommentHeader(string(data)))
		} else if !os.IsNotExist(err) {
			return nil, WrapError(err, ErrFileRead, fmt.Sprintf("failed to read %s", trName))
		}

		if text == "" {
			result.Missing = append(result.Missing, trName)
			parts = append(parts, fmt.Sprintf("[MISSING TRANSLATION: %s]", trName))
			continue
		}
		translated++
		parts = append(parts, text)
	}

	if translated == 0 {
		return nil, NewError(ErrValidation,
			fmt.Sprintf("chapter %s has no translated segments", key))
	}

	outName := project.TranslatedFilename(ch.Filename, s.cfg.TargetSuffix())
	result.OutputPath = filepath.Join(s.layout.TranslatedChaptersDir(), outName)
	content := "# " + ch.Title + "\n\n" + strings.Join(parts, "\n\n") + "\n"
	if err := os.WriteFile(result.OutputPath, []byte(content), 0o644); err != nil {
		return nil, WrapError(err, ErrFileWrite, fmt.Sprintf("failed to write %s", outName))
	}
	result.Words = textutil.CountWords(content)

	// safety copy, combining overwrites the previous reassembly
	backup := filepath.Join(s.layout.BackupDir(),
		time.Now().Format("20060102_150405")+"_"+outName)
	if err := file.Copy(result.OutputPath, backup); err != nil {
		log.Warn("Failed to back up %s: %v", outName, err)
	}

	now := time.Now()
	ch.Status = ledger.StatusCombined
	ch.Combined = &now

	if len(result.Missing) > 0 {
		log.Warn("Combined %s with %d missing segments", outName, len(result.Missing))
	} else {
		log.Info("Combined %s (%d segments, %d words)", outName, result.Segments, result.Words)
	}
	return result, nil
}
