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

// Progress reports where every chapter stands, pairing the tracking log
// with a filesystem scan of translated segments.
func (s *Service) Progress() (*ProgressReport, error) {
	led, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{
		BookName:      led.Project.BookName,
		TotalChapters: len(led.Chapters),
		TotalWords:    led.Project.TotalWordsSource,
		Warnings:      led.Warnings,
	}

	for _, key := range led.SortedKeys() {
		ch, _ := led.Chapter(key)
		cp := ChapterProgress{
			Key:       key,
			Title:     ch.Title,
			Type:      ch.ChapterType,
			Status:    ch.Status,
			WordCount: ch.WordCount,
			Segments:  ch.Segments,
		}

		prefix := project.ChapterPrefix(ch.Filename)
		translated, err := s.translatedSegments(prefix)
		if err != nil {
			return nil, err
		}
		for _, p := range translated {
			data, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if strings.TrimSpace(textutil.StripCommentHeader(string(data))) != "" {
				cp.Translated++
			}
		}
		if cp.Segments > 0 {
			cp.Percent = float64(cp.Translated) / float64(cp.Segments) * 100
		}

		switch {
		case ch.Status == ledger.StatusCombined:
			report.Combined++
		case cp.Segments > 0 && cp.Translated == cp.Segments:
			report.Done++
		case cp.Translated > 0:
			report.InProgress++
		default:
			report.Untouched++
		}
		if report.NextKey == "" && cp.Segments > 0 && cp.Translated < cp.Segments {
			report.NextKey = key
		}

		report.Chapters = append(report.Chapters, cp)
	}
	return report, nil
}

// QuickCheck returns the opening words of every segment side by side
// with its translation, enough to spot a misaligned or stale file
// without reading whole segments.
func (s *Service) QuickCheck(key string) ([]PreviewPair, error) {
	led, err := s.loadLedger()
	if err != nil {
		return nil, err
	}
	ch, err := s.chapter(led, key)
	if err != nil {
		return nil, err
	}

	pairs, err := s.collectPairs(ch)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, NewError(ErrValidation,
			fmt.Sprintf("chapter %s has no segments; run segment first", key))
	}

	previews := make([]PreviewPair, 0, len(pairs))
	for _, p := range pairs {
		translated := strings.TrimSpace(textutil.StripCommentHeader(p.TranslatedText))
		previews = append(previews, PreviewPair{
			SegmentName:   p.SourceName,
			SourceOpening: textutil.FirstWords(p.SourceText, 10),
			SourceClosing: textutil.LastWords(p.SourceText, 3),
			TargetOpening: textutil.FirstWords(translated, 10),
			TargetClosing: textutil.LastWords(translated, 3),
			Translated:    translated != "",
		})
	}
	return previews, nil
}

// Backup copies translation work into a timestamped directory under the
// backup stage. With an empty key the whole working set is backed up:
// source segments, translated segments and the tracking directory. With
// a key, only that chapter's files plus the tracking log.
func (s *Service) Backup(key string) (string, error) {
	stamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(s.layout.BackupDir(), "backup_"+stamp)

	if key == "" {
		for _, dir := range []string{
			s.layout.SourceSegmentsDir(),
			s.layout.TranslatedSegmentsDir(),
			s.layout.TrackingDir(),
		} {
			if err := file.CopyDir(dir, filepath.Join(dst, filepath.Base(dir))); err != nil {
				return "", WrapError(err, ErrFileWrite, "failed to back up "+filepath.Base(dir))
			}
		}
		log.Info("Backed up working set to %s", dst)
		return dst, nil
	}

	led, err := s.loadLedger()
	if err != nil {
		return "", err
	}
	ch, err := s.chapter(led, key)
	if err != nil {
		return "", err
	}

	prefix := project.ChapterPrefix(ch.Filename)
	sources, err := s.sourceSegments(prefix)
	if err != nil {
		return "", err
	}
	translated, err := s.translatedSegments(prefix)
	if err != nil {
		return "", err
	}

	for _, p := range append(sources, translated...) {
		if err := file.Copy(p, filepath.Join(dst, filepath.Base(p))); err != nil {
			return "", WrapError(err, ErrFileWrite, "failed to back up "+filepath.Base(p))
		}
	}
	if _, err := os.Stat(s.layout.LedgerPath()); err == nil {
		if err := file.Copy(s.layout.LedgerPath(), filepath.Join(dst, filepath.Base(s.layout.LedgerPath()))); err != nil {
			return "", WrapError(err, ErrFileWrite, "failed to back up tracking log")
		}
	}
	log.Info("Backed up chapter %s to %s", key, dst)
	return dst, nil
}
