package service

import (
	"fmt"
	"time"

	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/internal/stats"
	"github.com/lightsongjs/book-translator/pkg/log"
)

// StatsChapter writes a per-segment CSV report for one chapter and
// returns the report path.
func (s *Service) StatsChapter(key string) (string, error) {
	led, err := s.loadLedger()
	if err != nil {
		return "", err
	}
	ch, err := s.chapter(led, key)
	if err != nil {
		return "", err
	}

	pairs, err := s.collectPairs(ch)
	if err != nil {
		return "", err
	}
	if len(pairs) == 0 {
		return "", NewError(ErrValidation,
			fmt.Sprintf("chapter %s has no segments; run segment first", key))
	}

	rows := stats.BuildRows(pairs, s.cfg.Validate)
	path, err := stats.WriteChapterCSV(
		s.layout.StatisticsDir(), project.SequenceFromFilename(ch.Filename), rows, time.Now())
	if err != nil {
		return "", WrapError(err, ErrFileWrite, "failed to write statistics")
	}
	log.Info("Wrote statistics for chapter %s to %s", key, path)
	return path, nil
}

// StatsAll writes CSV reports for every segmented chapter.
func (s *Service) StatsAll() ([]string, error) {
	led, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, key := range led.SortedKeys() {
		ch, _ := led.Chapter(key)
		if ch.Segments == 0 {
			continue
		}
		path, err := s.StatsChapter(key)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
