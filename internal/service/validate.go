package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lightsongjs/book-translator/internal/ledger"
	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/internal/validator"
)

// ValidateChapter checks one chapter's translated segments against the
// configured thresholds.
func (s *Service) ValidateChapter(key string) (*validator.Report, error) {
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
	return s.validator.ValidateChapter(pairs), nil
}

// ValidateAll validates every segmented chapter and returns the reports
// keyed like the tracking log.
func (s *Service) ValidateAll() (map[string]*validator.Report, error) {
	led, err := s.loadLedger()
	if err != nil {
		return nil, err
	}

	reports := make(map[string]*validator.Report)
	for _, key := range led.SortedKeys() {
		ch, _ := led.Chapter(key)
		if ch.Segments == 0 {
			continue
		}
		pairs, err := s.collectPairs(ch)
		if err != nil {
			return nil, err
		}
		reports[key] = s.validator.ValidateChapter(pairs)
	}
	return reports, nil
}

// collectPairs builds the source/translated pairing for a chapter from
// the filesystem. A missing translated file pairs with empty text, so
// untranslated segments are reported rather than skipped.
func (s *Service) collectPairs(ch *ledger.Chapter) ([]validator.SegmentPair, error) {
	prefix := project.ChapterPrefix(ch.Filename)
	sources, err := s.sourceSegments(prefix)
	if err != nil {
		return nil, err
	}

	var pairs []validator.SegmentPair
	for _, srcPath := range sources {
		srcName := filepath.Base(srcPath)
		srcData, err := os.ReadFile(srcPath)
		if err != nil {
			return nil, WrapError(err, ErrFileRead, fmt.Sprintf("failed to read %s", srcName))
		}

		trName := project.TranslatedFilename(srcName, s.cfg.TargetSuffix())
		trText := ""
		trData, err := os.ReadFile(filepath.Join(s.layout.TranslatedSegmentsDir(), trName))
		if err == nil {
			trText = string(trData)
		} else if !os.IsNotExist(err) {
			return nil, WrapError(err, ErrFileRead, fmt.Sprintf("failed to read %s", trName))
		}

		pairs = append(pairs, validator.SegmentPair{
			SourceName:     srcName,
			TranslatedName: trName,
			SourceText:     string(srcData),
			TranslatedText: trText,
			Final:          project.IsFinalSegment(srcName),
		})
	}
	return pairs, nil
}
