// Package service orchestrates the translation workflow over the stage
// directories of a project: extraction, segmentation, validation,
// reassembly and the bookkeeping around them. Operations are
// re-runnable; completed translation work is never discarded.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lightsongjs/book-translator/internal/classifier"
	"github.com/lightsongjs/book-translator/internal/config"
	"github.com/lightsongjs/book-translator/internal/ledger"
	"github.com/lightsongjs/book-translator/internal/project"
	"github.com/lightsongjs/book-translator/internal/segmenter"
	"github.com/lightsongjs/book-translator/internal/validator"
	"github.com/lightsongjs/book-translator/pkg/textutil"
)

// Service ties the workflow stages to one project directory.
type Service struct {
	cfg    *config.Config
	layout *project.Layout

	classifier *classifier.Classifier
	segmenter  *segmenter.Segmenter
	validator  *validator.Validator
}

// New creates a Service for the project rooted at projectDir.
func New(cfg *config.Config, projectDir string) *Service {
	return &Service{
		cfg:    cfg,
		layout: project.NewLayout(projectDir, cfg.Language.Source, cfg.Language.Target),

		classifier: classifier.New(),
		segmenter: segmenter.New(
			cfg.Segment.MaxWords,
			cfg.Segment.MinIntermediateWords,
			cfg.Segment.SmallContentWords,
		),
		validator: validator.New(cfg.Validate, cfg.TargetTag()),
	}
}

// Layout exposes the resolved stage directories.
func (s *Service) Layout() *project.Layout {
	return s.layout
}

func (s *Service) loadLedger() (*ledger.Ledger, error) {
	led, err := ledger.Load(s.layout.LedgerPath())
	if err != nil {
		return nil, WrapError(err, ErrParse, "failed to load tracking log")
	}
	return led, nil
}

func (s *Service) saveLedger(led *ledger.Ledger) error {
	if err := led.Save(s.layout.LedgerPath()); err != nil {
		return WrapError(err, ErrFileWrite, "failed to save tracking log")
	}
	return nil
}

// ResolveKey turns a CLI chapter argument into a ledger key: a bare
// number addresses a narrative chapter, the meta_N form addresses filed
// metadata.
func ResolveKey(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil && n > 0 {
		return ledger.Key(n), nil
	}
	if strings.HasPrefix(arg, "meta_") {
		if _, err := strconv.Atoi(strings.TrimPrefix(arg, "meta_")); err == nil {
			return arg, nil
		}
	}
	return "", NewError(ErrValidation, fmt.Sprintf("invalid chapter reference %q", arg))
}

func (s *Service) chapter(led *ledger.Ledger, key string) (*ledger.Chapter, error) {
	ch, ok := led.Chapter(key)
	if !ok {
		return nil, NewError(ErrFileNotFound,
			fmt.Sprintf("chapter %s is not tracked; run extract first", key))
	}
	return ch, nil
}

// sourceSegments lists the source segment files for a chapter prefix,
// sorted by name so segment order matches reading order.
func (s *Service) sourceSegments(prefix string) ([]string, error) {
	pattern := filepath.Join(s.layout.SourceSegmentsDir(), prefix+"_seg*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, WrapError(err, ErrFileRead, "failed to list source segments")
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *Service) translatedSegments(prefix string) ([]string, error) {
	pattern := filepath.Join(s.layout.TranslatedSegmentsDir(), prefix+"_seg*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, WrapError(err, ErrFileRead, "failed to list translated segments")
	}
	sort.Strings(matches)
	return matches, nil
}

// hasRealContent reports whether any of the given files holds actual
// translated text. Comment headers and whitespace do not count, so a
// directory of untouched placeholders reads as empty.
func hasRealContent(paths []string) bool {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if strings.TrimSpace(textutil.StripCommentHeader(string(data))) != "" {
			return true
		}
	}
	return false
}

func removeFiles(paths []string) error {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return WrapError(err, ErrFileWrite, fmt.Sprintf("failed to remove %s", filepath.Base(p)))
		}
	}
	return nil
}
