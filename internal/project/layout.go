// Package project defines the on-disk shape of a translation project:
// the workflow-stage directories, file naming rules, and the per-project
// configuration file.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Layout resolves the workflow-stage directories of one project.
// Directory names embed the source and target language codes, e.g.
// 01_en_chapters and 03_ro_segments for an en -> ro project.
type Layout struct {
	Root   string
	source string
	target string
}

// NewLayout creates a layout rooted at dir for the given language codes.
func NewLayout(dir, sourceLang, targetLang string) *Layout {
	return &Layout{
		Root:   dir,
		source: strings.ToLower(sourceLang),
		target: strings.ToLower(targetLang),
	}
}

func (l *Layout) SourceBookDir() string {
	return filepath.Join(l.Root, fmt.Sprintf("00_%s_full_epub", l.source))
}

func (l *Layout) ChaptersDir() string {
	return filepath.Join(l.Root, fmt.Sprintf("01_%s_chapters", l.source))
}

func (l *Layout) SourceSegmentsDir() string {
	return filepath.Join(l.Root, fmt.Sprintf("02_%s_segments", l.source))
}

func (l *Layout) TranslatedSegmentsDir() string {
	return filepath.Join(l.Root, fmt.Sprintf("03_%s_segments", l.target))
}

func (l *Layout) TranslatedChaptersDir() string {
	return filepath.Join(l.Root, fmt.Sprintf("04_%s_chapters", l.target))
}

func (l *Layout) FinalOutputDir() string {
	return filepath.Join(l.Root, fmt.Sprintf("05_%s_full_book", l.target))
}

func (l *Layout) TrackingDir() string {
	return filepath.Join(l.Root, "06_tracking")
}

func (l *Layout) BackupDir() string {
	return filepath.Join(l.Root, "07_backup")
}

func (l *Layout) StatisticsDir() string {
	return filepath.Join(l.TrackingDir(), "statistics")
}

func (l *Layout) LedgerPath() string {
	return filepath.Join(l.TrackingDir(), "translation_log.json")
}

func (l *Layout) ConfigPath() string {
	return filepath.Join(l.Root, "translation_config.yaml")
}

// All returns every stage directory in workflow order.
func (l *Layout) All() []string {
	return []string{
		l.SourceBookDir(),
		l.ChaptersDir(),
		l.SourceSegmentsDir(),
		l.TranslatedSegmentsDir(),
		l.TranslatedChaptersDir(),
		l.FinalOutputDir(),
		l.TrackingDir(),
		l.BackupDir(),
	}
}

// Create makes every stage directory, including the statistics subdir.
func (l *Layout) Create() error {
	for _, dir := range append(l.All(), l.StatisticsDir()) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Validate checks that every stage directory exists. A missing directory
// is fatal; callers should suggest running init.
func (l *Layout) Validate() error {
	var missing []string
	for _, dir := range l.All() {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			missing = append(missing, filepath.Base(dir))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing project directories: %s (run init first)",
			strings.Join(missing, ", "))
	}
	return nil
}
