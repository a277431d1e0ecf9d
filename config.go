package paperdeck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bgrellier/paperdeck/llm"
	"github.com/bgrellier/paperdeck/section"
)

// Config holds all configuration for the paperdeck pipeline. The
// threshold fields are presentation-style tuning knobs; none of them is
// derived from document structure.
type Config struct {
	// Segmentation
	MinSectionChars int `json:"min_section_chars" toml:"min_section_chars"` // drop shorter sections (abstract/conclusion exempt)
	MaxSectionChars int `json:"max_section_chars" toml:"max_section_chars"` // cap on section text fed to extraction

	// Sentence extraction (coarse screen)
	MinSentenceWords int `json:"min_sentence_words" toml:"min_sentence_words"`
	MaxSentenceWords int `json:"max_sentence_words" toml:"max_sentence_words"`

	// Bullet pipeline
	MinBulletWords   int     `json:"min_bullet_words" toml:"min_bullet_words"`
	MaxBulletWords   int     `json:"max_bullet_words" toml:"max_bullet_words"`
	OverlapThreshold float64 `json:"overlap_threshold" toml:"overlap_threshold"` // near-duplicate token overlap

	// SectionTargets is the per-canonical-section bullet budget.
	// Sections not listed fall back to DefaultTarget.
	SectionTargets map[string]int `json:"section_targets" toml:"section_targets"`
	DefaultTarget  int            `json:"default_target" toml:"default_target"`

	// Slide planning
	BulletsPerSlide     int `json:"bullets_per_slide" toml:"bullets_per_slide"`
	ImagesPerSlide      int `json:"images_per_slide" toml:"images_per_slide"`
	MaxImagesPerSection int `json:"max_images_per_section" toml:"max_images_per_section"`

	// Ingestion
	ExtractFigures bool   `json:"extract_figures" toml:"extract_figures"` // use the MuPDF engine and pull figure images
	FigureDir      string `json:"figure_dir" toml:"figure_dir"`           // where figure files are written

	// Narration adds template speaker notes to every slide.
	Narration bool `json:"narration" toml:"narration"`

	// DBPath enables the run cache when non-empty: converting an
	// unchanged file returns the stored deck.
	DBPath string `json:"db_path" toml:"db_path"`

	// Enhance configures the optional generative path. An empty
	// Provider leaves it off; the extractive pipeline never needs it.
	Enhance llm.Config `json:"enhance" toml:"enhance"`
}

// DefaultConfig returns a Config with the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinSectionChars:  50,
		MaxSectionChars:  12000,
		MinSentenceWords: 8,
		MaxSentenceWords: 80,
		MinBulletWords:   6,
		MaxBulletWords:   60,
		OverlapThreshold: 0.7,
		SectionTargets: map[string]int{
			section.Abstract:     4,
			section.Introduction: 6,
			section.Background:   4,
			section.RelatedWork:  4,
			section.Method:       8,
			section.Experiments:  6,
			section.Results:      6,
			section.Conclusion:   4,
		},
		DefaultTarget:       15,
		BulletsPerSlide:     6,
		ImagesPerSlide:      2,
		MaxImagesPerSection: 2,
		ExtractFigures:      true,
		FigureDir:           "paperdeck_figs",
		Narration:           true,
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.MinBulletWords > c.MaxBulletWords {
		return fmt.Errorf("%w: min_bullet_words > max_bullet_words", ErrInvalidConfig)
	}
	if c.MinSentenceWords > c.MaxSentenceWords {
		return fmt.Errorf("%w: min_sentence_words > max_sentence_words", ErrInvalidConfig)
	}
	if c.OverlapThreshold < 0 || c.OverlapThreshold > 1 {
		return fmt.Errorf("%w: overlap_threshold outside [0,1]", ErrInvalidConfig)
	}
	return nil
}

// targetFor returns the bullet budget for a canonical section name.
func (c *Config) targetFor(name string) int {
	if t, ok := c.SectionTargets[name]; ok {
		return t
	}
	if c.DefaultTarget > 0 {
		return c.DefaultTarget
	}
	return DefaultConfig().DefaultTarget
}

// LoadConfig reads a JSON or TOML config file, by extension, on top of
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing JSON config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
