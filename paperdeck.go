// Package paperdeck converts academic papers into slide-deck plans.
//
// The pipeline is extractive end to end: segment the paper into
// canonical sections, distill each section's prose into bullets through
// a fixed filter cascade, associate extracted figures with visual
// sections, and window the results into slides. An optional generative
// enhancer can improve titles, bullets, and narration, but every one of
// its failures falls back to the rule-based output, so conversion works
// identically with no model reachable.
package paperdeck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bgrellier/paperdeck/bullets"
	"github.com/bgrellier/paperdeck/enhance"
	"github.com/bgrellier/paperdeck/figures"
	"github.com/bgrellier/paperdeck/ingest"
	"github.com/bgrellier/paperdeck/llm"
	"github.com/bgrellier/paperdeck/plan"
	"github.com/bgrellier/paperdeck/section"
	"github.com/bgrellier/paperdeck/store"
)

// SectionPlan is the per-section summary carried alongside the slides.
type SectionPlan struct {
	Name    string   `json:"name"`  // canonical section name
	Title   string   `json:"title"` // display title used on slides
	Bullets []string `json:"bullets"`
	Insight string   `json:"insight,omitempty"`
	Images  int      `json:"images"`
	Pages   []int    `json:"pages,omitempty"`
}

// Deck is a finished slide-deck plan.
type Deck struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Sections []SectionPlan `json:"sections"`
	Slides   []plan.Slide  `json:"slides"`
}

// BulletCount returns the total number of bullets across all slides.
func (d *Deck) BulletCount() int {
	n := 0
	for _, s := range d.Slides {
		n += len(s.Bullets)
	}
	return n
}

// Pipeline is the conversion engine. It is safe to reuse across
// documents; per-document state (the figure allocator, dedup sets) lives
// per call.
type Pipeline struct {
	cfg       Config
	log       *slog.Logger
	ingestors *ingest.Registry
	enhancer  enhance.Enhancer
	bullets   *bullets.Pipeline
	planCfg   plan.Config
	st        *store.Store
}

// New creates a Pipeline from configuration. The store is opened when
// DBPath is set; the generative enhancer is built when Enhance.Provider
// is set. Neither is required.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		log:       slog.Default().With("component", "paperdeck"),
		ingestors: ingest.NewRegistry(cfg.ExtractFigures, cfg.FigureDir),
		enhancer:  enhance.Noop{},
		bullets: bullets.New(bullets.Config{
			MinSentenceWords: cfg.MinSentenceWords,
			MaxSentenceWords: cfg.MaxSentenceWords,
			MinWords:         cfg.MinBulletWords,
			MaxWords:         cfg.MaxBulletWords,
			OverlapThreshold: cfg.OverlapThreshold,
		}),
		planCfg: plan.Config{
			BulletsPerSlide: cfg.BulletsPerSlide,
			ImagesPerSlide:  cfg.ImagesPerSlide,
		},
	}

	if cfg.Enhance.Provider != "" {
		provider, err := llm.NewProvider(cfg.Enhance)
		if err != nil {
			return nil, fmt.Errorf("creating enhancer: %w", err)
		}
		p.enhancer = enhance.NewGenerative(provider, cfg.Enhance.Model)
	}

	if cfg.DBPath != "" {
		st, err := store.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		p.st = st
	}

	return p, nil
}

// Close releases the pipeline's resources.
func (p *Pipeline) Close() error {
	if p.st != nil {
		return p.st.Close()
	}
	return nil
}

// Convert ingests the document at path and produces a deck plan. When a
// store is configured and the file content is unchanged since the last
// run, the cached deck is returned without re-processing.
func (p *Pipeline) Convert(ctx context.Context, path string) (*Deck, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	ingestor, err := p.ingestors.Get(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}

	hash, err := fileHash(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestFailed, err)
	}

	if cached := p.cachedDeck(ctx, path, hash); cached != nil {
		p.log.Info("returning cached deck", "path", path, "deck_id", cached.ID)
		return cached, nil
	}

	paper, err := ingestor.Ingest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestFailed, err)
	}

	pagesText := paper.PagesText()
	if strings.TrimSpace(strings.Join(pagesText, "")) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, path)
	}

	title := p.deckTitle(ctx, paper, path)
	deck := p.planDeck(ctx, pagesText, paper.PagesImages(), title, true)
	deck.ID = uuid.NewString()

	p.log.Info("converted document",
		"path", path,
		"method", paper.Method,
		"sections", len(deck.Sections),
		"slides", len(deck.Slides),
		"bullets", deck.BulletCount())

	p.persist(ctx, path, ext, hash, paper.Method, deck)
	return deck, nil
}

// PlanPages runs the planning core on already-extracted pages. It is
// pure with respect to the filesystem: image paths are taken at face
// value and nothing is persisted. An empty title falls back to a
// first-page heuristic.
func (p *Pipeline) PlanPages(ctx context.Context, pagesText []string, pagesImages map[int][]ingest.Image, title string) *Deck {
	if title == "" && len(pagesText) > 0 {
		title = titleFromFirstPage(pagesText[0])
	}
	return p.planDeck(ctx, pagesText, pagesImages, title, false)
}

// planDeck is the section loop shared by Convert and PlanPages. verify
// gates the on-disk existence check for figure paths.
func (p *Pipeline) planDeck(ctx context.Context, pagesText []string, pagesImages map[int][]ingest.Image, title string, verify bool) *Deck {
	deck := &Deck{Title: title}

	alloc := figures.NewAllocator()
	if verify {
		alloc.Stat = func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		}
	}

	secs := section.Split(pagesText, section.Config{MinChars: p.cfg.MinSectionChars})
	for i := range secs {
		sec := &secs[i]
		if section.Skippable(sec.RawTitle) {
			continue
		}

		text := sec.Text
		if p.cfg.MaxSectionChars > 0 && len(text) > p.cfg.MaxSectionChars {
			text = text[:p.cfg.MaxSectionChars]
		}

		target := p.cfg.targetFor(sec.Title)
		kept := p.sectionBullets(ctx, sec, text, target)
		if len(kept) == 0 {
			continue
		}

		imgs := alloc.Select(sec, pagesImages, p.cfg.MaxImagesPerSection)
		for i := range imgs {
			if imgs[i].Caption == "" {
				imgs[i].Caption = figures.DefaultCaption(sec.Title)
			}
		}
		insight := keyInsight(text, kept)
		display := section.Display(sec.Title)

		slides := plan.Build(display, sec.Title, kept, imgs, insight, p.planCfg)
		if p.cfg.Narration {
			p.narrate(ctx, slides)
		}

		deck.Sections = append(deck.Sections, SectionPlan{
			Name:    sec.Title,
			Title:   display,
			Bullets: kept,
			Insight: insight,
			Images:  len(imgs),
			Pages:   sec.Pages,
		})
		deck.Slides = append(deck.Slides, slides...)
	}

	return deck
}

// sectionBullets produces a section's bullets, preferring the enhancer
// when one is configured. Enhancer output still passes through the
// dedup, length, and low-signal gates; if nothing survives, or the
// enhancer fails, the extractive cascade runs instead.
func (p *Pipeline) sectionBullets(ctx context.Context, sec *section.Section, text string, target int) []string {
	generated, err := p.enhancer.Bullets(ctx, section.Display(sec.Title), text, target)
	if err != nil {
		p.log.Warn("bullet enhancement failed, using extractive output",
			"section", sec.Title, "error", err)
	} else if len(generated) > 0 {
		if kept := p.bullets.Finalize(generated, target); len(kept) > 0 {
			return kept
		}
	}

	sentences := bullets.ExtractSentences(text, p.cfg.MinSentenceWords, p.cfg.MaxSentenceWords)
	return p.bullets.Run(sentences, target)
}

// narrate fills speaker notes for each slide, paraphrasing through the
// enhancer when one is configured.
func (p *Pipeline) narrate(ctx context.Context, slides []plan.Slide) {
	for i := range slides {
		s := &slides[i]
		notes := enhance.Narrate(s.Title, s.Section, s.Bullets, len(s.Images) > 0)
		if para, err := p.enhancer.Narration(ctx, notes); err != nil {
			p.log.Warn("narration enhancement failed, keeping template", "slide", s.Title, "error", err)
		} else if para != "" {
			notes = para
		}
		s.Notes = notes
	}
}

// deckTitle resolves the deck title: enhancer first, then document
// metadata, then the first-page heuristic, then the filename stem.
func (p *Pipeline) deckTitle(ctx context.Context, paper *ingest.Paper, path string) string {
	if len(paper.Pages) > 0 {
		if t, err := p.enhancer.Title(ctx, paper.Pages[0].Text); err != nil {
			p.log.Warn("title enhancement failed", "error", err)
		} else if t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(paper.Title); t != "" {
		return t
	}
	if len(paper.Pages) > 0 {
		if t := titleFromFirstPage(paper.Pages[0].Text); t != "" {
			return t
		}
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ReplaceAll(stem, "_", " ")
}

// titleFromFirstPage guesses the paper title: the first non-empty line
// of reasonable length that is not itself a section heading.
func titleFromFirstPage(firstPage string) string {
	for _, raw := range strings.Split(firstPage, "\n") {
		line := strings.TrimSpace(raw)
		if len(line) < 10 || len(line) > 200 {
			continue
		}
		if section.IsHeading(line) {
			continue
		}
		return line
	}
	return ""
}

// cachedDeck returns the stored deck for path when its content hash is
// unchanged, or nil.
func (p *Pipeline) cachedDeck(ctx context.Context, path, hash string) *Deck {
	if p.st == nil {
		return nil
	}
	doc, err := p.st.GetDocumentByPath(ctx, path)
	if err != nil || doc.ContentHash != hash || doc.Status != store.StatusConverted {
		return nil
	}
	stored, err := p.st.LatestDeck(ctx, doc.ID)
	if err != nil {
		return nil
	}
	deck := &Deck{ID: stored.ID, Title: stored.Title}
	if err := json.Unmarshal([]byte(stored.Plan), &deck.Slides); err != nil {
		return nil
	}
	if stored.Sections != "" {
		if err := json.Unmarshal([]byte(stored.Sections), &deck.Sections); err != nil {
			return nil
		}
	}
	return deck
}

// persist records the document and deck. Store failures are logged, not
// fatal: the cache is an optimization, never a requirement.
func (p *Pipeline) persist(ctx context.Context, path, ext, hash, method string, deck *Deck) {
	if p.st == nil {
		return
	}

	docID, err := p.st.UpsertDocument(ctx, store.Document{
		Path:         path,
		Filename:     filepath.Base(path),
		Format:       ext,
		ContentHash:  hash,
		IngestMethod: method,
		Title:        deck.Title,
		Status:       store.StatusConverted,
	})
	if err != nil {
		p.log.Warn("storing document failed", "path", path, "error", err)
		return
	}

	planJSON, err := json.Marshal(deck.Slides)
	if err != nil {
		p.log.Warn("encoding deck failed", "deck_id", deck.ID, "error", err)
		return
	}
	secJSON, err := json.Marshal(deck.Sections)
	if err != nil {
		p.log.Warn("encoding sections failed", "deck_id", deck.ID, "error", err)
		return
	}

	if err := p.st.SaveDeck(ctx, store.Deck{
		ID:          deck.ID,
		DocumentID:  docID,
		Title:       deck.Title,
		Plan:        string(planJSON),
		Sections:    string(secJSON),
		SlideCount:  len(deck.Slides),
		BulletCount: deck.BulletCount(),
	}); err != nil {
		p.log.Warn("storing deck failed", "deck_id", deck.ID, "error", err)
	}
}

// Store exposes the underlying run store, or nil when none is
// configured. The HTTP server uses it for listing endpoints.
func (p *Pipeline) Store() *store.Store { return p.st }

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
