package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgrellier/paperdeck"
	"github.com/bgrellier/paperdeck/export"
)

var (
	flagOutput      string
	flagFormats     []string
	flagNoFigures   bool
	flagFigDir      string
	flagNoNarration bool
	flagProvider    string
	flagModel       string
	flagBaseURL     string
)

var convertCmd = &cobra.Command{
	Use:   "convert <paper>",
	Short: "Convert a paper into a slide-deck plan",
	Long: `Convert ingests a PDF or text file, plans a slide deck from its
sections, and writes the result in one or more formats (md, html, xlsx,
json). With --llm, bullets and narration are rewritten by a language
model; without it the pipeline is fully extractive and offline.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output basename (default: input stem)")
	convertCmd.Flags().StringSliceVar(&flagFormats, "format", []string{"md"}, "output formats: md, html, xlsx, json")
	convertCmd.Flags().BoolVar(&flagNoFigures, "no-figures", false, "skip figure extraction")
	convertCmd.Flags().StringVar(&flagFigDir, "fig-dir", "", "directory for extracted figures")
	convertCmd.Flags().BoolVar(&flagNoNarration, "no-narration", false, "skip speaker-note generation")
	convertCmd.Flags().StringVar(&flagProvider, "llm", "", "generative enhancer provider (ollama, lmstudio, openai, custom)")
	convertCmd.Flags().StringVar(&flagModel, "model", "", "generative enhancer model")
	convertCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "generative enhancer base URL")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagNoFigures {
		cfg.ExtractFigures = false
	}
	if flagFigDir != "" {
		cfg.FigureDir = flagFigDir
	}
	if flagNoNarration {
		cfg.Narration = false
	}
	if flagProvider != "" {
		cfg.Enhance.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.Enhance.Model = flagModel
	}
	if flagBaseURL != "" {
		cfg.Enhance.BaseURL = flagBaseURL
	}
	if cfg.Enhance.Provider == "openai" && cfg.Enhance.APIKey == "" {
		cfg.Enhance.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	pipeline, err := paperdeck.New(cfg)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	deck, err := pipeline.Convert(cmd.Context(), input)
	if err != nil {
		return err
	}
	if len(deck.Slides) == 0 {
		return fmt.Errorf("%w: no sections survived filtering", paperdeck.ErrNoContent)
	}

	base := flagOutput
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	for _, format := range flagFormats {
		var (
			out string
			err error
		)
		switch strings.ToLower(format) {
		case "md", "markdown":
			out = base + ".md"
			err = export.SaveMarkdown(out, deck)
		case "html":
			out = base + ".html"
			err = export.SaveHTML(out, deck)
		case "xlsx":
			out = base + ".xlsx"
			err = export.SaveXLSX(out, deck)
		case "json":
			out = base + ".json"
			var data []byte
			if data, err = json.MarshalIndent(deck, "", "  "); err == nil {
				err = os.WriteFile(out, data, 0o644)
			}
		default:
			return fmt.Errorf("unknown output format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", format, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d sections, %d slides, %d bullets\n",
		len(deck.Sections), len(deck.Slides), deck.BulletCount())
	return nil
}
