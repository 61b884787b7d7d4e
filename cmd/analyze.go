// Package cmd — analyze command.
// This is the main command that orchestrates the pipeline:
// fetch → clean → tokenize → count → classify → render → write.
package cmd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/fetch"
	"github.com/gaurav-prasanna/lexipipe/core/lemma"
	"github.com/gaurav-prasanna/lexipipe/core/level"
	"github.com/gaurav-prasanna/lexipipe/core/normalize"
	"github.com/gaurav-prasanna/lexipipe/core/output"
	"github.com/gaurav-prasanna/lexipipe/core/pipeline"
	"github.com/gaurav-prasanna/lexipipe/core/render"
	"github.com/gaurav-prasanna/lexipipe/core/tokenize"
)

// Flag variables that are not config keys.
var (
	flagLevel    string
	flagLabel    string
	flagAll      bool
	flagCSV      bool
	flagMarkdown bool
	flagPDF      bool
	flagJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Count word frequencies on a page and filter them by CEFR level",
	Long: `Analyze fetches a web page, strips markup, tokenizes the text, counts word
frequencies and prints the most frequent words. With --level, words are looked
up in the CEFR reference tables and only words at or above that level are kept;
words missing from the tables count as C2.

Examples:
  lexipipe analyze https://de.wikipedia.org/wiki/Hund --csv
  lexipipe analyze https://example.com --level B1 --noun nouns.csv --adj adj.csv --verb verbs.csv
  lexipipe analyze https://example.com --mode linguistic --pos NOUN --model prose --markdown
  lexipipe analyze https://example.com --all --max-pages 20 --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	f := analyzeCmd.Flags()

	// Pipeline flags, bound to config keys.
	f.String("mode", "pattern", "Tokenization mode: pattern or linguistic")
	f.String("pos", "", "Part of speech to keep in linguistic mode: NOUN, ADJ or VERB")
	f.String("clean", "text", "HTML cleaning strategy: text or markdown")
	f.Bool("strip-digits", false, "Drop words that contain digits")
	f.String("model", "prose", `Linguistic model: "prose" or "lexicon:<path.csv>"`)
	f.String("language", "", "Snowball language used to stem words a lexicon model does not know (e.g. german)")
	f.String("noun", "", "CEFR reference CSV for nouns")
	f.String("adj", "", "CEFR reference CSV for adjectives")
	f.String("verb", "", "CEFR reference CSV for verbs")
	f.Int("top", 20, "Rows to preview (0 shows all)")
	f.Duration("timeout", 0, "HTTP timeout per page (default from config, 30s)")
	f.Int("max-pages", 100, "Page limit with --all")
	f.Int("workers", 4, "Concurrent page fetches with --all")
	f.Float64("rps", 2, "Page fetches per second with --all (0 disables the limit)")

	for key, name := range map[string]string{
		"tokenize.mode":      "mode",
		"tokenize.pos":       "pos",
		"clean.mode":         "clean",
		"clean.strip_digits": "strip-digits",
		"lemma.model":        "model",
		"lemma.language":     "language",
		"reference.noun":     "noun",
		"reference.adj":      "adj",
		"reference.verb":     "verb",
		"output.preview":     "top",
		"fetch.timeout":      "timeout",
		"site.max_pages":     "max-pages",
		"site.workers":       "workers",
		"site.rps":           "rps",
	} {
		mustBind(key, f.Lookup(name))
	}

	f.StringVar(&flagLevel, "level", "", "Keep only words at or above this CEFR level (A1..C2)")
	f.StringVar(&flagLabel, "label", "", "Name for exported files (default: derived from the URL)")
	f.BoolVar(&flagAll, "all", false, "Analyze every discovered page of the site and merge the counts")

	// Output format flags; any combination is allowed.
	f.BoolVar(&flagCSV, "csv", false, "Write <label>.csv")
	f.BoolVar(&flagMarkdown, "markdown", false, "Write a Markdown report with a bar chart")
	f.BoolVar(&flagPDF, "pdf", false, "Write a PDF bar chart")
	f.BoolVar(&flagJSON, "json", false, "Write the full result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	req, err := buildRequest(rawURL)
	if err != nil {
		return err
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}

	run := p.Run
	if flagAll {
		fmt.Fprintf(cmd.OutOrStdout(), "Discovering pages from %s...\n", rawURL)
		run = p.RunSite
	}
	report, runErr := run(context.Background(), req)
	if report == nil {
		return runErr
	}
	report.Label = output.Stem(flagLabel, rawURL)

	preview, err := render.NewTableRenderer().Render(report)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tokens, %d distinct words\n",
		rawURL, report.Table.Total(), report.Table.Len())
	if runErr != nil {
		// Classification failed; the unleveled table is still shown.
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v (showing unleveled table)\n", runErr)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(preview))

	if err := writeArtifacts(cmd, report); err != nil {
		return err
	}
	return runErr
}

// buildRequest turns flags and config into a pipeline request.
func buildRequest(rawURL string) (pipeline.Request, error) {
	mode, err := tokenize.ParseMode(cfg.Tokenize.Mode)
	if err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{
		URL:     rawURL,
		Mode:    mode,
		Label:   flagLabel,
		Preview: cfg.Output.Preview,
	}

	if cfg.Tokenize.POS != "" {
		pos, ok := core.ParsePOS(cfg.Tokenize.POS)
		if !ok {
			return pipeline.Request{}, fmt.Errorf("unknown part of speech %q (want NOUN, ADJ or VERB)", cfg.Tokenize.POS)
		}
		if mode == tokenize.ModePattern {
			logger.Warn("part of speech is ignored in pattern mode", "pos", pos)
		}
		req.POS = pos
	}

	if flagLevel != "" {
		l, err := core.ParseLevel(flagLevel)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Level = l
	}
	return req, nil
}

// buildPipeline wires the stages from config.
func buildPipeline() (*pipeline.Pipeline, error) {
	cleanMode, err := normalize.ParseMode(cfg.Clean.Mode)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.NewCached(fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
		fetch.WithLogger(logger),
	), nil)

	return pipeline.New(
		pipeline.WithFetcher(fetcher),
		pipeline.WithCleaner(normalize.New(
			normalize.WithMode(cleanMode),
			normalize.WithStripDigits(cfg.Clean.StripDigits),
		)),
		pipeline.WithModel(lemma.NewLoader(cfg.Lemma.Language, nil), cfg.Lemma.Model),
		pipeline.WithReferences(level.NewLoader(cfg.Reference, nil)),
		pipeline.WithChunkSize(cfg.Tokenize.ChunkSize),
		pipeline.WithWorkers(cfg.Site.Workers),
		pipeline.WithRateLimit(cfg.Site.RPS),
		pipeline.WithMaxPages(cfg.Site.MaxPages),
		pipeline.WithLogger(logger),
	), nil
}

// selectRenderers returns the renderers picked by the format flags.
func selectRenderers() []core.Renderer {
	var out []core.Renderer
	if flagCSV {
		out = append(out, render.NewCSVRenderer())
	}
	if flagMarkdown {
		out = append(out, render.NewMarkdownRenderer())
	}
	if flagPDF {
		out = append(out, render.NewPDFRenderer())
	}
	if flagJSON {
		out = append(out, render.NewJSONRenderer())
	}
	return out
}

// writeArtifacts renders and writes every selected format.
func writeArtifacts(cmd *cobra.Command, report *core.Report) error {
	renderers := selectRenderers()
	if len(renderers) == 0 {
		return nil
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	for _, r := range renderers {
		data, err := r.Render(report)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.Extension(), err)
		}
		path, err := writer.Write(report.Label, data, r.Extension())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	return nil
}
