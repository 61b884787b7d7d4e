// Package pipeline wires the stages together:
// fetch → clean → tokenize → count → classify.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/count"
	"github.com/gaurav-prasanna/lexipipe/core/extract"
	"github.com/gaurav-prasanna/lexipipe/core/fetch"
	"github.com/gaurav-prasanna/lexipipe/core/lemma"
	"github.com/gaurav-prasanna/lexipipe/core/level"
	"github.com/gaurav-prasanna/lexipipe/core/normalize"
	"github.com/gaurav-prasanna/lexipipe/core/tokenize"
	"github.com/gaurav-prasanna/lexipipe/crawl"
)

const (
	defaultModel     = lemma.ProseModelName
	defaultChunkSize = 2000
	defaultWorkers   = 4
)

// Request describes one analysis run.
type Request struct {
	URL   string
	Mode  tokenize.Mode
	POS   core.POS   // linguistic mode only; empty keeps every word
	Level core.Level // empty skips classification
	Label string
	// Preview is how many rows renderers show; zero shows all.
	Preview int
}

// Pipeline runs requests against injected stages. Caches live in the
// fetcher and loaders, so reusing a Pipeline reuses them.
type Pipeline struct {
	fetcher   core.Fetcher
	cleaner   core.Cleaner
	models    *lemma.Loader
	model     string
	refs      *level.Loader
	chunkSize int
	workers   int
	limiter   *rate.Limiter
	maxPages  int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFetcher sets the fetcher. Wrap it in fetch.NewCached to memoize pages.
func WithFetcher(f core.Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithCleaner sets the cleaner.
func WithCleaner(c core.Cleaner) Option {
	return func(p *Pipeline) { p.cleaner = c }
}

// WithModel selects the linguistic model by name and the loader that
// resolves it.
func WithModel(loader *lemma.Loader, name string) Option {
	return func(p *Pipeline) {
		if loader != nil {
			p.models = loader
		}
		if name != "" {
			p.model = name
		}
	}
}

// WithReferences sets the CEFR reference loader.
func WithReferences(l *level.Loader) Option {
	return func(p *Pipeline) { p.refs = l }
}

// WithChunkSize bounds how many words go to the lemmatizer at once.
func WithChunkSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithWorkers bounds concurrent page fetches in site mode.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithRateLimit caps page fetches per second in site mode; rps <= 0 disables
// the limit.
func WithRateLimit(rps float64) Option {
	return func(p *Pipeline) {
		if rps > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithMaxPages caps how many pages site mode analyzes.
func WithMaxPages(n int) Option {
	return func(p *Pipeline) { p.maxPages = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline. Stages not provided get defaults: a cached HTTP
// fetcher, a text-mode cleaner, the prose model and no reference files.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		model:     defaultModel,
		chunkSize: defaultChunkSize,
		workers:   defaultWorkers,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.fetcher == nil {
		p.fetcher = fetch.NewCached(fetch.New(fetch.WithLogger(p.logger)), nil)
	}
	if p.cleaner == nil {
		p.cleaner = normalize.New()
	}
	if p.models == nil {
		p.models = lemma.NewLoader("", nil)
	}
	if p.refs == nil {
		p.refs = level.NewLoader(level.Paths{}, nil)
	}
	return p
}

// Run analyzes a single page.
//
// A fetch, clean or model failure returns no report. A classification
// failure returns the unleveled report together with the error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*core.Report, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tok, err := p.tokenizer(req)
	if err != nil {
		return nil, err
	}

	seq, title, err := p.page(ctx, tok, req.URL)
	if err != nil {
		return nil, err
	}

	table := count.Count(seq)
	p.logger.Info("counted words", "url", req.URL, "tokens", table.Total(), "distinct", table.Len())
	return p.finish(req, table, title)
}

// RunSite analyzes every page discovered from req.URL and merges the counts
// into one table. Pages that fail are logged and skipped; the run fails only
// when no page could be analyzed.
func (p *Pipeline) RunSite(ctx context.Context, req Request) (*core.Report, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tok, err := p.tokenizer(req)
	if err != nil {
		return nil, err
	}

	d := crawl.New(p.fetcher,
		crawl.WithMaxPages(p.maxPages),
		crawl.WithLimiter(p.limiter),
		crawl.WithLogger(p.logger),
	)
	urls, err := d.Discover(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	p.logger.Info("discovered pages", "url", req.URL, "pages", len(urls))

	seqs := make([]core.TokenSeq, len(urls))
	titles := make([]string, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, u := range urls {
		g.Go(func() error {
			if err := p.limiter.Wait(gctx); err != nil {
				return err
			}
			seq, title, err := p.page(gctx, tok, u)
			if err != nil {
				if errors.Is(err, core.ErrModelUnavailable) {
					return err
				}
				p.logger.Warn("skipping page", "url", u, "error", err)
				return nil
			}
			seqs[i], titles[i] = seq, title
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analyzed := 0
	for _, s := range seqs {
		if s != nil {
			analyzed++
		}
	}
	if analyzed == 0 {
		return nil, fmt.Errorf("fetch: %w: no page under %s could be analyzed", core.ErrFetch, req.URL)
	}

	// Discovery lists the start page first, so its title wins.
	var title string
	for _, t := range titles {
		if t != "" {
			title = t
			break
		}
	}

	table := count.CountAll(seqs...)
	p.logger.Info("counted words", "url", req.URL, "pages", analyzed, "tokens", table.Total(), "distinct", table.Len())
	return p.finish(req, table, title)
}

// page runs fetch → clean → tokenize for one URL and returns the tokens with
// the page's <title>.
func (p *Pipeline) page(ctx context.Context, tok core.Tokenizer, url string) (core.TokenSeq, string, error) {
	doc, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: %w", err)
	}

	text, err := p.cleaner.Clean(doc)
	if err != nil {
		return nil, "", fmt.Errorf("clean: %w", err)
	}
	p.logger.Debug("cleaned page", "url", url, "mode", p.cleaner.Name(), "chars", len(text))

	seq, err := tok.Tokenize(text)
	if err != nil {
		return nil, "", fmt.Errorf("tokenize: %w", err)
	}

	var title string
	if doc.IsHTML() {
		title = extract.Title(doc.Body)
	}
	return seq, title, nil
}

// tokenizer picks the tokenizer for req, loading the model in linguistic
// mode. Pattern mode never touches the model loader.
func (p *Pipeline) tokenizer(req Request) (core.Tokenizer, error) {
	if req.Mode != tokenize.ModeLinguistic {
		return tokenize.NewPattern(), nil
	}
	lm, err := p.models.Load(p.model)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	p.logger.Debug("loaded model", "model", lm.Name())
	return tokenize.NewLinguistic(lm, req.POS, p.chunkSize), nil
}

// finish builds the report and classifies it when a level was requested.
func (p *Pipeline) finish(req Request, table core.FrequencyTable, title string) (*core.Report, error) {
	mode := req.Mode
	if mode == "" {
		mode = tokenize.ModePattern
	}
	report := &core.Report{
		Label:   req.Label,
		Title:   title,
		URL:     req.URL,
		Mode:    string(mode),
		Table:   table,
		Preview: req.Preview,
	}
	if req.Mode == tokenize.ModeLinguistic {
		report.POS = req.POS
	}
	if req.Level == "" {
		return report, nil
	}

	// Pattern mode has no POS, so it is looked up against every file.
	ref, err := p.refs.For(report.POS)
	if err != nil {
		return report, fmt.Errorf("classify: %w", err)
	}
	rows, err := level.Classify(table, ref, req.Level)
	if err != nil {
		return report, fmt.Errorf("classify: %w", err)
	}
	report.Threshold = req.Level
	report.Rows = rows
	report.Leveled = true
	p.logger.Info("classified words", "threshold", req.Level, "kept", len(rows))
	return report, nil
}

func validate(req Request) error {
	if req.URL == "" {
		return fmt.Errorf("%w: empty URL", core.ErrFetch)
	}
	if req.Level != "" && !req.Level.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidLevel, req.Level)
	}
	return nil
}
