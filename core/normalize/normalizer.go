// Package normalize implements the Cleaner interface.
// It turns a fetched document into plain text: markup is stripped through an
// Extractor and then converted either directly to text (html2text) or via
// Markdown (html-to-markdown) whose syntax is then removed.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/extract"
)

// Mode selects the HTML conversion strategy.
type Mode string

const (
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
)

// ParseMode accepts "text" or "markdown"; empty means text.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeText:
		return ModeText, nil
	case ModeMarkdown:
		return ModeMarkdown, nil
	}
	return "", fmt.Errorf("unknown clean mode %q (want text or markdown)", s)
}

// Normalizer implements core.Cleaner.
type Normalizer struct {
	mode        Mode
	extractor   core.Extractor
	stripDigits bool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMode picks the HTML conversion strategy.
func WithMode(m Mode) Option {
	return func(n *Normalizer) { n.mode = m }
}

// WithStripDigits drops whitespace-delimited chunks that contain a digit.
func WithStripDigits(v bool) Option {
	return func(n *Normalizer) { n.stripDigits = v }
}

// New creates a Normalizer in text mode.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		mode:      ModeText,
		extractor: extract.New(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name returns the conversion mode.
func (n *Normalizer) Name() string { return string(n.mode) }

// Clean converts doc into plain text. Non-HTML documents skip markup handling.
func (n *Normalizer) Clean(doc *core.Document) (string, error) {
	text := doc.Body
	if doc.IsHTML() {
		content, err := n.extractor.Extract(doc.Body)
		if err != nil {
			return "", fmt.Errorf("extract: %w", err)
		}
		switch n.mode {
		case ModeMarkdown:
			text, err = markdownToText(content)
		default:
			text, err = htmlToText(content)
		}
		if err != nil {
			return "", err
		}
	}

	text = Collapse(norm.NFC.String(text))
	if n.stripDigits {
		text = StripDigitTokens(text)
	}
	return text, nil
}

var spaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// Collapse trims every line, squeezes inner whitespace, and removes lines
// without a letter or digit. Remaining lines are joined with "\n".
func Collapse(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if !strings.ContainsFunc(line, isWordRune) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// StripDigitTokens removes every whitespace-delimited chunk containing a digit.
func StripDigitTokens(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		fields := strings.Fields(line)
		kept := fields[:0]
		for _, f := range fields {
			if !strings.ContainsFunc(f, unicode.IsDigit) {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			out = append(out, strings.Join(kept, " "))
		}
	}
	return strings.Join(out, "\n")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
