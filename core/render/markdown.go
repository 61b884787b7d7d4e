package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// MarkdownRenderer writes a report with a summary, the preview table and a
// Mermaid bar chart of the previewed words.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds the Markdown document.
func (r *MarkdownRenderer) Render(report *core.Report) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	title := heading(report)
	md.H1(title)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   summaryRows(report),
	})
	md.PlainText("")

	shown := preview(report)
	md.H2(fmt.Sprintf("Top %d words", len(shown)))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: tableHeader(report),
		Rows:   tableRows(report, shown),
	})
	md.PlainText("")

	if len(shown) > 0 {
		md.H2("Frequency chart")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, barChart(title, shown))
		md.PlainText("")
	}

	if err := md.Build(); err != nil {
		return nil, fmt.Errorf("building markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// heading is the page title when known, otherwise the label.
func heading(report *core.Report) string {
	switch {
	case report.Title != "":
		return report.Title
	case report.Label != "":
		return report.Label
	}
	return "Word frequencies"
}

func summaryRows(report *core.Report) [][]string {
	out := [][]string{
		{"Source", report.URL},
		{"Mode", report.Mode},
		{"Tokens", strconv.Itoa(report.Table.Total())},
		{"Distinct words", strconv.Itoa(report.Table.Len())},
	}
	if report.POS != "" {
		out = append(out, []string{"Part of speech", string(report.POS)})
	}
	if report.Leveled {
		out = append(out,
			[]string{"Minimum level", string(report.Threshold)},
			[]string{"Words at or above level", strconv.Itoa(len(report.Rows))},
		)
	}
	return out
}

func tableHeader(report *core.Report) []string {
	if report.Leveled {
		return []string{"Word", "Frequency", "Level"}
	}
	return []string{"Word", "Frequency"}
}

func tableRows(report *core.Report, shown []core.LeveledRow) [][]string {
	out := make([][]string, 0, len(shown))
	for _, row := range shown {
		rec := []string{row.Word, strconv.Itoa(row.Count)}
		if report.Leveled {
			rec = append(rec, string(row.Level))
		}
		out = append(out, rec)
	}
	return out
}

// barChart renders a Mermaid xychart: words on the x axis in table order,
// frequency on the y axis.
func barChart(title string, shown []core.LeveledRow) string {
	labels := make([]string, len(shown))
	values := make([]string, len(shown))
	maxCount := 0
	for i, row := range shown {
		labels[i] = strconv.Quote(row.Word)
		values[i] = strconv.Itoa(row.Count)
		maxCount = max(maxCount, row.Count)
	}

	var b strings.Builder
	b.WriteString("xychart-beta\n")
	fmt.Fprintf(&b, "    title %s\n", strconv.Quote(title))
	fmt.Fprintf(&b, "    x-axis [%s]\n", strings.Join(labels, ", "))
	fmt.Fprintf(&b, "    y-axis \"Frequency\" 0 --> %d\n", maxCount)
	fmt.Fprintf(&b, "    bar [%s]\n", strings.Join(values, ", "))
	return b.String()
}
