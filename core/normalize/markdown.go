package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	headingMarker = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasis      = regexp.MustCompile(`\*{1,3}([^*\n]+)\*{1,3}`)
	underscores   = regexp.MustCompile(`\b_{1,3}([^_\n]+)_{1,3}\b`)
	mdLink        = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	listMarker    = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	quoteMarker   = regexp.MustCompile(`(?m)^\s*>\s?`)
	tableRule     = regexp.MustCompile(`(?m)^\|?[-:| ]+\|?$`)
)

// markdownToText converts an HTML fragment to Markdown, then strips the
// Markdown syntax so only the visible words remain.
func markdownToText(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return stripMarkdown(md), nil
}

func stripMarkdown(md string) string {
	text := strings.ReplaceAll(md, "```", "")
	text = headingMarker.ReplaceAllString(text, "")
	text = mdLink.ReplaceAllString(text, "$1")
	text = emphasis.ReplaceAllString(text, "$1")
	text = underscores.ReplaceAllString(text, "$1")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = listMarker.ReplaceAllString(text, "")
	text = quoteMarker.ReplaceAllString(text, "")
	text = tableRule.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "|", " ")
	return strings.TrimSpace(text)
}
