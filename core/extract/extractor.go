// Package extract implements the Extractor interface.
// It isolates the readable content of an HTML page by:
//  1. Removing non-content elements (scripts, styles, navigation, headers, footers, forms, media)
//  2. Dropping link targets so URLs never reach the tokenizer
//  3. Returning the best content container (<main>, <article>, or <body>)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before extraction. None of them carry prose.
var noiseSelectors = []string{
	"head", "script", "style", "noscript", "template",
	"nav", "header", "footer", "aside",
	"img", "picture", "figure", "svg", "canvas",
	"iframe", "video", "audio", "object", "embed",
	"form", "button", "input", "select", "textarea",
	"[aria-hidden=true]", "[hidden]",
	".sidebar", ".menu", ".navigation", ".nav", ".breadcrumb", ".cookie-banner",
	".ads", ".advertisement",
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct {
	extraNoise []string
}

// New creates an HTMLExtractor. extraNoise adds CSS selectors to strip on top
// of the built-in list.
func New(extraNoise ...string) *HTMLExtractor {
	return &HTMLExtractor{extraNoise: extraNoise}
}

// Extract parses html and returns the cleaned HTML of its content container.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, sel := range e.extraNoise {
		doc.Find(sel).Remove()
	}

	// Keep anchor text, lose the target.
	doc.Find("a[href]").RemoveAttr("href")

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

// Title returns the trimmed <title> text, or "" when absent.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
