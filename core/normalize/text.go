package normalize

import (
	"fmt"

	"jaytaylor.com/html2text"
)

// htmlToText renders an HTML fragment as plain text with one block per line.
func htmlToText(html string) (string, error) {
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: false})
	if err != nil {
		return "", fmt.Errorf("converting HTML to text: %w", err)
	}
	return text, nil
}
