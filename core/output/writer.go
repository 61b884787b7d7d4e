// Package output handles file naming and writing for lexipipe artifacts.
// Every artifact of one run shares a stem: the user's label, or one derived
// from the URL (e.g. example_com_docs_intro.csv).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <stem><ext> and returns the written path. An existing
// file is replaced.
func (w *Writer) Write(stem string, data []byte, ext string) (string, error) {
	stem = sanitize(stem)
	if stem == "" {
		return "", fmt.Errorf("empty output name")
	}
	path := filepath.Join(w.OutputDir, stem+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Stem picks the artifact name for a run: the label when given, else one
// derived from the URL.
func Stem(label, rawURL string) string {
	if s := sanitize(label); s != "" {
		return s
	}
	return StemFromURL(rawURL)
}

// StemFromURL converts a URL into a flat file stem.
// Example: https://example.com/docs/intro → example_com_docs_intro
func StemFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			if s := sanitize(seg); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces anything but letters, digits, '-' and '_' with
// underscores and trims them from both ends. Non-ASCII letters are kept so
// labels like "Grüße" survive.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(s) {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
