package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lexipipe/core"
)

const article = `<html><head><title>t</title><script>var x = "hidden";</script></head>
<body>
<nav>Start Kontakt</nav>
<article>
  <h2>Der   Hund</h2>
  <p>Der Hund lief.</p>


  <p>Der Hund <b>bellte</b> 3x um 10 Uhr.</p>
  <ul><li>erster Punkt</li><li>zweiter Punkt</li></ul>
</article>
<footer>Impressum</footer>
</body></html>`

func htmlDoc(body string) *core.Document {
	return &core.Document{URL: "https://example.com", ContentType: "text/html; charset=utf-8", Body: body}
}

func TestClean_TextMode(t *testing.T) {
	text, err := New().Clean(htmlDoc(article))
	require.NoError(t, err)

	assert.Contains(t, text, "Der Hund lief.")
	assert.Contains(t, text, "bellte")
	assert.Contains(t, text, "erster Punkt")
	assert.NotContains(t, text, "hidden")
	assert.NotContains(t, text, "Kontakt")
	assert.NotContains(t, text, "Impressum")
	assert.NotContains(t, text, "\n\n")
}

func TestClean_MarkdownMode(t *testing.T) {
	text, err := New(WithMode(ModeMarkdown)).Clean(htmlDoc(article))
	require.NoError(t, err)

	assert.Contains(t, text, "Der Hund")
	assert.Contains(t, text, "Der Hund lief.")
	assert.Contains(t, text, "bellte")
	assert.Contains(t, text, "erster Punkt")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "## ")
	assert.NotContains(t, text, "Impressum")
}

func TestClean_StripDigits(t *testing.T) {
	text, err := New(WithStripDigits(true)).Clean(htmlDoc(article))
	require.NoError(t, err)

	assert.NotContains(t, text, "3x")
	assert.NotContains(t, text, "10")
	assert.Contains(t, text, "Uhr")
}

func TestClean_PlainTextPassesThrough(t *testing.T) {
	doc := &core.Document{ContentType: "text/plain", Body: "  <b>kein</b>   HTML  \n\n\nzweite Zeile "}
	text, err := New().Clean(doc)
	require.NoError(t, err)
	assert.Equal(t, "<b>kein</b> HTML\nzweite Zeile", text)
}

func TestCollapse(t *testing.T) {
	in := "  eins \t zwei \r\n\n***\n\n  drei  "
	assert.Equal(t, "eins zwei\ndrei", Collapse(in))
}

func TestStripDigitTokens(t *testing.T) {
	assert.Equal(t, "im Jahr\nnur", StripDigitTokens("im Jahr 2024\nnur b2b\n42"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeText, m)

	m, err = ParseMode("Markdown")
	require.NoError(t, err)
	assert.Equal(t, ModeMarkdown, m)

	_, err = ParseMode("pdf")
	assert.Error(t, err)
}
