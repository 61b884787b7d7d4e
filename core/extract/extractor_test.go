package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html lang="de">
<head><title> Hunde </title><style>body{color:red}</style></head>
<body>
  <header>Kopfzeile</header>
  <nav><a href="/a">Menü</a></nav>
  <main>
    <h1>Der Hund</h1>
    <p>Der Hund lief <a href="https://example.com/x">schnell</a>.</p>
    <script>var tracking = 1;</script>
  </main>
  <footer>Impressum</footer>
</body>
</html>`

func TestExtract_RemovesNoiseAndKeepsMain(t *testing.T) {
	out, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, "<main>")
	assert.Contains(t, out, "Der Hund lief")
	assert.Contains(t, out, "schnell")
	for _, gone := range []string{"Kopfzeile", "Menü", "Impressum", "tracking", "color:red", "https://example.com/x"} {
		assert.NotContains(t, out, gone)
	}
}

func TestExtract_FallsBackToBody(t *testing.T) {
	out, err := New().Extract(`<html><body><p>nur Text</p></body></html>`)
	require.NoError(t, err)
	assert.Contains(t, out, "<body>")
	assert.Contains(t, out, "nur Text")
}

func TestExtract_ExtraNoiseSelectors(t *testing.T) {
	out, err := New(".promo").Extract(`<body><p>keep</p><div class="promo">drop</div></body>`)
	require.NoError(t, err)
	assert.Contains(t, out, "keep")
	assert.NotContains(t, out, "drop")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Hunde", Title(page))
	assert.Equal(t, "", Title("<p>no title</p>"))
}
