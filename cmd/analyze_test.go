package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in-process. Flag values survive between Execute
// calls, so every flag is reset to its default first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyze_WritesCSVAndPreview(t *testing.T) {
	t.Chdir(t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<main><p>Der Hund lief.</p><p>Der Hund bellte.</p></main>`)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	ref := filepath.Join(t.TempDir(), "nouns.csv")
	require.NoError(t, os.WriteFile(ref, []byte("word,level\nder,A1\nhund,A1\n"), 0o644))

	out, err := execute(t, "analyze", srv.URL+"/",
		"--output_dir", outDir,
		"--label", "hund",
		"--noun", ref,
		"--level", "B1",
		"--csv",
	)
	require.NoError(t, err, out)

	assert.Contains(t, out, "6 tokens, 4 distinct words")
	assert.Contains(t, out, "✓ Written:")

	data, err := os.ReadFile(filepath.Join(outDir, "hund.csv"))
	require.NoError(t, err)
	assert.Equal(t, "word,frequency,level\nlief,1,C2\nbellte,1,C2\n", string(data))
}

func TestAnalyze_RejectsInvalidURL(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "analyze", "example.com")
	assert.ErrorContains(t, err, "invalid URL")
}

func TestLevels_ListsSixLabels(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "levels")
	require.NoError(t, err)
	for _, l := range []string{"A1", "A2", "B1", "B2", "C1", "C2"} {
		assert.Contains(t, out, l)
	}
}
