package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag state.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := executeTo(t, &out, stdin, args...)
	return out.String(), err
}

// executeTo is execute with command output sent to w.
func executeTo(t *testing.T, w io.Writer, stdin string, args ...string) error {
	t.Helper()

	cfgFile, rootDir, logLevel = "", "", "info"
	tokenizeKeep, tokenizeStrip, tokenizeJSON, tokenizeEncoding = false, false, false, ""
	vocabTop, vocabTerms, vocabJSON = 0, nil, false
	indexNoProgress = false
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		reset := func(f *pflag.Flag) { f.Changed = false }
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}

	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(w)
	rootCmd.SetErr(io.Discard)

	return rootCmd.Execute()
}

var errWriteClosed = errors.New("write on closed pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteClosed }

func TestTokenizeCommand_Stdin(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "Hi there!! I'm fine.", "tokenize", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Hi\nthere\nI'm\nfine\n", out)
}

func TestTokenizeCommand_WriteError(t *testing.T) {
	for _, args := range [][]string{
		{"tokenize", "--json"},
		{"tokenize"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			dir := t.TempDir()
			err := executeTo(t, failingWriter{}, "some words here", append(args, "--dir", dir)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, errWriteClosed)
		})
	}
}

func TestTokenizeCommand_KeepJSON(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "line one.\nline two!", "tokenize", "--dir", dir, "--keep", "--json")
	require.NoError(t, err)

	var tokens []string
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	assert.Equal(t, []string{"line", "one.", "line", "two!"}, tokens)
}

func TestTokenizeCommand_EmptyInputJSON(t *testing.T) {
	out, err := execute(t, "", "tokenize", "--dir", t.TempDir(), "--json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestTokenizeCommand_EncodedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin.txt")
	require.NoError(t, os.WriteFile(path, []byte("tr\xe8s bien, merci!"), 0644))

	out, err := execute(t, "", "tokenize", "--dir", dir, "--encoding", "latin1", path)
	require.NoError(t, err)
	assert.Equal(t, "très\nbien\nmerci\n", out)
}

func TestTokenizeCommand_ConfigMode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentok.yaml"), []byte("tokenize:\n  mode: keep\n"), 0644))

	out, err := execute(t, "ok, fine.", "tokenize", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "ok,\nfine.\n", out)
}

func TestTokenizeCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentok.yaml"), []byte("tokenize:\n  mode: stem\n"), 0644))

	_, err := execute(t, "anything", "tokenize", "--dir", dir)
	assert.Error(t, err)
}

func TestTokenizeCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "", "tokenize", "--dir", t.TempDir(), "does-not-exist.txt")
	assert.Error(t, err)
}

func TestIndexAndVocabCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("good good bad."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("\"good\" movie"), 0644))

	out, err := execute(t, "", "index", dir, "--dir", dir, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Files indexed:  2")

	out, err = execute(t, "", "vocab", "--dir", dir, "--json", "--top", "2")
	require.NoError(t, err)

	var report struct {
		Stats struct {
			TotalDocs   int `json:"total_docs"`
			UniqueTerms int `json:"unique_terms"`
		} `json:"stats"`
		Top []struct {
			Term  string `json:"term"`
			Count int    `json:"count"`
		} `json:"top"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Stats.TotalDocs)
	assert.Equal(t, 3, report.Stats.UniqueTerms)
	require.Len(t, report.Top, 2)
	assert.Equal(t, "good", report.Top[0].Term)
	assert.Equal(t, 3, report.Top[0].Count)

	out, err = execute(t, "", "vocab", "--dir", dir, "-t", "movie", "-t", "awful")
	require.NoError(t, err)
	assert.Contains(t, out, "movie")
	assert.Contains(t, out, "awful")

	// A second run skips unchanged files.
	out, err = execute(t, "", "index", dir, "--dir", dir, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Files skipped:  2")
}

func TestIndexCommand_ModeChangeRebuilds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("wow!"), 0644))

	_, err := execute(t, "", "index", dir, "--dir", dir, "--no-progress")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentok.yaml"), []byte("tokenize:\n  mode: keep\n"), 0644))
	out, err := execute(t, "", "index", dir, "--dir", dir, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Files indexed:  1")

	out, err = execute(t, "", "vocab", "--dir", dir, "-t", "wow!")
	require.NoError(t, err)
	assert.Contains(t, out, "wow!")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "1"))
}

func TestVocabCommand_NoIndex(t *testing.T) {
	_, err := execute(t, "", "vocab", "--dir", t.TempDir())
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "<1s", formatDuration(500*time.Millisecond))
	assert.Equal(t, "42s", formatDuration(42*time.Second))
	assert.Equal(t, "2m5s", formatDuration(125*time.Second))
	assert.Equal(t, "1h1m", formatDuration(61*time.Minute))
}
