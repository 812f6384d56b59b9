package fs

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Encodings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"utf-8", "café", "café"},
		{"utf8", "\xef\xbb\xbfhello", "hello"},
		{"latin1", "caf\xe9", "café"},
		{"cp1252", "\x93quoted\x94", "“quoted”"},
		{"cp437", "\x82t\x82", "été"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecoder(tt.name)
			require.NoError(t, err)

			out, err := io.ReadAll(d.Reader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestDecoder_Unsupported(t *testing.T) {
	_, err := NewDecoder("ebcdic")
	assert.Error(t, err)
}

func TestDecoder_EmptyNameIsUTF8(t *testing.T) {
	d, err := NewDecoder("")
	require.NoError(t, err)
	assert.Equal(t, "utf-8", d.Name())
}

func TestDecoder_AliasesShareName(t *testing.T) {
	for alias, want := range map[string]string{
		"UTF8":         "utf-8",
		"iso-8859-1":   "latin1",
		"windows-1252": "cp1252",
	} {
		d, err := NewDecoder(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, d.Name(), alias)
	}
}

func TestDecoder_ReadErrorPassesThrough(t *testing.T) {
	errBoom := errors.New("disk gone")
	d, err := NewDecoder("latin1")
	require.NoError(t, err)

	_, err = io.ReadAll(d.Reader(iotest.ErrReader(errBoom)))
	assert.ErrorIs(t, err, errBoom)
}

func TestDecoder_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.txt")
	writeFile(t, path, "na\xefve")

	d, err := NewDecoder("latin1")
	require.NoError(t, err)

	rc, err := d.Open(path)
	require.NoError(t, err)
	defer rc.Close()

	out, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "naïve", string(out))
}
