package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsBlankCommentAndInvalidLines(t *testing.T) {
	input := "# comment\nalpha\n\n  beta  \ngamma delta\nÉcole\n"
	words, err := Parse(strings.NewReader(input), FilterForLang("en"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, words)
}

func TestParseEmptyList(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"), nil)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Parse(strings.NewReader("Hello\nWorld\n"), FilterForLang("en"))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fi.txt")
	require.NoError(t, os.WriteFile(path, []byte("kissa\nkoira\n"), 0o644))

	words, err := LoadWords(path, FilterForLang("fi"))
	require.NoError(t, err)
	assert.Equal(t, []string{"kissa", "koira"}, words)

	_, err = LoadWords(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.True(t, os.IsNotExist(err))
}

func TestWriteRoundTripsThroughLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists", "sv.txt")

	require.NoError(t, Write(path, []string{"hej", "tack"}))
	require.NoError(t, Write(path, []string{"hallå"}))

	words, err := LoadWords(path, FilterForLang("sv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hallå"}, words)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
