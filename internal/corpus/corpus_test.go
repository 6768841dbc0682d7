package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "en", Normalize(" English "))
	assert.Equal(t, "fi", Normalize("finnish"))
	assert.Equal(t, "js", Normalize("JS"))
	assert.Equal(t, "de", Normalize("de"))
}

func TestBuiltinLists(t *testing.T) {
	b := NewBuiltin()
	langs, err := b.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fi", "js"}, langs)

	for _, lang := range langs {
		words, err := b.WordsFor(lang)
		require.NoError(t, err, lang)
		assert.NotEmpty(t, words, lang)
		for _, w := range words {
			assert.NotContains(t, w, " ")
			assert.NotContains(t, w, "#")
		}
	}

	words, err := b.WordsFor("javascript")
	require.NoError(t, err)
	assert.Contains(t, words, "function")
}

func TestBuiltinUnknownLanguage(t *testing.T) {
	_, err := NewBuiltin().WordsFor("xx")
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestDirProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.txt"), []byte("haus\nbaum\n"), 0o644))
	for _, name := range []string{"ATTRIBUTION.txt", "LICENSE.txt", "DATA_LICENSE.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("text\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x\n"), 0o644))

	d := NewDir(dir)
	langs, err := d.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, langs)

	words, err := d.WordsFor("de")
	require.NoError(t, err)
	assert.Equal(t, []string{"haus", "baum"}, words)

	_, err = d.WordsFor("sv")
	require.ErrorIs(t, err, ErrUnknownLanguage)
	_, err = d.WordsFor("../de")
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestChainSkipsFilteredOutDirList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.txt"), []byte("Hello\nWorld\n"), 0o644))

	_, err := NewDir(dir).WordsFor("en")
	require.ErrorIs(t, err, ErrUnknownLanguage)

	words, err := Chain{NewDir(dir), NewBuiltin()}.WordsFor("en")
	require.NoError(t, err)
	assert.NotEmpty(t, words)
}

func TestDirProviderMissingDirectory(t *testing.T) {
	langs, err := NewDir(filepath.Join(t.TempDir(), "nope")).Languages()
	require.NoError(t, err)
	assert.Empty(t, langs)
}

type fakeStore map[string][]string

func (f fakeStore) Words(_ context.Context, lang string) ([]string, error) {
	return f[lang], nil
}

func (f fakeStore) Languages(_ context.Context) ([]string, error) {
	langs := make([]string, 0, len(f))
	for lang := range f {
		langs = append(langs, lang)
	}
	return langs, nil
}

func TestChainShadowsAndMerges(t *testing.T) {
	stored := NewStored(fakeStore{
		"en": {"override"},
		"sv": {"hej", "tack"},
	})
	chain := Chain{stored, NewBuiltin()}

	words, err := chain.WordsFor("english")
	require.NoError(t, err)
	assert.Equal(t, []string{"override"}, words)

	words, err = chain.WordsFor("fi")
	require.NoError(t, err)
	assert.Contains(t, words, "kissa")

	_, err = chain.WordsFor("zz")
	require.ErrorIs(t, err, ErrUnknownLanguage)

	langs, err := chain.Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fi", "js", "sv"}, langs)
}
