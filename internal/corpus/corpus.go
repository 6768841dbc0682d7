// Package corpus provides word lists per language.
package corpus

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/ticktype/internal/wordlist"
)

// ErrUnknownLanguage reports that a provider has no list for a language.
var ErrUnknownLanguage = errors.New("unknown language")

//go:embed words/*.txt
var builtinFS embed.FS

var aliases = map[string]string{
	"english":    "en",
	"finnish":    "fi",
	"javascript": "js",
}

// Normalize lowercases a language key and resolves long names to codes.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if code, ok := aliases[lang]; ok {
		return code
	}
	return lang
}

// Provider supplies candidate words for a language.
type Provider interface {
	WordsFor(lang string) ([]string, error)
	Languages() ([]string, error)
}

// Builtin serves the word lists compiled into the binary.
type Builtin struct {
	cache map[string][]string
}

// NewBuiltin returns a provider over the embedded lists.
func NewBuiltin() *Builtin {
	return &Builtin{cache: map[string][]string{}}
}

// WordsFor implements Provider.
func (b *Builtin) WordsFor(lang string) ([]string, error) {
	lang = Normalize(lang)
	if words, ok := b.cache[lang]; ok {
		return words, nil
	}
	data, err := builtinFS.ReadFile("words/" + lang + ".txt")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	words, err := wordlist.Parse(bytes.NewReader(data), wordlist.FilterForLang(lang))
	if err != nil {
		return nil, fmt.Errorf("built-in %s list: %w", lang, err)
	}
	b.cache[lang] = words
	return words, nil
}

// Languages implements Provider.
func (b *Builtin) Languages() ([]string, error) {
	entries, err := builtinFS.ReadDir("words")
	if err != nil {
		return nil, err
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		langs = append(langs, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(langs)
	return langs, nil
}

// Dir serves plain-text word lists named <lang>.txt from a directory.
type Dir struct {
	path string
}

// NewDir returns a provider reading lists from path.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// WordsFor implements Provider.
func (d *Dir) WordsFor(lang string) ([]string, error) {
	lang = Normalize(lang)
	if lang == "" || strings.ContainsAny(lang, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	path := filepath.Join(d.path, lang+".txt")
	words, err := wordlist.LoadWords(path, wordlist.FilterForLang(lang))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
		}
		if errors.Is(err, wordlist.ErrEmpty) {
			return nil, fmt.Errorf("%w: %s has no usable words", ErrUnknownLanguage, path)
		}
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, nil
}

// Languages implements Provider. A missing directory holds no languages.
func (d *Dir) Languages() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		// Written next to fetched wordfreq lists.
		if name == "ATTRIBUTION.txt" || name == "LICENSE.txt" || name == "DATA_LICENSE.txt" {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(langs)
	return langs, nil
}

// WordStore is the subset of the SQLite store used for imported lists.
type WordStore interface {
	Words(ctx context.Context, lang string) ([]string, error)
	Languages(ctx context.Context) ([]string, error)
}

// Stored serves word lists imported into the database.
type Stored struct {
	st WordStore
}

// NewStored returns a provider backed by st.
func NewStored(st WordStore) *Stored {
	return &Stored{st: st}
}

// WordsFor implements Provider.
func (s *Stored) WordsFor(lang string) ([]string, error) {
	lang = Normalize(lang)
	words, err := s.st.Words(context.Background(), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored word list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return words, nil
}

// Languages implements Provider.
func (s *Stored) Languages() ([]string, error) {
	return s.st.Languages(context.Background())
}

// Chain asks each provider in turn. Earlier providers shadow later ones.
type Chain []Provider

// WordsFor implements Provider.
func (c Chain) WordsFor(lang string) ([]string, error) {
	for _, p := range c {
		words, err := p.WordsFor(lang)
		if errors.Is(err, ErrUnknownLanguage) {
			continue
		}
		return words, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, Normalize(lang))
}

// Languages implements Provider.
func (c Chain) Languages() ([]string, error) {
	seen := map[string]struct{}{}
	var langs []string
	for _, p := range c {
		list, err := p.Languages()
		if err != nil {
			return nil, err
		}
		for _, lang := range list {
			if _, ok := seen[lang]; ok {
				continue
			}
			seen[lang] = struct{}{}
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs, nil
}
