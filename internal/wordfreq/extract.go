package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/ticktype/internal/wordlist"
)

const (
	minWordLen = 2
	maxWordLen = 20
)

// cBpack header; the bins after it hold words in descending frequency, one
// centibel per bin.
type packHeader struct {
	Format  string `msgpack:"format"`
	Version int    `msgpack:"version"`
}

// ExtractWordlist returns up to limit words for lang from the wheel, most
// frequent first. Words that are not purely alphabetic, are shorter than two
// or longer than twenty runes, or fail the language filter are dropped.
func ExtractWordlist(wheelPath, lang, listType string, limit int) ([]string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	file := findDataFile(reader.File, lang, listType)
	if file == nil {
		return nil, fmt.Errorf("no %s word list for %s", listType, lang)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}

	bins, err := decodePack(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.Name, err)
	}
	words := selectWords(bins, wordlist.FilterForLang(lang), limit)
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return words, nil
}

func decodePack(r io.Reader) ([][]string, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("missing header")
	}
	var header packHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}
	if header.Format != "cB" || header.Version != 1 {
		return nil, fmt.Errorf("unsupported format %q version %d", header.Format, header.Version)
	}
	bins := make([][]string, 0, n-1)
	for i := 1; i < n; i++ {
		var words []string
		if err := dec.Decode(&words); err != nil {
			return nil, fmt.Errorf("invalid bin %d: %w", i, err)
		}
		bins = append(bins, words)
	}
	return bins, nil
}

func selectWords(bins [][]string, keep wordlist.FilterFunc, limit int) []string {
	words := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, bin := range bins {
		for _, word := range bin {
			if _, ok := seen[word]; ok {
				continue
			}
			if !isAlpha(word) || !wordlist.ValidWord(word) || !keep(word) {
				continue
			}
			if n := utf8.RuneCountInString(word); n < minWordLen || n > maxWordLen {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
			if len(words) == limit {
				return words
			}
		}
	}
	return words
}

func isAlpha(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}
