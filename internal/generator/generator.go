// Package generator builds the word sequence for a challenge.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/ticktype/internal/corpus"
	"github.com/verte-zerg/ticktype/internal/session"
)

// Generator draws challenge words from a corpus.
type Generator struct {
	corpus corpus.Provider
	rnd    *rand.Rand
}

// New returns a Generator seeded with the current time.
func New(p corpus.Provider) *Generator {
	return NewWithSource(p, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator using src for randomness.
func NewWithSource(p corpus.Provider, src rand.Source) *Generator {
	return &Generator{corpus: p, rnd: rand.New(src)}
}

// Generate draws count words uniformly, with replacement, from the corpus for
// lang. Unknown languages, empty corpora and non-positive counts are reported
// as session.ErrConfiguration.
func (g *Generator) Generate(lang string, count int) ([]*session.Word, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: word count must be > 0", session.ErrConfiguration)
	}
	words, err := g.corpus.WordsFor(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrConfiguration, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: word list for %q is empty", session.ErrConfiguration, lang)
	}
	result := make([]*session.Word, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, session.NewWord(words[g.rnd.Intn(len(words))]))
	}
	return result, nil
}
