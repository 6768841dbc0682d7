package session

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports an unusable language or challenge setup.
	ErrConfiguration = errors.New("configuration error")
	// ErrSequenceExhausted reports that the last generated word was confirmed.
	ErrSequenceExhausted = errors.New("word sequence exhausted")
)

// Session is the mutable model of one challenge. It has a single writer and is
// not safe for concurrent use.
type Session struct {
	words   []*Word
	current int
	total   int
	correct int
	phase   Phase
}

// Cursor is the position where the next keystroke is interpreted.
// Letter equals the word length when AtEnd is set.
type Cursor struct {
	Word   int
	Letter int
	AtEnd  bool
}

// New returns an idle session over the given words.
func New(words []*Word) (*Session, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no words to type", ErrConfiguration)
	}
	for _, w := range words {
		if w == nil || len(w.Letters) == 0 {
			return nil, fmt.Errorf("%w: empty word in sequence", ErrConfiguration)
		}
	}
	return &Session{words: words}, nil
}

// Words returns the word sequence. Callers must treat it as read-only.
func (s *Session) Words() []*Word {
	return s.words
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// CurrentIndex returns the index of the word under the cursor.
func (s *Session) CurrentIndex() int {
	return s.current
}

// TotalKeystrokes returns every counted keystroke, including letters
// invalidated by an early space.
func (s *Session) TotalKeystrokes() int {
	return s.total
}

// CorrectKeystrokes returns the keystrokes counted as correct.
func (s *Session) CorrectKeystrokes() int {
	return s.correct
}

// Cursor derives the cursor from the current word. ok is false once the
// session is over.
func (s *Session) Cursor() (c Cursor, ok bool) {
	if s.phase == PhaseOver {
		return Cursor{}, false
	}
	w := s.words[s.current]
	idx := w.firstPending()
	return Cursor{Word: s.current, Letter: idx, AtEnd: idx == len(w.Letters)}, true
}

// CompletedWords returns how many words were confirmed with space.
func (s *Session) CompletedWords() int {
	n := 0
	for _, w := range s.words {
		if w.Status == WordCompleted {
			n++
		}
	}
	return n
}

// CorrectWords returns how many completed words were typed without mistakes.
func (s *Session) CorrectWords() int {
	n := 0
	for _, w := range s.words {
		if w.IsCorrect() {
			n++
		}
	}
	return n
}

// Finish ends the session. The current word loses its current status; letter
// states are kept for display. Finish is a no-op once the session is over.
func (s *Session) Finish() {
	if s.phase == PhaseOver {
		return
	}
	if w := s.words[s.current]; w.Status == WordCurrent {
		w.Status = WordPending
	}
	s.phase = PhaseOver
}

func (s *Session) start() {
	s.phase = PhaseRunning
	s.words[s.current].Status = WordCurrent
}
