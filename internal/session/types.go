// Package session implements the typing-session state machine.
package session

// LetterStatus is the typing state of a single letter.
type LetterStatus int

// Letter states.
const (
	LetterPending LetterStatus = iota
	LetterCorrect
	LetterIncorrect
)

func (s LetterStatus) String() string {
	switch s {
	case LetterCorrect:
		return "correct"
	case LetterIncorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// WordStatus is the progress state of a word.
type WordStatus int

// Word states.
const (
	WordPending WordStatus = iota
	WordCurrent
	WordCompleted
)

func (s WordStatus) String() string {
	switch s {
	case WordCurrent:
		return "current"
	case WordCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Phase is the lifecycle phase of a session.
type Phase int

// Session phases.
const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "idle"
	}
}

// Letter is one expected character of a word, or an extra character typed
// past the end of it. Extra letters hold the typed rune and are always incorrect.
type Letter struct {
	Char   rune
	Status LetterStatus
	Extra  bool
}

// Word is an ordered run of letters the user must reproduce.
type Word struct {
	Letters []Letter
	Status  WordStatus
}

// NewWord builds a pending word from its expected text.
func NewWord(text string) *Word {
	runes := []rune(text)
	letters := make([]Letter, len(runes))
	for i, r := range runes {
		letters[i] = Letter{Char: r}
	}
	return &Word{Letters: letters}
}

// Text returns the expected text of the word, without extra letters.
func (w *Word) Text() string {
	runes := make([]rune, 0, len(w.Letters))
	for _, l := range w.Letters {
		if l.Extra {
			continue
		}
		runes = append(runes, l.Char)
	}
	return string(runes)
}

// Extras returns the number of extra letters appended to the word.
func (w *Word) Extras() int {
	n := 0
	for _, l := range w.Letters {
		if l.Extra {
			n++
		}
	}
	return n
}

// IsCorrect reports whether the word was completed with every expected letter
// typed correctly and nothing extra.
func (w *Word) IsCorrect() bool {
	if w.Status != WordCompleted {
		return false
	}
	for _, l := range w.Letters {
		if l.Extra || l.Status != LetterCorrect {
			return false
		}
	}
	return true
}

// firstPending returns the index of the first pending letter, or len(Letters)
// when every letter has been assigned.
func (w *Word) firstPending() int {
	for i, l := range w.Letters {
		if l.Status == LetterPending {
			return i
		}
	}
	return len(w.Letters)
}

// KeyKind classifies a keystroke event.
type KeyKind int

// Keystroke kinds.
const (
	KeyRune KeyKind = iota
	KeySpace
	KeyBackspace
)

// Key is a single keystroke event.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey returns a printable-character keystroke.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// SpaceKey returns a space keystroke.
func SpaceKey() Key {
	return Key{Kind: KeySpace, Rune: ' '}
}

// BackspaceKey returns a delete-previous keystroke.
func BackspaceKey() Key {
	return Key{Kind: KeyBackspace}
}
