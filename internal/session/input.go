package session

import "unicode"

// Apply processes one keystroke. While idle only a qualifying keystroke (a
// printable, non-space rune) is accepted; it moves the session to running.
// Events are dropped once the session is over.
//
// Apply returns ErrSequenceExhausted when space confirms the last word; the
// session is over at that point.
func (s *Session) Apply(k Key) error {
	switch s.phase {
	case PhaseOver:
		return nil
	case PhaseIdle:
		if !Qualifies(k) {
			return nil
		}
		s.start()
	}

	switch k.Kind {
	case KeyRune:
		if isPrintable(k.Rune) {
			s.typeRune(k.Rune)
		}
	case KeySpace:
		return s.confirmWord()
	case KeyBackspace:
		s.backspace()
	}
	return nil
}

// Qualifies reports whether k may start the clock.
func Qualifies(k Key) bool {
	return k.Kind == KeyRune && isPrintable(k.Rune)
}

func isPrintable(r rune) bool {
	return unicode.IsPrint(r) && !unicode.IsSpace(r)
}

func (s *Session) typeRune(r rune) {
	s.total++
	w := s.words[s.current]
	idx := w.firstPending()
	if idx == len(w.Letters) {
		w.Letters = append(w.Letters, Letter{Char: r, Status: LetterIncorrect, Extra: true})
		return
	}
	if w.Letters[idx].Char == r {
		w.Letters[idx].Status = LetterCorrect
		s.correct++
		return
	}
	w.Letters[idx].Status = LetterIncorrect
}

func (s *Session) confirmWord() error {
	s.total++
	s.correct++
	w := s.words[s.current]
	for i := range w.Letters {
		if w.Letters[i].Status == LetterPending {
			w.Letters[i].Status = LetterIncorrect
			s.total++
		}
	}
	w.Status = WordCompleted
	if s.current+1 >= len(s.words) {
		s.phase = PhaseOver
		return ErrSequenceExhausted
	}
	s.current++
	s.words[s.current].Status = WordCurrent
	return nil
}

func (s *Session) backspace() {
	w := s.words[s.current]
	idx := w.firstPending()
	if idx > 0 {
		prev := &w.Letters[idx-1]
		if prev.Extra {
			w.Letters = w.Letters[:idx-1]
			return
		}
		prev.Status = LetterPending
		return
	}
	if s.current == 0 {
		return
	}
	pw := s.words[s.current-1]
	if len(pw.Letters) == 0 {
		return
	}
	last := len(pw.Letters) - 1
	if pw.Letters[last].Extra {
		pw.Letters = pw.Letters[:last]
		return
	}
	pw.Letters[last].Status = LetterPending
	w.Status = WordPending
	pw.Status = WordCurrent
	s.current--
}
