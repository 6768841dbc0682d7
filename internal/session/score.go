package session

import (
	"math"
	"time"
)

// Result is the final score of a session.
type Result struct {
	WPM               float64
	Accuracy          int
	AccuracyDefined   bool
	TotalKeystrokes   int
	CorrectKeystrokes int
	CompletedWords    int
	CorrectWords      int
	Duration          time.Duration
	Exhausted         bool
}

// Score computes words per minute and accuracy. WPM is taken over the
// configured duration, not the time actually spent. Accuracy is undefined
// when no keystroke was counted.
func Score(s *Session, duration time.Duration) Result {
	res := Result{
		TotalKeystrokes:   s.total,
		CorrectKeystrokes: s.correct,
		CompletedWords:    s.CompletedWords(),
		CorrectWords:      s.CorrectWords(),
		Duration:          duration,
	}
	if s.total > 0 {
		res.Accuracy = int(math.Round(100 * float64(s.correct) / float64(s.total)))
		res.AccuracyDefined = true
	}
	if minutes := duration.Minutes(); minutes > 0 {
		res.WPM = float64(res.CorrectWords) / minutes
	}
	return res
}
