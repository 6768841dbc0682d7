// Package report prints the result of a finished challenge.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/ticktype/internal/session"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

// Render writes res as a two-column table headed by the challenge settings.
func Render(w io.Writer, res session.Result, lang string, useColor bool) error {
	title := fmt.Sprintf("Result (%s, %ds)", lang, int(res.Duration.Seconds()))
	if useColor {
		title = titleStyle.Render(title)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	accuracy := "N/A"
	if res.AccuracyDefined {
		accuracy = fmt.Sprintf("%d%%", res.Accuracy)
	}
	rows := [][]string{
		{"Words per minute", fmt.Sprintf("%.0f", res.WPM)},
		{"Accuracy", accuracy},
		{"Correct words", fmt.Sprintf("%d", res.CorrectWords)},
		{"Completed words", fmt.Sprintf("%d", res.CompletedWords)},
		{"Keystrokes", fmt.Sprintf("%d", res.TotalKeystrokes)},
		{"Correct keystrokes", fmt.Sprintf("%d", res.CorrectKeystrokes)},
	}
	if res.Exhausted {
		rows = append(rows, []string{"Note", "ran out of words"})
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ShouldUseColor reports whether w is a terminal that accepts styling.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
