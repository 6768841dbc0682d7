// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/ticktype/internal/session"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
	cursor  bool
}

// buildStyledRunes renders every word of the session followed by a separator
// space. When the cursor sits at the end of a word the caret is drawn on the
// separator after it.
func buildStyledRunes(words []*session.Word, cur session.Cursor, hasCursor bool) []styledRune {
	out := make([]styledRune, 0, len(words)*6)
	for wi, w := range words {
		isCurrent := hasCursor && wi == cur.Word
		for li, l := range w.Letters {
			style := letterStyle(l, isCurrent)
			atCursor := isCurrent && !cur.AtEnd && li == cur.Letter
			if atCursor {
				style = style.Underline(true)
			}
			out = append(out, styledRune{
				s:      style.Render(string(l.Char)),
				width:  runewidth.RuneWidth(l.Char),
				cursor: atCursor,
			})
		}
		sep := styledRune{s: " ", width: 1, isSpace: true}
		if isCurrent && cur.AtEnd {
			sep.s = cursorStyle.Render(" ")
			sep.cursor = true
		}
		out = append(out, sep)
	}
	return out
}

func letterStyle(l session.Letter, inCurrentWord bool) lipgloss.Style {
	switch {
	case l.Extra:
		return extraStyle
	case l.Status == session.LetterCorrect:
		return correctStyle
	case l.Status == session.LetterIncorrect:
		return incorrectStyle
	case inCurrentWord:
		return currentWordStyle
	default:
		return pendingStyle
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapLines breaks runes into lines no wider than width, preferring to break
// at spaces. Trailing spaces are dropped unless they carry the caret.
func wrapLines(runes []styledRune, width int) [][]styledRune {
	if width <= 0 {
		return [][]styledRune{runes}
	}
	var lines [][]styledRune
	line := make([]styledRune, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if item.isSpace && !item.cursor {
				lines = append(lines, line)
				line = make([]styledRune, 0, width)
				lineWidth = 0
				lastSpaceIdx = -1
				i++
				continue
			}
			if lastSpaceIdx >= 0 {
				head := append([]styledRune{}, line[:lastSpaceIdx+1]...)
				if !head[lastSpaceIdx].cursor {
					head = head[:lastSpaceIdx]
				}
				lines = append(lines, head)
				line = append(make([]styledRune, 0, width), line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				lines = append(lines, line)
				line = make([]styledRune, 0, width)
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// visibleLines returns at most n lines, scrolled so the caret line is the
// second one shown once the text has moved past the first line.
func visibleLines(lines [][]styledRune, n int) [][]styledRune {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	cursorLine := 0
	for i, line := range lines {
		if hasCursor(line) {
			cursorLine = i
			break
		}
	}
	start := cursorLine - 1
	if start < 0 {
		start = 0
	}
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}

func hasCursor(line []styledRune) bool {
	for _, item := range line {
		if item.cursor {
			return true
		}
	}
	return false
}

func joinLines(lines [][]styledRune) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = renderStyledRunes(line)
	}
	return strings.Join(parts, "\n")
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
