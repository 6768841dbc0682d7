package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ticktype/internal/session"
)

func TestRender(t *testing.T) {
	res := session.Result{
		WPM:               42,
		Accuracy:          95,
		AccuracyDefined:   true,
		TotalKeystrokes:   200,
		CorrectKeystrokes: 190,
		CompletedWords:    23,
		CorrectWords:      21,
		Duration:          30 * time.Second,
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, "en", false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Result (en, 30s)", lines[0])
	assert.Equal(t, "Words per minute     42", lines[1])
	assert.Equal(t, "Accuracy            95%", lines[2])
	assert.Equal(t, "Correct keystrokes  190", lines[6])
}

func TestRenderUndefinedAccuracyAndExhaustion(t *testing.T) {
	res := session.Result{Duration: 15 * time.Second, Exhausted: true}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res, "fi", false))
	out := buf.String()
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "ran out of words")
	assert.Contains(t, out, "Result (fi, 15s)")
}

func TestShouldUseColorForBuffer(t *testing.T) {
	assert.False(t, ShouldUseColor(&bytes.Buffer{}))
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldUseColor(nil))
}
