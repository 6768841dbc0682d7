package controller

import (
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ticktype/internal/corpus"
	"github.com/verte-zerg/ticktype/internal/generator"
	"github.com/verte-zerg/ticktype/internal/session"
)

type mapCorpus map[string][]string

func (m mapCorpus) WordsFor(lang string) ([]string, error) {
	words, ok := m[lang]
	if !ok {
		return nil, corpus.ErrUnknownLanguage
	}
	return words, nil
}

func (m mapCorpus) Languages() ([]string, error) {
	return nil, nil
}

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) time.Time {
	f.t = f.t.Add(d)
	return f.t
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakeClock, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	gen := generator.NewWithSource(mapCorpus{"en": {"cat"}, "fi": {"kissa"}}, rand.NewSource(1))
	opts = append([]Option{WithLogger(logger), WithClock(clk.Now)}, opts...)
	c := New(gen, opts...)
	require.NoError(t, c.Configure("en", 30))
	return c, clk, hook
}

func typeString(c *Controller, text string) {
	for _, r := range text {
		if r == ' ' {
			c.HandleKey(session.SpaceKey())
			continue
		}
		c.HandleKey(session.RuneKey(r))
	}
}

func TestConfigureStartsIdle(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NotNil(t, c.Session())
	assert.Len(t, c.Session().Words(), DefaultBatch)
	assert.Equal(t, session.PhaseIdle, c.Phase())
	assert.Equal(t, 30, c.Remaining())
	assert.NotEmpty(t, c.ID())
	cur, ok := c.Session().Cursor()
	require.True(t, ok)
	assert.Equal(t, session.Cursor{}, cur)
}

func TestConfigureFailureKeepsPreviousSession(t *testing.T) {
	c, _, hook := newTestController(t)
	prev := c.Session()
	prevID := c.ID()

	err := c.Configure("xx", 30)
	require.ErrorIs(t, err, session.ErrConfiguration)
	assert.Same(t, prev, c.Session())
	assert.Equal(t, prevID, c.ID())
	assert.Equal(t, "en", c.Lang())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	for _, seconds := range []int{0, -15} {
		err = c.Configure("en", seconds)
		require.ErrorIs(t, err, session.ErrConfiguration)
		assert.Same(t, prev, c.Session())
	}
	lang, seconds := c.Settings()
	assert.Equal(t, "en", lang)
	assert.Equal(t, 30, seconds)
}

func TestConfigureAcceptsAnyPositiveDuration(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.Configure("en", 45))
	assert.Equal(t, 45, c.Seconds())
	assert.Equal(t, 45, c.Remaining())
}

func TestTickBeforeFirstKeyDoesNothing(t *testing.T) {
	c, clk, _ := newTestController(t)
	assert.False(t, c.HandleTick(clk.Advance(time.Minute)))
	assert.Equal(t, session.PhaseIdle, c.Phase())
	assert.Equal(t, 30, c.Remaining())
}

func TestFirstLetterStartsClock(t *testing.T) {
	c, clk, _ := newTestController(t)
	c.HandleKey(session.SpaceKey())
	assert.Equal(t, session.PhaseIdle, c.Phase())

	c.HandleKey(session.RuneKey('c'))
	assert.Equal(t, session.PhaseRunning, c.Phase())
	clk.Advance(10 * time.Second)
	c.HandleKey(session.RuneKey('a'))
	assert.Equal(t, 20, c.Remaining())
}

func TestTimeUpScoresAndFreezes(t *testing.T) {
	c, clk, hook := newTestController(t)
	start := clk.Now()
	typeString(c, "cat cxt ca")

	assert.False(t, c.HandleTick(start.Add(29*time.Second)))
	_, ok := c.Result()
	assert.False(t, ok)

	clk.t = start.Add(30 * time.Second)
	assert.True(t, c.HandleTick(clk.t))
	assert.Equal(t, session.PhaseOver, c.Phase())
	assert.False(t, c.HandleTick(clk.Advance(time.Second)))

	res, ok := c.Result()
	require.True(t, ok)
	// 10 counted keys, one miss.
	assert.Equal(t, 10, res.TotalKeystrokes)
	assert.Equal(t, 9, res.CorrectKeystrokes)
	assert.Equal(t, 90, res.Accuracy)
	assert.Equal(t, 1, res.CorrectWords)
	assert.InDelta(t, 2.0, res.WPM, 1e-9)
	assert.False(t, res.Exhausted)
	assert.Equal(t, "session over", hook.LastEntry().Message)
	assert.Equal(t, c.ID(), hook.LastEntry().Data["session"])

	total := c.Session().TotalKeystrokes()
	typeString(c, "t catcat ")
	c.HandleKey(session.BackspaceKey())
	assert.Equal(t, total, c.Session().TotalKeystrokes())
	again, _ := c.Result()
	assert.Equal(t, res, again)
}

func TestExhaustionEndsSessionEarly(t *testing.T) {
	c, _, _ := newTestController(t, WithBatch(2))
	typeString(c, "cat ")
	assert.Equal(t, session.PhaseRunning, c.Phase())
	typeString(c, "cat ")

	assert.Equal(t, session.PhaseOver, c.Phase())
	res, ok := c.Result()
	require.True(t, ok)
	assert.True(t, res.Exhausted)
	assert.Equal(t, 2, res.CorrectWords)
	assert.Equal(t, 100, res.Accuracy)
	assert.InDelta(t, 4.0, res.WPM, 1e-9)
}

func TestResetKeepsSettings(t *testing.T) {
	c, clk, _ := newTestController(t)
	require.NoError(t, c.Configure("fi", 60))
	typeString(c, "kis")
	clk.Advance(61 * time.Second)
	require.True(t, c.HandleTick(clk.Now()))
	oldID := c.ID()

	require.NoError(t, c.Reset())
	assert.Equal(t, "fi", c.Lang())
	assert.Equal(t, 60, c.Seconds())
	assert.Equal(t, session.PhaseIdle, c.Phase())
	assert.Equal(t, 60, c.Remaining())
	assert.NotEqual(t, oldID, c.ID())
	assert.Equal(t, "kissa", c.Session().Words()[0].Text())
	_, ok := c.Result()
	assert.False(t, ok)
}

func TestResetBeforeConfigure(t *testing.T) {
	c := New(generator.NewWithSource(mapCorpus{}, rand.NewSource(1)))
	require.ErrorIs(t, c.Reset(), session.ErrConfiguration)
	c.HandleKey(session.RuneKey('a'))
	assert.False(t, c.HandleTick(time.Now()))
	assert.Zero(t, c.Remaining())
}
