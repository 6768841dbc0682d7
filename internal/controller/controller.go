// Package controller drives the lifecycle of a typing challenge.
package controller

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/ticktype/internal/session"
)

// DefaultBatch is the number of words generated per challenge. It is sized to
// outlast any allowed duration.
const DefaultBatch = 200

// WordSource produces the word sequence for a challenge.
type WordSource interface {
	Generate(lang string, count int) ([]*session.Word, error)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithBatch sets how many words are generated per challenge.
func WithBatch(n int) Option {
	return func(c *Controller) {
		c.batch = n
	}
}

// Controller owns one session at a time and routes keystrokes and clock ticks
// to it. It is not safe for concurrent use.
type Controller struct {
	gen   WordSource
	log   *logrus.Logger
	now   func() time.Time
	batch int

	lang    string
	seconds int
	id      string

	sess   *session.Session
	clock  *session.Clock
	result session.Result
	scored bool
}

// New returns an unconfigured controller.
func New(gen WordSource, opts ...Option) *Controller {
	c := &Controller{
		gen:   gen,
		now:   time.Now,
		batch: DefaultBatch,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logrus.New()
		c.log.SetOutput(io.Discard)
	}
	return c
}

// Configure discards the current session and prepares a new idle one. On
// error the previous session is left untouched.
func (c *Controller) Configure(lang string, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: duration must be a positive number of seconds", session.ErrConfiguration)
	}
	words, err := c.gen.Generate(lang, c.batch)
	if err != nil {
		c.log.WithError(err).WithField("lang", lang).Warn("configure failed")
		return err
	}
	sess, err := session.New(words)
	if err != nil {
		return err
	}

	c.lang = lang
	c.seconds = seconds
	c.id = uuid.NewString()
	c.sess = sess
	c.clock = session.NewClock(time.Duration(seconds) * time.Second)
	c.result = session.Result{}
	c.scored = false
	c.entry().Debug("session configured")
	return nil
}

// Reset starts over with the last configured language and duration.
func (c *Controller) Reset() error {
	if c.sess == nil {
		return fmt.Errorf("%w: controller has not been configured", session.ErrConfiguration)
	}
	return c.Configure(c.lang, c.seconds)
}

// HandleKey routes a keystroke to the session. The first qualifying
// keystroke starts the clock.
func (c *Controller) HandleKey(k session.Key) {
	if c.sess == nil {
		return
	}
	wasIdle := c.sess.Phase() == session.PhaseIdle
	err := c.sess.Apply(k)
	if wasIdle && c.sess.Phase() != session.PhaseIdle {
		c.clock.Start(c.now())
		c.entry().Debug("session started")
	}
	if errors.Is(err, session.ErrSequenceExhausted) {
		c.entry().Warn("ran out of words before time was up")
		c.finish(true)
	}
}

// HandleTick checks the clock against now. It returns true on the tick that
// ends the session.
func (c *Controller) HandleTick(now time.Time) bool {
	if c.sess == nil || c.sess.Phase() != session.PhaseRunning {
		return false
	}
	if !c.clock.Tick(now) {
		return false
	}
	c.finish(false)
	return true
}

func (c *Controller) finish(exhausted bool) {
	c.sess.Finish()
	c.result = session.Score(c.sess, c.clock.Duration())
	c.result.Exhausted = exhausted
	c.scored = true
	c.entry().WithFields(logrus.Fields{
		"wpm":      c.result.WPM,
		"accuracy": c.result.Accuracy,
		"total":    c.result.TotalKeystrokes,
		"correct":  c.result.CorrectKeystrokes,
	}).Info("session over")
}

func (c *Controller) entry() *logrus.Entry {
	return c.log.WithFields(logrus.Fields{
		"session":  c.id,
		"lang":     c.lang,
		"duration": c.seconds,
	})
}

// Session returns the active session, or nil before the first Configure.
func (c *Controller) Session() *session.Session {
	return c.sess
}

// Phase returns the phase of the active session.
func (c *Controller) Phase() session.Phase {
	if c.sess == nil {
		return session.PhaseIdle
	}
	return c.sess.Phase()
}

// Result returns the score once the session is over.
func (c *Controller) Result() (session.Result, bool) {
	return c.result, c.scored
}

// Remaining returns whole seconds left on the clock.
func (c *Controller) Remaining() int {
	if c.clock == nil {
		return 0
	}
	return c.clock.Remaining(c.now())
}

// Settings returns the configured language and duration in seconds.
func (c *Controller) Settings() (string, int) {
	return c.lang, c.seconds
}

// Lang returns the configured language key.
func (c *Controller) Lang() string {
	return c.lang
}

// Seconds returns the configured duration.
func (c *Controller) Seconds() int {
	return c.seconds
}

// ID returns the identifier of the active session.
func (c *Controller) ID() string {
	return c.id
}
