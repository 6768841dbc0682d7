package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockStartIsIdempotent(t *testing.T) {
	c := NewClock(30 * time.Second)
	t0 := time.Unix(1000, 0)
	c.Start(t0)
	c.Start(t0.Add(700 * time.Millisecond))

	require.True(t, c.Started())
	assert.Equal(t, t0, c.StartedAt())
}

func TestClockTickBeforeStart(t *testing.T) {
	c := NewClock(time.Second)
	assert.False(t, c.Tick(time.Unix(5000, 0)))
	assert.False(t, c.Expired())
	assert.Equal(t, 1, c.Remaining(time.Unix(5000, 0)))
}

func TestClockExpiresOnce(t *testing.T) {
	c := NewClock(15 * time.Second)
	t0 := time.Unix(1000, 0)
	c.Start(t0)

	assert.False(t, c.Tick(t0.Add(14*time.Second)))
	assert.Equal(t, 1, c.Remaining(t0.Add(14*time.Second)))
	// A late tick still fires exactly once.
	assert.True(t, c.Tick(t0.Add(40*time.Second)))
	assert.False(t, c.Tick(t0.Add(41*time.Second)))
	assert.True(t, c.Expired())
	assert.Zero(t, c.Remaining(t0.Add(41*time.Second)))
}

func TestClockExpiresAtExactDuration(t *testing.T) {
	c := NewClock(30 * time.Second)
	t0 := time.Unix(0, 0)
	c.Start(t0)
	assert.True(t, c.Tick(t0.Add(30*time.Second)))
}

func TestClockRemainingRounds(t *testing.T) {
	c := NewClock(30 * time.Second)
	t0 := time.Unix(0, 0)
	c.Start(t0)
	assert.Equal(t, 30, c.Remaining(t0.Add(400*time.Millisecond)))
	assert.Equal(t, 29, c.Remaining(t0.Add(600*time.Millisecond)))
}
