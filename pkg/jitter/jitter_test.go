package jitter

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_WithinBounds(t *testing.T) {
	base := time.Second

	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestDuration_ZeroFactor(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
}

func TestDurationWithSeed_Deterministic(t *testing.T) {
	a := DurationWithSeed(time.Second, DefaultJitter, rand.New(rand.NewSource(42)))
	b := DurationWithSeed(time.Second, DefaultJitter, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestExponentialBackoff_Growth(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	first := ExponentialBackoff(base, max, 0, 0)
	second := ExponentialBackoff(base, max, 1, 0)
	third := ExponentialBackoff(base, max, 2, 0)

	assert.Equal(t, base, first)
	assert.Equal(t, 2*base, second)
	assert.Equal(t, 4*base, third)
}

func TestExponentialBackoff_CapsAtMax(t *testing.T) {
	base := 100 * time.Millisecond
	max := 300 * time.Millisecond

	d := ExponentialBackoff(base, max, 10, 0)
	assert.Equal(t, max, d)
}
