package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTL_Get(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTL[int](time.Minute)
	c.now = func() time.Time { return now }

	loads := 0
	load := func() (int, error) {
		loads++
		return loads, nil
	}

	v, err := c.Get("riders", load)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = c.Get("riders", load)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "served from cache")

	v, err = c.Get("donations", load)
	require.NoError(t, err)
	assert.Equal(t, 2, v, "keys are independent")

	now = now.Add(time.Minute)
	v, err = c.Get("riders", load)
	require.NoError(t, err)
	assert.Equal(t, 3, v, "expired entry reloads")

	c.Invalidate()
	v, err = c.Get("riders", load)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestTTL_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	c := NewTTL[string](time.Minute)

	_, err := c.Get("k", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)

	v, err := c.Get("k", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestTTL_ZeroDisables(t *testing.T) {
	t.Parallel()

	c := NewTTL[int](0)
	calls := 0
	for range 3 {
		_, err := c.Get("k", func() (int, error) { calls++; return calls, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
