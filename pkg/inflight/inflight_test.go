package inflight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyed_SecondAcquireRejected(t *testing.T) {
	k := NewKeyed()

	release, err := k.Acquire("js-1")
	require.NoError(t, err)
	assert.True(t, k.Busy("js-1"))

	_, err = k.Acquire("js-1")
	assert.ErrorIs(t, err, ErrInProgress)

	other, err := k.Acquire("js-2")
	require.NoError(t, err)
	other()

	release()
	release()
	assert.False(t, k.Busy("js-1"))

	_, err = k.Acquire("js-1")
	assert.NoError(t, err)
}

func TestGate_RejectsReentryAndReleasesOnError(t *testing.T) {
	var g Gate
	boom := errors.New("boom")

	err := g.Run(func() error {
		assert.True(t, g.Busy())
		assert.ErrorIs(t, g.Run(func() error { return nil }), ErrInProgress)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, g.Busy())
	assert.NoError(t, g.Run(func() error { return nil }))
}
