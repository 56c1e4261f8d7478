package toggle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

const owner = int64(100)

func TestFlip_TwiceRestores(t *testing.T) {
	for _, initial := range []bool{true, false} {
		tg := New(owner, initial)
		v, err := tg.Flip(owner)
		require.NoError(t, err)
		assert.Equal(t, !initial, v)
		v, err = tg.Flip(owner)
		require.NoError(t, err)
		assert.Equal(t, initial, v)
		assert.Equal(t, initial, tg.Enabled())
	}
}

func TestNonOwnerRejected(t *testing.T) {
	tg := New(owner, true)

	_, err := tg.Flip(7)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	require.ErrorIs(t, tg.Set(7, false), domain.ErrUnauthorized)
	assert.True(t, tg.Enabled())

	require.NoError(t, tg.Set(owner, false))
	assert.False(t, tg.Enabled())
}

func TestConcurrentFlips(t *testing.T) {
	tg := New(owner, false)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = tg.Flip(owner)
		}()
		go func() {
			defer wg.Done()
			_ = tg.Enabled()
		}()
	}
	wg.Wait()
	// an even number of flips restores the initial value
	assert.False(t, tg.Enabled())
}
