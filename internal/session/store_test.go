package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"discord_rps/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateConsumeOnce(t *testing.T) {
	s := NewStore(0)

	require.NoError(t, s.Create("E1", "U1", game.Rock))

	got, ok := s.Get("E1")
	require.True(t, ok)
	assert.Equal(t, "U1", got.ChallengerID)
	assert.Equal(t, game.Rock, got.ChallengerChoice)
	assert.Equal(t, 1, s.Len())

	consumed, ok := s.ConsumeAndDelete("E1")
	require.True(t, ok)
	assert.Equal(t, got, consumed)

	_, ok = s.ConsumeAndDelete("E1")
	assert.False(t, ok, "second consume must observe absent")

	_, ok = s.Get("E1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_CreateDuplicate(t *testing.T) {
	s := NewStore(0)

	require.NoError(t, s.Create("E1", "U1", game.Rock))
	err := s.Create("E1", "U2", game.Paper)
	require.ErrorIs(t, err, ErrSessionExists)

	got, ok := s.Get("E1")
	require.True(t, ok)
	assert.Equal(t, "U1", got.ChallengerID, "existing session must not be overwritten")
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	s := NewStore(0)

	assert.ErrorIs(t, s.Create("", "U1", game.Rock), ErrInvalidSession)
	assert.ErrorIs(t, s.Create("E1", "", game.Rock), ErrInvalidSession)

	err := s.Create("E1", "U1", "lizard")
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.ErrorIs(t, err, game.ErrInvalidChoice)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentConsume(t *testing.T) {
	for round := 0; round < 20; round++ {
		s := NewStore(0)
		require.NoError(t, s.Create("E", "U1", game.Scissors))

		var (
			wg    sync.WaitGroup
			hits  atomic.Int32
			start = make(chan struct{})
		)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if _, ok := s.ConsumeAndDelete("E"); ok {
					hits.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), hits.Load())
	}
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	require.NoError(t, s.Create("E1", "U1", game.Paper))

	require.Eventually(t, func() bool {
		_, ok := s.Get("E1")
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, ok := s.ConsumeAndDelete("E1")
	assert.False(t, ok)

	// the id can be reused once the old session expired
	require.NoError(t, s.Create("E1", "U1", game.Paper))
}
