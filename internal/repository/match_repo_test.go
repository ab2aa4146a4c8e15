package repository

import (
	"context"
	"os"
	"testing"

	"discord_rps/internal/db"
	"discord_rps/internal/domain"
	"discord_rps/internal/game"
	"discord_rps/internal/migrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration-style test: runs only if DATABASE_URL env is set.
func TestMatchRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
	ctx := context.Background()

	pool, err := db.Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = migrations.Apply(ctx, pool)
	require.NoError(t, err)

	repo := NewMatchRepository(pool)

	challenger := game.Player{ID: "U-" + uuid.NewString(), Choice: game.Rock}
	opponent := game.Player{ID: "U-" + uuid.NewString(), Choice: game.Scissors}
	res, err := game.Decide(challenger, opponent)
	require.NoError(t, err)

	m := domain.NewMatch(uuid.NewString(), challenger, opponent, res)
	require.NoError(t, repo.Record(ctx, m))
	assert.NotZero(t, m.ID)

	// recording the same session again is a no-op
	dup := domain.NewMatch(m.SessionID, challenger, opponent, res)
	require.NoError(t, repo.Record(ctx, dup))

	for _, id := range []string{challenger.ID, opponent.ID} {
		got, err := repo.ListByUser(ctx, id, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, m.SessionID, got[0].SessionID)
	}

	got, err := repo.ListByUser(ctx, challenger.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.GameResultWin, got[0].ResultFor(challenger.ID))
	assert.Equal(t, domain.GameResultLose, got[0].ResultFor(opponent.ID))
}
