package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/pvp"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
	"github.com/cory-johannsen/arena/internal/testutil"
)

func TestMatchRepository_CreateAndGet(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewMatchRepository(pool)
	ctx := context.Background()

	attacker, err := chars.Create(ctx, makeTestCharacter(uniqueName("att")))
	require.NoError(t, err)
	defender, err := chars.Create(ctx, makeTestCharacter(uniqueName("def")))
	require.NoError(t, err)

	res := pvp.SimulateMatch(attacker.Snapshot(), defender.Snapshot(), attacker.Rating, defender.Rating, 42)

	created, err := repo.Create(ctx, postgres.NewMatchRecord(attacker.ID, defender.ID, res))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, attacker.ID, got.AttackerID)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, res.Winner, got.Winner)
	assert.Equal(t, res.RatingDelta, got.RatingDelta)
	require.NotEmpty(t, got.Log)
	assert.Equal(t, res.Log[0].Message, got.Log[0].Message)
	assert.Equal(t, combat.EventDefeat, got.Log[len(got.Log)-1].Type)
}

func TestMatchRepository_GetMissing(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewMatchRepository(pool)

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, postgres.ErrMatchNotFound)
}

func TestMatchRepository_ListByCharacter(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewMatchRepository(pool)
	ctx := context.Background()

	a, err := chars.Create(ctx, makeTestCharacter(uniqueName("a")))
	require.NoError(t, err)
	b, err := chars.Create(ctx, makeTestCharacter(uniqueName("b")))
	require.NoError(t, err)

	for seed := int64(1); seed <= 3; seed++ {
		res := pvp.SimulateMatch(a.Snapshot(), b.Snapshot(), a.Rating, b.Rating, seed)
		_, err := repo.Create(ctx, postgres.NewMatchRecord(a.ID, b.ID, res))
		require.NoError(t, err)
	}

	// Both sides see the same history.
	forA, err := repo.ListByCharacter(ctx, a.ID, 10)
	require.NoError(t, err)
	assert.Len(t, forA, 3)

	forB, err := repo.ListByCharacter(ctx, b.ID, 2)
	require.NoError(t, err)
	assert.Len(t, forB, 2)
}
