package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
	"github.com/cory-johannsen/arena/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func makeTestCharacter(name string) *character.Character {
	c, err := character.Build(name, character.ClassFighter)
	if err != nil {
		panic(err)
	}
	c.AccountID = 1
	c.Gold = 500
	c.Insurance = 1
	return c
}

func TestCharacterRepository_Create(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter("Zara"))
	require.NoError(t, err)

	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, "Zara", created.Name)
	assert.Equal(t, character.ClassFighter, created.Class)
	assert.Equal(t, 1, created.Level)
	assert.Equal(t, 1000, created.Rating)
	assert.Equal(t, 500, created.Gold)
	assert.Equal(t, 120, created.Stats.MaxHealth)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCharacterRepository_DuplicateNameError(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeTestCharacter("Dupe"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, makeTestCharacter("Dupe"))
	assert.ErrorIs(t, err, postgres.ErrCharacterNameTaken)
}

func TestCharacterRepository_GetByID(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter(uniqueName("char")))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Stats, got.Stats)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, postgres.ErrCharacterNotFound)
}

func TestCharacterRepository_ListByAccount(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, makeTestCharacter(uniqueName("roster")))
		require.NoError(t, err)
	}

	chars, err := repo.ListByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, chars, 3)

	empty, err := repo.ListByAccount(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCharacterRepository_SaveProgress(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter(uniqueName("prog")))
	require.NoError(t, err)

	created.Level = 3
	created.Experience = 40
	created.Rating = 1029
	created.Gold = 760
	created.WinStreak = 4
	created.Stats.Attack = 20

	require.NoError(t, repo.SaveProgress(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 1029, got.Rating)
	assert.Equal(t, 760, got.Gold)
	assert.Equal(t, 4, got.WinStreak)
	assert.Equal(t, 20, got.Stats.Attack)

	missing := makeTestCharacter(uniqueName("ghost"))
	missing.ID = 99999
	assert.ErrorIs(t, repo.SaveProgress(ctx, missing), postgres.ErrCharacterNotFound)
}

func TestCharacterRepository_ConsumeInsurance(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCharacterRepository(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeTestCharacter(uniqueName("insured")))
	require.NoError(t, err)
	require.Equal(t, 1, created.Insurance)

	// The single charge can be spent exactly once.
	ok, err := repo.ConsumeInsurance(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ConsumeInsurance(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Insurance)
}
