package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
	"github.com/cory-johannsen/arena/internal/testutil"
)

func TestEquipmentRepository_CreateAndGet(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewEquipmentRepository(pool)
	ctx := context.Background()

	owner, err := chars.Create(ctx, makeTestCharacter(uniqueName("owner")))
	require.NoError(t, err)

	created, err := repo.Create(ctx, &equipment.Equipment{
		OwnerID: owner.ID,
		Name:    "Ember Blade",
		Slot:    equipment.SlotWeapon,
		Rarity:  equipment.RarityRare,
		Bonuses: map[equipment.BonusStat]int{equipment.BonusAttack: 10, equipment.BonusLuck: 2},
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ember Blade", got.Name)
	assert.Equal(t, equipment.RarityRare, got.Rarity)
	assert.Equal(t, 10, got.Bonuses[equipment.BonusAttack])
	assert.Zero(t, got.Enhancement)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, postgres.ErrEquipmentNotFound)
}

func TestEquipmentRepository_ListByOwner(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewEquipmentRepository(pool)
	ctx := context.Background()

	owner, err := chars.Create(ctx, makeTestCharacter(uniqueName("owner")))
	require.NoError(t, err)

	for _, slot := range equipment.Slots {
		_, err := repo.Create(ctx, &equipment.Equipment{
			OwnerID: owner.ID,
			Name:    string(slot),
			Slot:    slot,
		})
		require.NoError(t, err)
	}

	items, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestEquipmentRepository_SetEnhancement(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewEquipmentRepository(pool)
	ctx := context.Background()

	owner, err := chars.Create(ctx, makeTestCharacter(uniqueName("owner")))
	require.NoError(t, err)
	created, err := repo.Create(ctx, &equipment.Equipment{OwnerID: owner.ID, Name: "Ring", Slot: equipment.SlotAccessory})
	require.NoError(t, err)

	require.NoError(t, repo.SetEnhancement(ctx, created.ID, 4))
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Enhancement)

	assert.ErrorIs(t, repo.SetEnhancement(ctx, 99999, 1), postgres.ErrEquipmentNotFound)
}

func TestEquipmentRepository_TransferOwner(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewEquipmentRepository(pool)
	ctx := context.Background()

	loser, err := chars.Create(ctx, makeTestCharacter(uniqueName("loser")))
	require.NoError(t, err)
	winner, err := chars.Create(ctx, makeTestCharacter(uniqueName("winner")))
	require.NoError(t, err)

	created, err := repo.Create(ctx, &equipment.Equipment{OwnerID: loser.ID, Name: "Mail", Slot: equipment.SlotArmor})
	require.NoError(t, err)

	require.NoError(t, repo.TransferOwner(ctx, created.ID, winner.ID))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.OwnerID)
}

func TestEquipmentRepository_Delete(t *testing.T) {
	pool := testutil.NewPool(t)
	chars := postgres.NewCharacterRepository(pool)
	repo := postgres.NewEquipmentRepository(pool)
	ctx := context.Background()

	owner, err := chars.Create(ctx, makeTestCharacter(uniqueName("owner")))
	require.NoError(t, err)
	created, err := repo.Create(ctx, &equipment.Equipment{OwnerID: owner.ID, Name: "Blade", Slot: equipment.SlotWeapon})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, postgres.ErrEquipmentNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), postgres.ErrEquipmentNotFound)
}
