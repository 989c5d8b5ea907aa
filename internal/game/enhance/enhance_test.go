package enhance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/enhance"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
)

func sword(level int) equipment.Equipment {
	return equipment.Equipment{
		ID:          1,
		Name:        "Ember Blade",
		Slot:        equipment.SlotWeapon,
		Rarity:      equipment.RarityRare,
		Bonuses:     map[equipment.BonusStat]int{equipment.BonusAttack: 10},
		Enhancement: level,
	}
}

func TestCanEnhance_AtCapRefused(t *testing.T) {
	tbl := tuning.Default().Enhancement
	el := enhance.CanEnhance(sword(tbl.MaxLevel), 1_000_000, nil, tbl)
	assert.False(t, el.OK)
	assert.Contains(t, el.Reason, "maximum enhancement level")
}

func TestCanEnhance_InsufficientGold(t *testing.T) {
	tbl := tuning.Default().Enhancement
	el := enhance.CanEnhance(sword(0), tbl.Costs[0].Gold-1, nil, tbl)
	assert.False(t, el.OK)
	assert.Contains(t, el.Reason, "not enough gold")
}

func TestCanEnhance_InsufficientShards(t *testing.T) {
	tbl := tuning.Default().Enhancement
	// Level 5 needs rare shards; an empty pouch is refused even with gold.
	el := enhance.CanEnhance(sword(5), 1_000_000, map[equipment.Rarity]int{}, tbl)
	assert.False(t, el.OK)
	assert.Contains(t, el.Reason, "shards")
}

func TestCanEnhance_CoveredCostApproved(t *testing.T) {
	tbl := tuning.Default().Enhancement
	shards := map[equipment.Rarity]int{tbl.Costs[5].ShardRarity: tbl.Costs[5].Shards}
	el := enhance.CanEnhance(sword(5), tbl.Costs[5].Gold, shards, tbl)
	require.True(t, el.OK)
	assert.Equal(t, tbl.Costs[5], el.Cost)
	assert.Empty(t, el.Reason)
}

func TestCanEnhance_IsPure(t *testing.T) {
	tbl := tuning.Default().Enhancement
	eq := sword(3)
	enhance.CanEnhance(eq, 10_000, nil, tbl)
	assert.Equal(t, 3, eq.Enhancement)
}

func TestAttempt_LevelZeroNeverFails(t *testing.T) {
	tbl := tuning.Default().Enhancement
	for _, roll := range []float64{0.0, 0.5, 0.999} {
		res, err := enhance.AttemptWithRoll(sword(0), false, enhance.FailKeep, tbl, roll)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.NewLevel)
	}
}

func TestAttempt_LowLevelFailureIsHarmless(t *testing.T) {
	tbl := tuning.Default().Enhancement
	// Level 3 at 90%: a roll of 0.95 fails with no penalty.
	res, err := enhance.AttemptWithRoll(sword(3), false, enhance.FailKeep, tbl, 0.95)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.Destroyed)
	assert.Equal(t, 3, res.NewLevel)
}

func TestAttempt_MidLevelFailureRegresses(t *testing.T) {
	tbl := tuning.Default().Enhancement
	for _, level := range []int{4, 5} {
		res, err := enhance.AttemptWithRoll(sword(level), false, enhance.FailKeep, tbl, 0.99)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.False(t, res.Destroyed)
		assert.Equal(t, level-1, res.NewLevel)
	}
}

func TestAttempt_HighLevelFailureDestroys(t *testing.T) {
	tbl := tuning.Default().Enhancement
	// A +9 item, no protection, failed roll: gone.
	res, err := enhance.AttemptWithRoll(sword(9), false, enhance.FailKeep, tbl, 0.99)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.Destroyed)
}

func TestAttempt_ProtectionSuppressesDestruction(t *testing.T) {
	tbl := tuning.Default().Enhancement

	res, err := enhance.AttemptWithRoll(sword(9), true, enhance.FailKeep, tbl, 0.99)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.Destroyed)
	assert.Equal(t, 9, res.NewLevel)

	res, err = enhance.AttemptWithRoll(sword(9), true, enhance.FailRegress, tbl, 0.99)
	require.NoError(t, err)
	assert.False(t, res.Destroyed)
	assert.Equal(t, 8, res.NewLevel)
}

func TestAttempt_SuccessAboveDestructionBand(t *testing.T) {
	tbl := tuning.Default().Enhancement
	res, err := enhance.AttemptWithRoll(sword(9), false, enhance.FailKeep, tbl, 0.1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 10, res.NewLevel)
}

func TestAttempt_AtCapIsError(t *testing.T) {
	tbl := tuning.Default().Enhancement
	_, err := enhance.AttemptWithRoll(sword(tbl.MaxLevel), false, enhance.FailKeep, tbl, 0.0)
	assert.Error(t, err)
}

func TestAttempt_DrawsFromSource(t *testing.T) {
	tbl := tuning.Default().Enhancement
	res, err := enhance.Attempt(sword(0), false, enhance.FailKeep, tbl, rng.NewSeededSource(1))
	require.NoError(t, err)
	assert.True(t, res.Success, "level 0 succeeds for any draw")
}

func TestAttempt_Properties(t *testing.T) {
	tbl := tuning.Default().Enhancement
	rapid.Check(t, func(t *rapid.T) {
		level := rapid.IntRange(0, tbl.MaxLevel-1).Draw(t, "level")
		roll := rapid.Float64Range(0, 0.9999).Draw(t, "roll")
		protected := rapid.Bool().Draw(t, "protected")

		res, err := enhance.AttemptWithRoll(sword(level), protected, enhance.FailKeep, tbl, roll)
		require.NoError(t, err)

		if protected {
			assert.False(t, res.Destroyed, "protection must always suppress destruction")
		}
		if res.Success {
			assert.Equal(t, level+1, res.NewLevel)
		}
		if !res.Destroyed {
			assert.GreaterOrEqual(t, res.NewLevel, level-1)
			assert.LessOrEqual(t, res.NewLevel, level+1)
		}
		assert.NotEmpty(t, res.Message)
	})
}
