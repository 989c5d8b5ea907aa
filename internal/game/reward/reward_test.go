package reward_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/reward"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
)

// scriptSource replays a fixed sequence of draws, cycling at the end.
type scriptSource struct {
	draws []float64
	i     int
}

func (s *scriptSource) Float64() float64 {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v
}

func (s *scriptSource) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

func combatant(level, rating int) character.Character {
	return character.Character{Name: "x", Level: level, Rating: rating}
}

// noDrop misses the material roll on the first draw.
func noDrop() rng.Source { return &scriptSource{draws: []float64{0.99}} }

func TestRewardsFor_EvenMatchPaysBase(t *testing.T) {
	set := reward.RewardsFor(combatant(5, 1000), combatant(5, 1000), 0, tuning.Default().Rewards, noDrop())
	assert.Equal(t, 50, set.Gold)
	assert.Equal(t, 50, set.Experience)
	assert.Zero(t, set.StreakBonus)
	assert.Nil(t, set.Material)
}

func TestRewardsFor_RatingModifierClamps(t *testing.T) {
	tbl := tuning.Default().Rewards

	// Beating a far weaker opponent bottoms out at half pay.
	set := reward.RewardsFor(combatant(5, 2000), combatant(5, 1000), 0, tbl, noDrop())
	assert.Equal(t, 25, set.Gold)

	// An upset against a far stronger opponent caps at double pay.
	set = reward.RewardsFor(combatant(5, 1000), combatant(5, 2000), 0, tbl, noDrop())
	assert.Equal(t, 100, set.Gold)
}

func TestRewardsFor_LevelModifierClamps(t *testing.T) {
	tbl := tuning.Default().Rewards

	set := reward.RewardsFor(combatant(10, 1000), combatant(1, 1000), 0, tbl, noDrop())
	assert.Equal(t, 40, set.Gold, "far lower-level loser bottoms out at 0.8")

	set = reward.RewardsFor(combatant(10, 1000), combatant(40, 1000), 0, tbl, noDrop())
	assert.Equal(t, 75, set.Gold, "far higher-level loser caps at 1.5")
}

func TestRewardsFor_StreakBonus(t *testing.T) {
	tbl := tuning.Default().Rewards

	// Below the threshold: no bonus.
	set := reward.RewardsFor(combatant(5, 1000), combatant(5, 1000), 2, tbl, noDrop())
	assert.Zero(t, set.StreakBonus)
	assert.Equal(t, 50, set.Gold)

	// At the threshold: floor(50 * 0.2 * 1) = 10, additive.
	set = reward.RewardsFor(combatant(5, 1000), combatant(5, 1000), 3, tbl, noDrop())
	assert.Equal(t, 10, set.StreakBonus)
	assert.Equal(t, 60, set.Gold)

	// A huge streak saturates the multiplier: floor(50 * 0.2 * 3) = 30.
	set = reward.RewardsFor(combatant(5, 1000), combatant(5, 1000), 100, tbl, noDrop())
	assert.Equal(t, 30, set.StreakBonus)
	assert.Equal(t, 80, set.Gold)
}

func TestRewardsFor_MaterialDrop(t *testing.T) {
	tbl := tuning.Default().Rewards

	// Level 1 loser: chance 0.32. First draw hits, second picks the tier.
	set := reward.RewardsFor(combatant(5, 1000), combatant(1, 1000), 0, tbl,
		&scriptSource{draws: []float64{0.0, 0.0}})
	require.NotNil(t, set.Material)
	assert.Equal(t, equipment.RarityCommon, set.Material.Rarity)
	assert.NotEmpty(t, set.Material.ID)
	assert.Contains(t, set.Material.Name, "shard")

	// A draw in the top 3% of the band lands legendary.
	set = reward.RewardsFor(combatant(5, 1000), combatant(1, 1000), 0, tbl,
		&scriptSource{draws: []float64{0.0, 0.999}})
	require.NotNil(t, set.Material)
	assert.Equal(t, equipment.RarityLegendary, set.Material.Rarity)

	// A draw above the 0.32 chance misses.
	set = reward.RewardsFor(combatant(5, 1000), combatant(1, 1000), 0, tbl,
		&scriptSource{draws: []float64{0.33}})
	assert.Nil(t, set.Material)
}

func TestRewardsFor_MaterialChanceCeiling(t *testing.T) {
	// Even against a level 100 loser the chance tops out at 0.7.
	set := reward.RewardsFor(combatant(5, 1000), combatant(100, 1000), 0, tuning.Default().Rewards,
		&scriptSource{draws: []float64{0.75}})
	assert.Nil(t, set.Material)
}

func TestRewardsFor_Properties(t *testing.T) {
	tbl := tuning.Default().Rewards
	rapid.Check(t, func(t *rapid.T) {
		winner := combatant(rapid.IntRange(1, 100).Draw(t, "wl"), rapid.IntRange(0, 3000).Draw(t, "wr"))
		loser := combatant(rapid.IntRange(1, 100).Draw(t, "ll"), rapid.IntRange(0, 3000).Draw(t, "lr"))
		streak := rapid.IntRange(0, 50).Draw(t, "streak")
		seed := rapid.Int64().Draw(t, "seed")

		set := reward.RewardsFor(winner, loser, streak, tbl, rng.NewSeededSource(seed))
		assert.GreaterOrEqual(t, set.Gold, 0)
		assert.GreaterOrEqual(t, set.Experience, 0)
		assert.GreaterOrEqual(t, set.StreakBonus, 0)
		assert.LessOrEqual(t, set.StreakBonus, set.Gold)
		if set.Material != nil {
			assert.NotEmpty(t, set.Material.ID)
		}
	})
}
