package skill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/skill"
)

func TestForClass_OnlyOwnSkills(t *testing.T) {
	for _, class := range []character.Class{
		character.ClassFighter, character.ClassCaster, character.ClassArcher,
	} {
		skills := skill.ForClass(class)
		require.NotEmpty(t, skills, "class %s has no skills", class)
		for _, s := range skills {
			assert.Equal(t, class, s.Class)
		}
	}
}

func TestGet(t *testing.T) {
	s, ok := skill.Get("power_strike")
	require.True(t, ok)
	assert.Equal(t, character.ClassFighter, s.Class)

	_, ok = skill.Get("summon_dragon")
	assert.False(t, ok)
}

func TestSkill_Damage_FixedMultiplier(t *testing.T) {
	s, _ := skill.Get("power_strike")
	assert.Equal(t, 50, s.Damage(20)) // floor(20 * 2.5)
	assert.Equal(t, 52, s.Damage(21)) // floor(52.5)
}

func TestSkill_Healing(t *testing.T) {
	drain, _ := skill.Get("drain_life")
	assert.Equal(t, 20, drain.Healing(40))
	assert.Equal(t, 20, drain.Healing(41)) // floor(20.5)

	strike, _ := skill.Get("power_strike")
	assert.Equal(t, 0, strike.Healing(40))
}

func TestUse_Success(t *testing.T) {
	user, _ := character.Build("Alice", character.ClassFighter)
	s, _ := skill.Get("power_strike")

	res, cds := skill.Use(s, user, "Ganger", skill.NewCooldowns())
	require.True(t, res.OK)
	assert.Equal(t, s.Damage(user.Stats.Attack), res.Damage)
	assert.Equal(t, s.Cooldown, cds[s.ID])
	assert.NotEmpty(t, res.Message)
}

func TestUse_OnCooldownRejected(t *testing.T) {
	user, _ := character.Build("Alice", character.ClassFighter)
	s, _ := skill.Get("power_strike")

	_, cds := skill.Use(s, user, "Ganger", skill.NewCooldowns())
	res, after := skill.Use(s, user, "Ganger", cds)
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Reason)
	assert.Equal(t, cds, after, "rejected use must not change cooldowns")
	assert.Zero(t, res.Damage)
}

func TestUse_CrossClassRejected(t *testing.T) {
	user, _ := character.Build("Alice", character.ClassArcher)
	s, _ := skill.Get("fireball")

	res, cds := skill.Use(s, user, "Ganger", skill.NewCooldowns())
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Reason)
	assert.Empty(t, cds)
}

func TestCooldowns_Tick(t *testing.T) {
	cds := skill.Cooldowns{"power_strike": 2, "berserker_blow": 0}

	once := cds.Tick()
	assert.Equal(t, 1, once["power_strike"])
	assert.Equal(t, 0, once["berserker_blow"])

	twice := once.Tick()
	assert.Equal(t, 0, twice["power_strike"])

	// Original untouched.
	assert.Equal(t, 2, cds["power_strike"])
}

func TestCooldowns_Tick_IdempotentOnZeros(t *testing.T) {
	cds := skill.Cooldowns{"a": 0, "b": 0}
	assert.Equal(t, cds, cds.Tick())
}

func TestCooldowns_Property_TickReachesZeroAndStays(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := rapid.IntRange(0, 10).Draw(rt, "start")
		cds := skill.Cooldowns{"x": start}
		for i := 0; i < start+5; i++ {
			next := cds.Tick()
			if cds["x"] > 0 {
				assert.Equal(rt, cds["x"]-1, next["x"], "positive cooldowns decrement by exactly 1")
			} else {
				assert.Equal(rt, 0, next["x"], "cooldowns never go below zero")
			}
			cds = next
		}
		assert.Equal(rt, 0, cds["x"])
	})
}
