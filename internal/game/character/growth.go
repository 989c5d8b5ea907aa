package character

// XPForNextLevel returns the experience required to advance from level to
// level+1. The curve is linear: 100 XP per current level.
//
// Precondition: level >= 1.
func XPForNextLevel(level int) int {
	return level * 100
}

// GainExperience adds xp to the character and applies any level-ups earned,
// incrementing Level and growing the stat block per the class growth table.
// Health is topped up to the new MaxHealth on each level gained.
//
// Precondition: xp >= 0; c.Class must be valid.
// Postcondition: Returns the number of levels gained (>= 0).
func (c *Character) GainExperience(xp int) int {
	c.Experience += xp

	levels := 0
	for c.Experience >= XPForNextLevel(c.Level) {
		c.Experience -= XPForNextLevel(c.Level)
		c.Level++
		levels++

		growth := growthPerLevel[c.Class]
		c.Stats.MaxHealth += growth.MaxHealth
		c.Stats.Attack += growth.Attack
		c.Stats.Defense += growth.Defense
		c.Stats.Speed += growth.Speed
		c.Stats.Evasion += growth.Evasion
		c.Stats.CritChance += growth.CritChance
		c.Stats.Luck += growth.Luck
		c.Stats.Health = c.Stats.MaxHealth
	}
	return levels
}

// AllocatableStat names a stat the player may raise with a level-up point.
type AllocatableStat string

const (
	StatAttack     AllocatableStat = "attack"
	StatDefense    AllocatableStat = "defense"
	StatSpeed      AllocatableStat = "speed"
	StatEvasion    AllocatableStat = "evasion"
	StatCritChance AllocatableStat = "crit_chance"
	StatLuck       AllocatableStat = "luck"
	StatMaxHealth  AllocatableStat = "max_health"
)

// AllocatePoint applies one player-chosen stat increment. MaxHealth points
// are worth 5 health; all other stats gain 1.
//
// Postcondition: Returns false (and changes nothing) for an unknown stat.
func (c *Character) AllocatePoint(stat AllocatableStat) bool {
	switch stat {
	case StatAttack:
		c.Stats.Attack++
	case StatDefense:
		c.Stats.Defense++
	case StatSpeed:
		c.Stats.Speed++
	case StatEvasion:
		c.Stats.Evasion++
	case StatCritChance:
		c.Stats.CritChance++
	case StatLuck:
		c.Stats.Luck++
	case StatMaxHealth:
		c.Stats.MaxHealth += 5
		c.Stats.Health += 5
	default:
		return false
	}
	return true
}
