// Package skill defines the per-class active skill catalog and cooldown
// bookkeeping.
//
// Skills carry no randomness: their damage and healing derive solely from
// the user's attack stat via fixed multipliers, so skill outcomes replay
// identically in simulated matches. Only the basic attack path is
// randomized.
package skill

import (
	"math"

	"github.com/cory-johannsen/arena/internal/game/character"
)

// Skill is one active combat skill.
type Skill struct {
	ID   string
	Name string
	// Class is the only class allowed to use this skill.
	Class character.Class
	// Cooldown is the number of turns before the skill is ready again.
	Cooldown int
	// DamageMult scales the user's attack stat into damage.
	DamageMult float64
	// HealFrac converts a fraction of dealt damage into healing for the
	// user. Zero for most skills.
	HealFrac float64
}

// catalog is the fixed skill set. Each class sees exactly its own entries.
var catalog = []Skill{
	{ID: "power_strike", Name: "Power Strike", Class: character.ClassFighter, Cooldown: 2, DamageMult: 2.5},
	{ID: "berserker_blow", Name: "Berserker Blow", Class: character.ClassFighter, Cooldown: 4, DamageMult: 3.0},

	{ID: "fireball", Name: "Fireball", Class: character.ClassCaster, Cooldown: 2, DamageMult: 2.5},
	{ID: "drain_life", Name: "Drain Life", Class: character.ClassCaster, Cooldown: 3, DamageMult: 2.0, HealFrac: 0.5},

	{ID: "piercing_arrow", Name: "Piercing Arrow", Class: character.ClassArcher, Cooldown: 2, DamageMult: 2.5},
	{ID: "double_shot", Name: "Double Shot", Class: character.ClassArcher, Cooldown: 4, DamageMult: 3.0},
}

// ForClass returns the skill catalog visible to class, in catalog order.
//
// Postcondition: Every returned skill has Class == class.
func ForClass(class character.Class) []Skill {
	var out []Skill
	for _, s := range catalog {
		if s.Class == class {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the skill with the given id.
//
// Postcondition: Returns (skill, true) if found, or (zero, false) otherwise.
func Get(id string) (Skill, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Damage returns the deterministic damage s deals for a user with the
// given attack stat: floor(attack * multiplier).
func (s Skill) Damage(attack int) int {
	return int(math.Floor(float64(attack) * s.DamageMult))
}

// Healing returns the healing s grants its user for the given damage
// dealt: floor(damage * heal fraction).
func (s Skill) Healing(damage int) int {
	if s.HealFrac == 0 {
		return 0
	}
	return int(math.Floor(float64(damage) * s.HealFrac))
}
