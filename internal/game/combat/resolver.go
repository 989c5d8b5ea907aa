// Package combat implements attack resolution, initiative, and the
// interactive turn-based combat session.
package combat

import (
	"math"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// AttackResult holds the outcome of a single basic attack.
type AttackResult struct {
	// Damage is the final damage dealt. Zero iff the attack was evaded.
	Damage int
	// Crit is true when the critical roll doubled the damage.
	Crit bool
	// Evaded is true when the defender fully negated the attack.
	Evaded bool
}

// EvasionChance returns the defender's percentage chance to evade:
// evasion + luck/2.
func EvasionChance(def character.Stats) float64 {
	return float64(def.Evasion) + float64(def.Luck)*0.5
}

// CritChance returns the attacker's percentage chance to crit:
// crit chance + luck/2.
func CritChance(atk character.Stats) float64 {
	return float64(atk.CritChance) + float64(atk.Luck)*0.5
}

// ResolveAttack computes one basic attack of atk against def.
//
// The evasion roll happens first and pre-empts everything: an evaded attack
// deals zero damage and cannot crit. Otherwise base damage is
// max(1, floor((attack - defense/2) * f)) with f uniform in [0.8, 1.2], so
// defense alone never nullifies a hit. A second independent roll may then
// double the damage.
//
// ResolveAttack holds no randomness state of its own; all draws come from
// src, so a seeded source replays the exact same outcome.
//
// Precondition: src must be non-nil.
// Postcondition: result.Damage >= 0; result.Damage == 0 iff result.Evaded.
func ResolveAttack(atk, def character.Stats, src rng.Source) AttackResult {
	if src.Float64()*100 < EvasionChance(def) {
		return AttackResult{Evaded: true}
	}

	factor := 0.8 + src.Float64()*0.4
	raw := (float64(atk.Attack) - float64(def.Defense)*0.5) * factor
	damage := int(math.Floor(raw))
	if damage < 1 {
		damage = 1
	}

	crit := src.Float64()*100 < CritChance(atk)
	if crit {
		damage *= 2
	}

	return AttackResult{Damage: damage, Crit: crit}
}
