// Package character defines the combatant domain model: classes, stat
// blocks, progression, and opponent generation.
package character

import "time"

// Class identifies a character's combat archetype.
type Class string

const (
	ClassFighter Class = "fighter"
	ClassCaster  Class = "caster"
	ClassArcher  Class = "archer"
)

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	switch c {
	case ClassFighter, ClassCaster, ClassArcher:
		return true
	}
	return false
}

// Stats is a combatant's stat block. Evasion and CritChance are percentage
// points; Luck feeds both at half weight.
//
// Invariant: Health <= MaxHealth; values are >= 0 except where a class
// modifier explicitly grants a negative one.
type Stats struct {
	Health     int
	MaxHealth  int
	Attack     int
	Defense    int
	Speed      int
	Evasion    int
	CritChance int
	Luck       int
}

// Character represents a player or generated opponent.
//
// ID is set by the persistence layer; a zero ID marks an ephemeral record
// (generated enemies, unsaved characters).
type Character struct {
	ID        int64
	AccountID int64

	Name       string
	Class      Class
	Level      int
	Experience int
	Stats      Stats

	// Competitive and economic state, mutated only by callers committing
	// engine results, never by the engines themselves.
	Rating    int
	Gold      int
	WinStreak int
	Insurance int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot returns an independent copy for simulation. Mutating the
// snapshot never touches the live record.
func (c *Character) Snapshot() Character {
	return *c
}

// ApplyDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: Stats.Health >= 0.
func (c *Character) ApplyDamage(amount int) {
	c.Stats.Health -= amount
	if c.Stats.Health < 0 {
		c.Stats.Health = 0
	}
}

// Heal raises Health by amount, capped at MaxHealth.
//
// Precondition: amount >= 0.
// Postcondition: Stats.Health <= Stats.MaxHealth.
func (c *Character) Heal(amount int) {
	c.Stats.Health += amount
	if c.Stats.Health > c.Stats.MaxHealth {
		c.Stats.Health = c.Stats.MaxHealth
	}
}

// IsDefeated reports whether the character's health has reached zero.
func (c *Character) IsDefeated() bool {
	return c.Stats.Health <= 0
}
