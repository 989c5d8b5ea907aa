package combat

import (
	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// Side designates one of the two participants in a fight.
type Side int

const (
	SideAttacker Side = iota
	SideDefender
)

// String returns the side label.
func (s Side) String() string {
	if s == SideAttacker {
		return "attacker"
	}
	return "defender"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideAttacker {
		return SideDefender
	}
	return SideAttacker
}

// RollInitiative decides who acts first. Strictly higher speed always wins;
// an exact tie is broken by an unweighted coin flip from src.
//
// Precondition: src must be non-nil.
// Postcondition: Deterministic (no draw) whenever speeds differ.
func RollInitiative(attacker, defender character.Stats, src rng.Source) Side {
	switch {
	case attacker.Speed > defender.Speed:
		return SideAttacker
	case defender.Speed > attacker.Speed:
		return SideDefender
	}
	if src.Float64() < 0.5 {
		return SideAttacker
	}
	return SideDefender
}
