package character

import (
	"errors"
	"fmt"
)

// baseStats holds the level-1 stat block for each class.
// Fighters hit hard and soak damage, casters trade defense for attack and
// luck, archers lead on speed and crit.
var baseStats = map[Class]Stats{
	ClassFighter: {MaxHealth: 120, Attack: 14, Defense: 10, Speed: 8, Evasion: 5, CritChance: 5, Luck: 5},
	ClassCaster:  {MaxHealth: 90, Attack: 18, Defense: 6, Speed: 10, Evasion: 8, CritChance: 8, Luck: 8},
	ClassArcher:  {MaxHealth: 100, Attack: 16, Defense: 8, Speed: 14, Evasion: 12, CritChance: 12, Luck: 6},
}

// growthPerLevel holds the automatic stat increments applied at each
// level-up, before any player-chosen increments.
var growthPerLevel = map[Class]Stats{
	ClassFighter: {MaxHealth: 12, Attack: 2, Defense: 2, Speed: 1, Evasion: 0, CritChance: 0, Luck: 1},
	ClassCaster:  {MaxHealth: 8, Attack: 3, Defense: 1, Speed: 1, Evasion: 1, CritChance: 1, Luck: 1},
	ClassArcher:  {MaxHealth: 10, Attack: 2, Defense: 1, Speed: 2, Evasion: 1, CritChance: 1, Luck: 1},
}

// Build constructs a new level-1 Character of the given class.
//
// Precondition: name must be non-empty; class must be valid.
// Postcondition: Returns a Character at full health ready for persistence,
// or a non-nil error.
func Build(name string, class Class) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if !class.Valid() {
		return nil, fmt.Errorf("unknown class %q", class)
	}

	stats := baseStats[class]
	stats.Health = stats.MaxHealth

	return &Character{
		Name:   name,
		Class:  class,
		Level:  1,
		Stats:  stats,
		Rating: 1000,
	}, nil
}

// BaseStats returns the level-1 stat block for class.
//
// Precondition: class must be valid.
func BaseStats(class Class) Stats {
	s, ok := baseStats[class]
	if !ok {
		panic(fmt.Sprintf("character: BaseStats for unknown class %q", class))
	}
	return s
}
