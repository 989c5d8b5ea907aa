package character

import (
	"fmt"

	"github.com/google/uuid"
)

// enemyNames provides flavor names for generated opponents, keyed by class.
var enemyNames = map[Class][]string{
	ClassFighter: {"Pit Bruiser", "Iron Legionnaire", "Scarred Duelist"},
	ClassCaster:  {"Ember Adept", "Hollow Sage", "Stormcaller"},
	ClassArcher:  {"Gutter Sniper", "Dune Stalker", "Veiled Marksman"},
}

// generatedName tags a flavor name with a short unique suffix so two
// generated opponents are distinguishable in logs.
func generatedName(base string) string {
	return fmt.Sprintf("%s [%s]", base, uuid.New().String()[:8])
}

// GenerateEnemy produces an ephemeral opponent of the given class scaled to
// level via the standard growth table. Generated opponents are never
// persisted, so ID stays zero.
//
// Precondition: class must be valid.
// Postcondition: Returns a full-health Character with ID == 0.
func GenerateEnemy(class Class, level int) *Character {
	if !class.Valid() {
		panic(fmt.Sprintf("character: GenerateEnemy with unknown class %q", class))
	}
	if level < 1 {
		level = 1
	}

	stats := baseStats[class]
	growth := growthPerLevel[class]
	for i := 1; i < level; i++ {
		stats.MaxHealth += growth.MaxHealth
		stats.Attack += growth.Attack
		stats.Defense += growth.Defense
		stats.Speed += growth.Speed
		stats.Evasion += growth.Evasion
		stats.CritChance += growth.CritChance
		stats.Luck += growth.Luck
	}
	stats.Health = stats.MaxHealth

	names := enemyNames[class]
	return &Character{
		Name:   generatedName(names[level%len(names)]),
		Class:  class,
		Level:  level,
		Stats:  stats,
		Rating: 1000,
	}
}

// GenerateBoss produces a boss-grade opponent: enemy stats with +50% health
// and +25% attack, floored to integers.
//
// Precondition: class must be valid; level >= 1.
// Postcondition: Returns a full-health Character with ID == 0.
func GenerateBoss(class Class, level int) *Character {
	boss := GenerateEnemy(class, level)
	boss.Stats.MaxHealth = boss.Stats.MaxHealth * 3 / 2
	boss.Stats.Health = boss.Stats.MaxHealth
	boss.Stats.Attack = boss.Stats.Attack * 5 / 4
	boss.Name = "Boss " + boss.Name
	return boss
}
