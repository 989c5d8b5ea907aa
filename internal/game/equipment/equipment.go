// Package equipment defines gear records, rarity tiers, and the
// enhancement bonus math applied when computing effective combat stats.
package equipment

import (
	"math"

	"github.com/cory-johannsen/arena/internal/game/character"
)

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotWeapon, SlotArmor, SlotAccessory}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	switch s {
	case SlotWeapon, SlotArmor, SlotAccessory:
		return true
	}
	return false
}

// Rarity is the five-tier quality grade of a piece of equipment.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// String returns the lowercase rarity label.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// Rarities lists every rarity tier in ascending order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// ParseRarity converts a lowercase rarity label back to its tier.
func ParseRarity(s string) (Rarity, bool) {
	for _, r := range Rarities {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// BonusStat names a stat an equipment bonus can raise.
type BonusStat string

const (
	BonusAttack     BonusStat = "attack"
	BonusDefense    BonusStat = "defense"
	BonusSpeed      BonusStat = "speed"
	BonusEvasion    BonusStat = "evasion"
	BonusCritChance BonusStat = "crit_chance"
	BonusLuck       BonusStat = "luck"
	BonusMaxHealth  BonusStat = "max_health"
)

// MaxEnhancementLevel is the hard cap on enhancement.
const MaxEnhancementLevel = 10

// Equipment is one owned piece of gear.
//
// Invariant: 0 <= Enhancement <= MaxEnhancementLevel. A destroyed piece is
// removed from inventory by the owner's persistence layer, never zeroed.
type Equipment struct {
	ID      int64
	OwnerID int64

	Name   string
	Slot   Slot
	Rarity Rarity

	// Bonuses is the sparse base stat-bonus map, before enhancement.
	Bonuses map[BonusStat]int

	// Enhancement is the current enhancement level.
	Enhancement int
}

// EnhancedBonuses returns the bonus map with the enhancement multiplier
// applied: +10% per level, multiplicative on every non-zero bonus, floored
// to integer.
//
// Postcondition: The receiver's Bonuses map is not modified.
func (e *Equipment) EnhancedBonuses() map[BonusStat]int {
	out := make(map[BonusStat]int, len(e.Bonuses))
	mult := 1.0 + 0.1*float64(e.Enhancement)
	for stat, v := range e.Bonuses {
		if v == 0 {
			continue
		}
		out[stat] = int(math.Floor(float64(v) * mult))
	}
	return out
}

// EffectiveStats returns base with every equipped item's enhanced bonuses
// folded in. Health is raised in step with MaxHealth bonuses so a fresh
// combatant enters at full health.
//
// Postcondition: base is not modified; result.Health <= result.MaxHealth.
func EffectiveStats(base character.Stats, equipped []Equipment) character.Stats {
	out := base
	for _, e := range equipped {
		for stat, v := range e.EnhancedBonuses() {
			switch stat {
			case BonusAttack:
				out.Attack += v
			case BonusDefense:
				out.Defense += v
			case BonusSpeed:
				out.Speed += v
			case BonusEvasion:
				out.Evasion += v
			case BonusCritChance:
				out.CritChance += v
			case BonusLuck:
				out.Luck += v
			case BonusMaxHealth:
				out.MaxHealth += v
				out.Health += v
			}
		}
	}
	if out.Health > out.MaxHealth {
		out.Health = out.MaxHealth
	}
	return out
}
