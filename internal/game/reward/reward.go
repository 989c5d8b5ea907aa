// Package reward derives gold, experience, and material drops from a
// match outcome, applying rating-gap, level-gap, and win-streak
// modifiers.
package reward

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
)

// Material is one dropped crafting material. Shards feed the enhancement
// engine's higher-tier attempt costs.
type Material struct {
	// ID uniquely identifies this drop instance.
	ID     string
	Name   string
	Rarity equipment.Rarity
}

// Set is the complete victory payout. It is a self-contained value; the
// caller folds it into the winner's record.
type Set struct {
	// Gold is the total gold payout, streak bonus included.
	Gold int
	// Experience is the experience payout.
	Experience int
	// StreakBonus is the portion of Gold contributed by the win streak;
	// zero below the streak threshold.
	StreakBonus int
	// Material is the dropped material, nil when the drop roll missed.
	Material *Material
}

// ratingModifier scales rewards by the rating gap: beating a stronger
// opponent pays more. Clamped to [0.5, 2.0].
func ratingModifier(winnerRating, loserRating int) float64 {
	m := 1.0 + float64(loserRating-winnerRating)/200.0
	return clamp(m, 0.5, 2.0)
}

// levelModifier scales rewards by the level gap, clamped to [0.8, 1.5]
// so farming far-below-level opponents stays unprofitable.
func levelModifier(winnerLevel, loserLevel int) float64 {
	m := float64(loserLevel) / float64(winnerLevel)
	return clamp(m, 0.8, 1.5)
}

// RewardsFor computes the winner's payout for defeating loser.
//
// Base gold and experience are scaled by the rating and level modifiers.
// At winStreak >= the streak threshold, an additive gold bonus of
// floor(gold * rate * min(streak/threshold, cap)) applies. The material
// drop rolls once for occurrence (chance grows with the loser's level up
// to a ceiling) and, on a hit, once more across the weighted rarity
// bands. Draws consume src in that order: drop roll first, rarity roll
// second.
//
// Precondition: winner.Level and loser.Level must be positive; src must
// be non-nil.
// Postcondition: Gold and Experience are non-negative; StreakBonus <= Gold.
func RewardsFor(winner, loser character.Character, winStreak int, tbl tuning.Rewards, src rng.Source) Set {
	ratingMod := ratingModifier(winner.Rating, loser.Rating)
	levelMod := levelModifier(winner.Level, loser.Level)

	gold := int(math.Floor(float64(tbl.BaseGold) * ratingMod * levelMod))
	exp := int(math.Floor(float64(tbl.BaseExperience) * ratingMod * levelMod))

	bonus := 0
	if winStreak >= tbl.StreakThreshold {
		mult := math.Min(float64(winStreak)/float64(tbl.StreakThreshold), tbl.StreakCap)
		bonus = int(math.Floor(float64(gold) * tbl.StreakRate * mult))
	}

	return Set{
		Gold:        gold + bonus,
		Experience:  exp,
		StreakBonus: bonus,
		Material:    rollMaterial(loser.Level, tbl, src),
	}
}

// rollMaterial resolves the material drop, or nil on a miss.
func rollMaterial(loserLevel int, tbl tuning.Rewards, src rng.Source) *Material {
	chance := math.Min(tbl.MaterialMaxChance, tbl.MaterialBaseChance+float64(loserLevel)*tbl.MaterialChancePerLevel)
	if src.Float64() >= chance {
		return nil
	}

	rarity := rollRarity(tbl.RarityWeights, src)
	return &Material{
		ID:     uuid.New().String(),
		Name:   fmt.Sprintf("%s shard", rarity),
		Rarity: rarity,
	}
}

// rollRarity picks a tier proportionally to its weight.
func rollRarity(weights []tuning.RarityWeight, src rng.Source) equipment.Rarity {
	total := 0
	for _, w := range weights {
		total += w.Weight
	}

	roll := src.Float64() * float64(total)
	for _, w := range weights {
		roll -= float64(w.Weight)
		if roll < 0 {
			return w.Rarity
		}
	}
	return weights[len(weights)-1].Rarity
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
