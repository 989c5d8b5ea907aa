// Package tuning holds the balance tables for the progression loop:
// reward bases, material drop weights, enhancement success rates and
// costs, and death penalty rates. Tables ship with compiled-in defaults
// and can be overridden from a YAML file.
package tuning

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/equipment"
)

// Tables bundles every tunable number of the arena progression loop.
type Tables struct {
	Rewards     Rewards
	Enhancement Enhancement
	Penalty     Penalty
}

// Rewards tunes the victory reward calculation.
type Rewards struct {
	// BaseGold and BaseExperience are the pre-modifier victory payouts.
	BaseGold       int
	BaseExperience int

	// StreakThreshold is the consecutive-win count at which the streak
	// bonus activates. StreakRate is the per-threshold bonus fraction of
	// gold, and StreakCap bounds the multiplier on that rate.
	StreakThreshold int
	StreakRate      float64
	StreakCap       float64

	// MaterialBaseChance, MaterialChancePerLevel, and MaterialMaxChance
	// shape the material drop roll: min(max, base + loserLevel*perLevel).
	MaterialBaseChance     float64
	MaterialChancePerLevel float64
	MaterialMaxChance      float64

	// RarityWeights are the relative weights of each rarity tier within a
	// drop event, in ascending tier order.
	RarityWeights []RarityWeight
}

// RarityWeight pairs a rarity tier with its drop weight.
type RarityWeight struct {
	Rarity equipment.Rarity
	Weight int
}

// Enhancement tunes the equipment upgrade gamble.
type Enhancement struct {
	// MaxLevel is the hard enhancement cap.
	MaxLevel int

	// SuccessRates is indexed by current level: SuccessRates[n] is the
	// probability that an attempt from level n to n+1 succeeds. Must hold
	// MaxLevel entries, monotonically non-increasing.
	SuccessRates []float64

	// Costs is indexed by current level, parallel to SuccessRates.
	Costs []EnhanceCost

	// RegressLevel is the lowest level at which a failed attempt regresses
	// one level; DestroyLevel is the lowest at which failure destroys the
	// item outright (unless suppressed by the caller's fail policy).
	RegressLevel int
	DestroyLevel int
}

// EnhanceCost is the price of one enhancement attempt.
type EnhanceCost struct {
	Gold int
	// Shards is the number of shard materials required, of ShardRarity.
	// Zero means no material cost at this tier.
	Shards      int
	ShardRarity equipment.Rarity
}

// Penalty tunes the death penalty calculation.
type Penalty struct {
	// GoldRate is the fraction of carried gold lost on defeat, and GoldCap
	// the absolute ceiling on that loss.
	GoldRate float64
	GoldCap  int

	// ItemLossChance is the probability that one equipped item is lost.
	ItemLossChance float64
}

// Default returns the shipped balance tables.
func Default() Tables {
	return Tables{
		Rewards: Rewards{
			BaseGold:               50,
			BaseExperience:         50,
			StreakThreshold:        3,
			StreakRate:             0.2,
			StreakCap:              3.0,
			MaterialBaseChance:     0.3,
			MaterialChancePerLevel: 0.02,
			MaterialMaxChance:      0.7,
			RarityWeights: []RarityWeight{
				{Rarity: equipment.RarityCommon, Weight: 40},
				{Rarity: equipment.RarityUncommon, Weight: 30},
				{Rarity: equipment.RarityRare, Weight: 20},
				{Rarity: equipment.RarityEpic, Weight: 7},
				{Rarity: equipment.RarityLegendary, Weight: 3},
			},
		},
		Enhancement: Enhancement{
			MaxLevel:     equipment.MaxEnhancementLevel,
			SuccessRates: []float64{1.0, 1.0, 1.0, 0.9, 0.8, 0.7, 0.55, 0.4, 0.3, 0.2},
			Costs: []EnhanceCost{
				{Gold: 100},
				{Gold: 200},
				{Gold: 400},
				{Gold: 800},
				{Gold: 1500, Shards: 1, ShardRarity: equipment.RarityUncommon},
				{Gold: 2500, Shards: 1, ShardRarity: equipment.RarityRare},
				{Gold: 4000, Shards: 2, ShardRarity: equipment.RarityRare},
				{Gold: 6000, Shards: 2, ShardRarity: equipment.RarityEpic},
				{Gold: 9000, Shards: 3, ShardRarity: equipment.RarityEpic},
				{Gold: 15000, Shards: 1, ShardRarity: equipment.RarityLegendary},
			},
			RegressLevel: 4,
			DestroyLevel: 6,
		},
		Penalty: Penalty{
			GoldRate:       0.1,
			GoldCap:        5000,
			ItemLossChance: 0.2,
		},
	}
}

// Validate checks cross-field consistency, joining all violations.
//
// Postcondition: A nil return means every table is internally consistent.
func (t Tables) Validate() error {
	var errs []error

	if t.Rewards.BaseGold < 0 || t.Rewards.BaseExperience < 0 {
		errs = append(errs, errors.New("rewards: base gold and experience must be non-negative"))
	}
	if t.Rewards.StreakThreshold < 1 {
		errs = append(errs, errors.New("rewards: streak threshold must be at least 1"))
	}
	if t.Rewards.MaterialMaxChance < t.Rewards.MaterialBaseChance {
		errs = append(errs, errors.New("rewards: material max chance below base chance"))
	}
	totalWeight := 0
	for _, w := range t.Rewards.RarityWeights {
		if w.Weight < 0 {
			errs = append(errs, fmt.Errorf("rewards: negative weight for rarity %s", w.Rarity))
		}
		totalWeight += w.Weight
	}
	if totalWeight <= 0 {
		errs = append(errs, errors.New("rewards: rarity weights must sum to a positive total"))
	}

	if t.Enhancement.MaxLevel < 1 {
		errs = append(errs, errors.New("enhancement: max level must be at least 1"))
	}
	if len(t.Enhancement.SuccessRates) != t.Enhancement.MaxLevel {
		errs = append(errs, fmt.Errorf("enhancement: need %d success rates, have %d",
			t.Enhancement.MaxLevel, len(t.Enhancement.SuccessRates)))
	}
	for i, rate := range t.Enhancement.SuccessRates {
		if rate < 0 || rate > 1 {
			errs = append(errs, fmt.Errorf("enhancement: success rate for level %d outside [0,1]", i))
		}
		if i > 0 && rate > t.Enhancement.SuccessRates[i-1] {
			errs = append(errs, fmt.Errorf("enhancement: success rate rises at level %d", i))
		}
	}
	if len(t.Enhancement.Costs) != t.Enhancement.MaxLevel {
		errs = append(errs, fmt.Errorf("enhancement: need %d cost entries, have %d",
			t.Enhancement.MaxLevel, len(t.Enhancement.Costs)))
	}
	if t.Enhancement.RegressLevel > t.Enhancement.DestroyLevel {
		errs = append(errs, errors.New("enhancement: regress level above destroy level"))
	}

	if t.Penalty.GoldRate < 0 || t.Penalty.GoldRate > 1 {
		errs = append(errs, errors.New("penalty: gold rate outside [0,1]"))
	}
	if t.Penalty.GoldCap < 0 {
		errs = append(errs, errors.New("penalty: gold cap must be non-negative"))
	}
	if t.Penalty.ItemLossChance < 0 || t.Penalty.ItemLossChance > 1 {
		errs = append(errs, errors.New("penalty: item loss chance outside [0,1]"))
	}

	return errors.Join(errs...)
}
