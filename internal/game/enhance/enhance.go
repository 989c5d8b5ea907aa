// Package enhance implements the equipment upgrade gamble: per-level
// success rates, escalating gold and shard costs, and failure penalties
// that grow from harmless through regression to outright destruction.
package enhance

import (
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
)

// FailPolicy decides what happens to a protected item when an attempt in
// the destruction band fails: destruction is always suppressed, and the
// policy picks between keeping the level and regressing one.
type FailPolicy int

const (
	// FailKeep leaves the level unchanged on a protected failure.
	FailKeep FailPolicy = iota
	// FailRegress drops the level by one on a protected failure.
	FailRegress
)

// Eligibility is the outcome of a dry-run CanEnhance check. It never
// mutates anything; callers branch on OK and surface Reason on refusal.
type Eligibility struct {
	OK     bool
	Reason string
	// Cost is the price of the attempt, valid when OK.
	Cost tuning.EnhanceCost
}

// Result describes one resolved enhancement attempt. The engine never
// mutates the item; the caller applies NewLevel or removes the item when
// Destroyed.
type Result struct {
	Success bool
	// NewLevel is the enhancement level after the attempt. Meaningless
	// when Destroyed.
	NewLevel int
	// Destroyed is true when the item is lost outright.
	Destroyed bool
	// Message is the human-readable outcome line.
	Message string
}

// SuccessRate returns the probability that an attempt from level
// succeeds.
//
// Precondition: 0 <= level < tbl.MaxLevel.
func SuccessRate(level int, tbl tuning.Enhancement) float64 {
	return tbl.SuccessRates[level]
}

// CanEnhance checks whether an attempt on eq may proceed given the
// owner's gold and shard holdings. It is a pure dry run, separate from
// Attempt so eligibility checks never mutate state.
//
// Postcondition: Eligibility.OK implies eq.Enhancement < tbl.MaxLevel
// and the holdings cover Eligibility.Cost.
func CanEnhance(eq equipment.Equipment, gold int, shards map[equipment.Rarity]int, tbl tuning.Enhancement) Eligibility {
	if eq.Enhancement >= tbl.MaxLevel {
		return Eligibility{Reason: fmt.Sprintf("%s is already at the maximum enhancement level", eq.Name)}
	}

	cost := tbl.Costs[eq.Enhancement]
	if gold < cost.Gold {
		return Eligibility{Reason: fmt.Sprintf("not enough gold: need %d, have %d", cost.Gold, gold)}
	}
	if cost.Shards > 0 && shards[cost.ShardRarity] < cost.Shards {
		return Eligibility{Reason: fmt.Sprintf("not enough %s shards: need %d, have %d",
			cost.ShardRarity, cost.Shards, shards[cost.ShardRarity])}
	}

	return Eligibility{OK: true, Cost: cost}
}

// Attempt resolves one enhancement attempt on eq, drawing the success
// roll from src. The item itself is not modified; the caller applies the
// result and consumes the cost.
//
// Failure penalties depend on the current level: below the regression
// band nothing happens, inside it the level drops by one, and at or
// above the destruction band the item is destroyed, unless protected,
// in which case the supplied policy decides between keeping and
// regressing.
//
// Precondition: CanEnhance must have approved the attempt; src must be
// non-nil.
func Attempt(eq equipment.Equipment, protected bool, policy FailPolicy, tbl tuning.Enhancement, src rng.Source) (Result, error) {
	return AttemptWithRoll(eq, protected, policy, tbl, src.Float64())
}

// AttemptWithRoll resolves an attempt with an explicit roll in [0, 1),
// succeeding when the roll falls below the level's success rate. This is
// the deterministic entry point for replay and testing; Attempt wraps it.
func AttemptWithRoll(eq equipment.Equipment, protected bool, policy FailPolicy, tbl tuning.Enhancement, roll float64) (Result, error) {
	level := eq.Enhancement
	if level < 0 || level >= tbl.MaxLevel {
		return Result{}, fmt.Errorf("enhancement level %d outside attemptable range [0, %d)", level, tbl.MaxLevel)
	}

	if roll < SuccessRate(level, tbl) {
		return Result{
			Success:  true,
			NewLevel: level + 1,
			Message:  fmt.Sprintf("%s shines with new power: +%d!", eq.Name, level+1),
		}, nil
	}

	switch {
	case level < tbl.RegressLevel:
		return Result{
			NewLevel: level,
			Message:  fmt.Sprintf("the enhancement fizzles; %s is unharmed.", eq.Name),
		}, nil

	case level < tbl.DestroyLevel:
		return Result{
			NewLevel: level - 1,
			Message:  fmt.Sprintf("the enhancement fails and %s regresses to +%d.", eq.Name, level-1),
		}, nil

	case protected:
		if policy == FailRegress {
			return Result{
				NewLevel: level - 1,
				Message:  fmt.Sprintf("the charm saves %s from destruction, but it regresses to +%d.", eq.Name, level-1),
			}, nil
		}
		return Result{
			NewLevel: level,
			Message:  fmt.Sprintf("the charm saves %s from destruction.", eq.Name),
		}, nil

	default:
		return Result{
			Destroyed: true,
			Message:   fmt.Sprintf("%s shatters into worthless fragments.", eq.Name),
		}, nil
	}
}
