// Package penalty derives the gold and item losses a defeated character
// suffers, with insurance suppression and the zero-sum PvP transfer.
package penalty

import (
	"math"

	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
)

// Result is one computed death penalty. It is a pure value; the caller
// debits the gold, removes the lost item, and consumes the insurance
// charge atomically in its own persistence layer.
type Result struct {
	// GoldLost is the gold debit, bounded by the table's cap.
	GoldLost int
	// ItemLost is the equipped item removed from the loser, nil when the
	// item-loss roll missed or insurance absorbed it.
	ItemLost *equipment.Equipment
	// InsuranceUsed is true when an item loss triggered and one insurance
	// charge absorbed it. At most one charge is ever consumed per death.
	InsuranceUsed bool
}

// Transfer mirrors a loser's penalty into the winner's gain, conserving
// gold and items across the pair: nothing is created or destroyed in the
// transfer itself.
type Transfer struct {
	Gold int
	// Item is the item changing hands, nil when none was lost.
	Item *equipment.Equipment
}

// DeathPenalty computes the losses for a defeat.
//
// Gold loss is a fixed fraction of carried gold, floored and clamped to
// the table's cap. Independently, an item-loss roll may claim one random
// equipped item; when insuranceAvailable is true that single loss is
// absorbed instead and reported via InsuranceUsed. Draws consume src in
// order: item-loss roll first, then (on a hit without insurance) the
// slot pick.
//
// Precondition: gold must be non-negative; src must be non-nil.
// Postcondition: 0 <= GoldLost <= tbl.GoldCap; ItemLost is an element of
// equipped when non-nil; InsuranceUsed implies ItemLost == nil.
func DeathPenalty(gold int, equipped []equipment.Equipment, insuranceAvailable bool, tbl tuning.Penalty, src rng.Source) Result {
	res := Result{GoldLost: goldLoss(gold, tbl)}

	if len(equipped) == 0 || src.Float64() >= tbl.ItemLossChance {
		return res
	}

	if insuranceAvailable {
		res.InsuranceUsed = true
		return res
	}

	lost := equipped[src.Intn(len(equipped))]
	res.ItemLost = &lost
	return res
}

// PvPTransfer converts the loser's penalty into the winner's gain.
func PvPTransfer(r Result) Transfer {
	return Transfer{Gold: r.GoldLost, Item: r.ItemLost}
}

// goldLoss applies the rate, floor, and cap.
func goldLoss(gold int, tbl tuning.Penalty) int {
	loss := int(math.Floor(float64(gold) * tbl.GoldRate))
	if loss < 0 {
		loss = 0
	}
	if loss > tbl.GoldCap {
		loss = tbl.GoldCap
	}
	return loss
}
