package pvp

import (
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// TurnCap bounds a simulated match so it always terminates.
const TurnCap = 50

// MatchResult is the immutable outcome of one simulated match. The caller
// persists it and applies the rating/reward/penalty follow-ups; nothing in
// it references live engine state.
type MatchResult struct {
	// ID uniquely identifies the match record.
	ID string
	// Seed reproduces the match: simulating again with the same snapshots
	// and seed yields an identical result.
	Seed int64
	// Winner designates the winning side.
	Winner combat.Side
	// Log is the ordered, typed transcript of the match: the audit trail
	// for replay and dispute resolution.
	Log []combat.Event
	// AttackerHealth and DefenderHealth are both sides' final health.
	AttackerHealth int
	DefenderHealth int
	// Turns is the number of full turns played.
	Turns int
	// RatingDelta is the attacker's signed rating adjustment; the
	// defender's is the symmetric complement.
	RatingDelta int
}

// NewMatchSeed derives a fresh seed from the wall clock. Both participants
// (or a referee) can later re-run the match from the stored seed.
func NewMatchSeed() int64 {
	return time.Now().UnixNano()
}

// SimulateMatch resolves a full asynchronous match between two character
// snapshots. Both snapshots are taken by value, so the live records are
// untouched until the caller commits the result.
//
// Initiative follows speed (coin flip on ties), then the sides alternate
// basic attacks until one side's health reaches zero or the turn cap is
// hit. At the cap the side with more remaining health wins; an exact tie
// goes to the defender, since the aggressor failed to prove superiority.
// A double KO cannot arise from alternating single attacks, so the actor
// of the killing exchange always wins.
//
// Every random draw flows through one seeded source consumed only by the
// attack resolver and the initiative roll, which is what makes the result
// exactly reproducible from (snapshots, seed).
//
// Postcondition: The returned result is self-contained and immutable;
// identical inputs yield an identical result.
func SimulateMatch(attacker, defender character.Character, attackerRating, defenderRating int, seed int64) MatchResult {
	src := rng.NewSeededSource(seed)

	var log []combat.Event
	active := combat.RollInitiative(attacker.Stats, defender.Stats, src)

	turns := 0
	for turns < TurnCap && !attacker.IsDefeated() && !defender.IsDefeated() {
		turns++

		actor, target := &attacker, &defender
		if active == combat.SideDefender {
			actor, target = &defender, &attacker
		}

		r := combat.ResolveAttack(actor.Stats, target.Stats, src)
		target.ApplyDamage(r.Damage)
		log = append(log, combat.AttackEvent(turns, actor.Name, target.Name, r))

		active = active.Other()
	}

	winner := decideWinner(attacker, defender)
	winnerName, loserName := attacker.Name, defender.Name
	if winner == combat.SideDefender {
		winnerName, loserName = defender.Name, attacker.Name
	}
	log = append(log, combat.ClosingEvents(turns, winnerName, loserName)...)

	return MatchResult{
		ID:             uuid.New().String(),
		Seed:           seed,
		Winner:         winner,
		Log:            log,
		AttackerHealth: attacker.Stats.Health,
		DefenderHealth: defender.Stats.Health,
		Turns:          turns,
		RatingDelta:    RatingDelta(attackerRating, defenderRating, winner == combat.SideAttacker),
	}
}

// decideWinner applies the terminal rules: a side at zero health loses;
// at the turn cap the healthier side wins, with an exact tie going to the
// defender.
func decideWinner(attacker, defender character.Character) combat.Side {
	switch {
	case defender.IsDefeated():
		return combat.SideAttacker
	case attacker.IsDefeated():
		return combat.SideDefender
	case attacker.Stats.Health > defender.Stats.Health:
		return combat.SideAttacker
	default:
		return combat.SideDefender
	}
}
