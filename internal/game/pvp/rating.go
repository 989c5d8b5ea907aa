// Package pvp implements the deterministic asynchronous match simulator
// and the Elo-style competitive rating updater.
package pvp

import "math"

// Rating K-factors. Lower-rated players converge faster.
const (
	kFactorNew         = 32
	kFactorEstablished = 24
	kFactorThreshold   = 1200
)

// ExpectedScore returns the attacker's logistic win expectancy against the
// defender: 1 / (1 + 10^((defender-attacker)/400)).
//
// Postcondition: Returns a value in (0, 1).
func ExpectedScore(attackerRating, defenderRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(defenderRating-attackerRating)/400.0))
}

// RatingDelta returns the attacker's signed rating adjustment for a
// completed match. The defender's adjustment is the symmetric complement:
// the caller applies RatingDelta(defender, attacker, !attackerWon) to the
// other side, making every match zero-sum in expectation.
//
// Postcondition: Positive when the attacker beat expectancy, negative
// otherwise; magnitude is bounded by the K-factor.
func RatingDelta(attackerRating, defenderRating int, attackerWon bool) int {
	k := float64(kFactorEstablished)
	if attackerRating < kFactorThreshold {
		k = kFactorNew
	}

	actual := 0.0
	if attackerWon {
		actual = 1.0
	}
	return int(math.Round(k * (actual - ExpectedScore(attackerRating, defenderRating))))
}
