package skill

import (
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/character"
)

// UseResult reports the outcome of a skill use attempt.
//
// A rejected use (wrong class, on cooldown) is a routine caller-visible
// condition, not an error: OK is false and Reason explains why, and nothing
// changes.
type UseResult struct {
	OK     bool
	Reason string

	Damage  int
	Healing int
	Message string
}

// Use applies skill s by user against target, consulting the session
// cooldown table.
//
// On success the returned table has s on full cooldown; on rejection the
// input table is returned unchanged. Neither character nor the input table
// is mutated; the caller applies Damage and Healing.
//
// Precondition: s must come from the catalog; user must be non-nil.
// Postcondition: result.Damage >= 0 and result.Healing >= 0.
func Use(s Skill, user *character.Character, targetName string, cds Cooldowns) (UseResult, Cooldowns) {
	if s.Class != user.Class {
		return UseResult{
			OK:     false,
			Reason: fmt.Sprintf("%s is not available to the %s class", s.Name, user.Class),
		}, cds
	}
	if !cds.Ready(s.ID) {
		return UseResult{
			OK:     false,
			Reason: fmt.Sprintf("%s is on cooldown for %d more turns", s.Name, cds[s.ID]),
		}, cds
	}

	damage := s.Damage(user.Stats.Attack)
	healing := s.Healing(damage)

	msg := fmt.Sprintf("%s uses %s on %s for %d damage.", user.Name, s.Name, targetName, damage)
	if healing > 0 {
		msg = fmt.Sprintf("%s uses %s on %s for %d damage, draining %d health.",
			user.Name, s.Name, targetName, damage, healing)
	}

	return UseResult{
		OK:      true,
		Damage:  damage,
		Healing: healing,
		Message: msg,
	}, cds.set(s.ID, s.Cooldown)
}
