package combat

import "fmt"

// EventType classifies a combat log entry.
type EventType string

const (
	EventAttack  EventType = "attack"
	EventSkill   EventType = "skill"
	EventDefend  EventType = "defend"
	EventItem    EventType = "item"
	EventVictory EventType = "victory"
	EventDefeat  EventType = "defeat"
)

// Event is one typed, human-readable combat log entry. The ordered event
// slice is the audit trail for replay and dispute resolution.
type Event struct {
	Type    EventType `json:"type"`
	Turn    int       `json:"turn"`
	Actor   string    `json:"actor"`
	Target  string    `json:"target,omitempty"`
	Damage  int       `json:"damage,omitempty"`
	Healing int       `json:"healing,omitempty"`
	Crit    bool      `json:"crit,omitempty"`
	Evaded  bool      `json:"evaded,omitempty"`
	Message string    `json:"message"`
}

// AttackEvent builds the log entry for a resolved basic attack.
func AttackEvent(turn int, actor, target string, r AttackResult) Event {
	ev := Event{
		Type:   EventAttack,
		Turn:   turn,
		Actor:  actor,
		Target: target,
		Damage: r.Damage,
		Crit:   r.Crit,
		Evaded: r.Evaded,
	}
	switch {
	case r.Evaded:
		ev.Message = fmt.Sprintf("%s attacks %s, but %s evades!", actor, target, target)
	case r.Crit:
		ev.Message = fmt.Sprintf("%s lands a critical hit on %s for %d damage!", actor, target, r.Damage)
	default:
		ev.Message = fmt.Sprintf("%s hits %s for %d damage.", actor, target, r.Damage)
	}
	return ev
}

// ClosingEvents builds the closing victory/defeat pair of the log.
func ClosingEvents(turn int, winner, loser string) []Event {
	return []Event{
		{Type: EventVictory, Turn: turn, Actor: winner, Message: fmt.Sprintf("%s is victorious!", winner)},
		{Type: EventDefeat, Turn: turn, Actor: loser, Message: fmt.Sprintf("%s has been defeated.", loser)},
	}
}
