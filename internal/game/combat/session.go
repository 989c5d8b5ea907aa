package combat

import (
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/skill"
)

// State is the session state machine position.
type State int

const (
	StateIdle State = iota
	StateAwaitingAction
	StateResolving
	StateFinished
)

// String returns the state label.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAction:
		return "awaiting_action"
	case StateResolving:
		return "resolving"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ActionType is the player's chosen action for a turn.
type ActionType int

const (
	ActionAttack ActionType = iota
	ActionDefend
	ActionSkill
	ActionItem
)

// Action is one player turn choice. SkillID is set for ActionSkill;
// ItemHeal carries the healing value of a consumed item for ActionItem
// (item catalogs live outside the engine).
type Action struct {
	Type     ActionType
	SkillID  string
	ItemHeal int
}

// TurnOutcome reports one Act call. A rejected action (unknown skill,
// skill on cooldown) leaves the session unchanged: Accepted is false and
// Reason says why; the player simply picks again.
type TurnOutcome struct {
	Accepted bool
	Reason   string
	// Events are the log entries produced by this turn, in order.
	Events []Event
}

// Session is a live interactive fight between a player and a generated
// opponent. It owns the ephemeral per-fight state: skill cooldowns, the
// defend flag, the turn counter, and the log. Turns resolve strictly
// sequentially; the session suspends between Act calls while the UI waits
// on the player, with no timeout of its own. Abandoning a fight simply
// means never calling Act again.
//
// A Session is not safe for concurrent use; each fight runs on one
// goroutine.
type Session struct {
	player *character.Character
	enemy  *character.Character
	src    rng.Source

	state     State
	turn      int
	cooldowns skill.Cooldowns
	defending bool
	winner    Side
	log       []Event
}

// NewSession starts a fight between player and enemy. Initiative is rolled
// immediately: if the enemy is faster it attacks once before the player's
// first action.
//
// Precondition: player, enemy, and src must be non-nil; both combatants
// must have positive health.
// Postcondition: Returns a session in StateAwaitingAction (or
// StateFinished in the degenerate case where the opening enemy attack
// already ends the fight).
func NewSession(player, enemy *character.Character, src rng.Source) (*Session, error) {
	if player == nil || enemy == nil {
		return nil, fmt.Errorf("both combatants must be non-nil")
	}
	if player.IsDefeated() || enemy.IsDefeated() {
		return nil, fmt.Errorf("both combatants must have positive health")
	}

	s := &Session{
		player:    player,
		enemy:     enemy,
		src:       src,
		state:     StateAwaitingAction,
		turn:      1,
		cooldowns: skill.NewCooldowns(),
	}

	if RollInitiative(player.Stats, enemy.Stats, src) == SideDefender {
		events := s.enemyTurn()
		if s.player.IsDefeated() {
			events = append(events, ClosingEvents(s.turn, s.enemy.Name, s.player.Name)...)
			s.winner = SideDefender
			s.state = StateFinished
		}
		s.log = append(s.log, events...)
	}
	return s, nil
}

// State returns the current state machine position.
func (s *Session) State() State { return s.state }

// Turn returns the current turn number, starting at 1.
func (s *Session) Turn() int { return s.turn }

// Cooldowns returns the session's current skill cooldown table.
func (s *Session) Cooldowns() skill.Cooldowns { return s.cooldowns }

// Log returns the full ordered event log so far.
func (s *Session) Log() []Event { return s.log }

// Winner returns the winning side once the session is finished.
//
// Postcondition: ok is true iff State() == StateFinished.
func (s *Session) Winner() (Side, bool) {
	if s.state != StateFinished {
		return 0, false
	}
	return s.winner, true
}

// Act resolves one full turn from the player's chosen action: the player
// acts, then the enemy retaliates with a basic attack, then cooldowns tick
// at the turn boundary.
//
// Rejected actions (unknown or on-cooldown skill) return Accepted=false
// with the session untouched. Calling Act on a finished session is a
// caller bug and returns an error.
func (s *Session) Act(a Action) (TurnOutcome, error) {
	if s.state != StateAwaitingAction {
		return TurnOutcome{}, fmt.Errorf("no action expected in state %s", s.state)
	}
	s.state = StateResolving

	events, accepted, reason := s.playerAction(a)
	if !accepted {
		s.state = StateAwaitingAction
		return TurnOutcome{Accepted: false, Reason: reason}, nil
	}

	if !s.enemy.IsDefeated() {
		events = append(events, s.enemyTurn()...)
	}

	switch {
	case s.enemy.IsDefeated():
		events = append(events, ClosingEvents(s.turn, s.player.Name, s.enemy.Name)...)
		s.winner = SideAttacker
		s.state = StateFinished
	case s.player.IsDefeated():
		events = append(events, ClosingEvents(s.turn, s.enemy.Name, s.player.Name)...)
		s.winner = SideDefender
		s.state = StateFinished
	default:
		s.cooldowns = s.cooldowns.Tick()
		s.turn++
		s.state = StateAwaitingAction
	}

	s.log = append(s.log, events...)
	return TurnOutcome{Accepted: true, Events: events}, nil
}

// playerAction resolves the player's half of the turn.
func (s *Session) playerAction(a Action) (events []Event, accepted bool, reason string) {
	switch a.Type {
	case ActionAttack:
		r := ResolveAttack(s.player.Stats, s.enemy.Stats, s.src)
		s.enemy.ApplyDamage(r.Damage)
		return []Event{AttackEvent(s.turn, s.player.Name, s.enemy.Name, r)}, true, ""

	case ActionDefend:
		s.defending = true
		return []Event{{
			Type:    EventDefend,
			Turn:    s.turn,
			Actor:   s.player.Name,
			Message: fmt.Sprintf("%s braces for the next attack.", s.player.Name),
		}}, true, ""

	case ActionSkill:
		sk, ok := skill.Get(a.SkillID)
		if !ok {
			return nil, false, fmt.Sprintf("unknown skill %q", a.SkillID)
		}
		res, cds := skill.Use(sk, s.player, s.enemy.Name, s.cooldowns)
		if !res.OK {
			return nil, false, res.Reason
		}
		s.cooldowns = cds
		s.enemy.ApplyDamage(res.Damage)
		s.player.Heal(res.Healing)
		return []Event{{
			Type:    EventSkill,
			Turn:    s.turn,
			Actor:   s.player.Name,
			Target:  s.enemy.Name,
			Damage:  res.Damage,
			Healing: res.Healing,
			Message: res.Message,
		}}, true, ""

	case ActionItem:
		heal := a.ItemHeal
		if heal < 0 {
			heal = 0
		}
		s.player.Heal(heal)
		return []Event{{
			Type:    EventItem,
			Turn:    s.turn,
			Actor:   s.player.Name,
			Healing: heal,
			Message: fmt.Sprintf("%s uses an item and recovers %d health.", s.player.Name, heal),
		}}, true, ""

	default:
		return nil, false, fmt.Sprintf("unknown action type %d", a.Type)
	}
}

// enemyTurn resolves the opponent's basic attack. Damage is halved
// (floored) when the player chose to defend this turn.
func (s *Session) enemyTurn() []Event {
	r := ResolveAttack(s.enemy.Stats, s.player.Stats, s.src)
	if s.defending {
		r.Damage /= 2
		s.defending = false
	}
	s.player.ApplyDamage(r.Damage)
	return []Event{AttackEvent(s.turn, s.enemy.Name, s.player.Name, r)}
}
