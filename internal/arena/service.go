// Package arena orchestrates the competitive loop: it runs simulated
// matches over persisted characters and commits ratings, rewards, and
// penalties through the storage repositories. The engine packages stay
// I/O-free; everything that touches the database happens here.
package arena

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/penalty"
	"github.com/cory-johannsen/arena/internal/game/pvp"
	"github.com/cory-johannsen/arena/internal/game/reward"
	"github.com/cory-johannsen/arena/internal/game/rng"
	"github.com/cory-johannsen/arena/internal/game/tuning"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

// CharacterStore is the character persistence surface the service needs.
type CharacterStore interface {
	GetByID(ctx context.Context, id int64) (*character.Character, error)
	SaveProgress(ctx context.Context, c *character.Character) error
	ConsumeInsurance(ctx context.Context, id int64) (bool, error)
}

// EquipmentStore is the equipment persistence surface the service needs.
type EquipmentStore interface {
	GetByID(ctx context.Context, id int64) (*equipment.Equipment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*equipment.Equipment, error)
	SetEnhancement(ctx context.Context, id int64, level int) error
	TransferOwner(ctx context.Context, id, newOwnerID int64) error
	Delete(ctx context.Context, id int64) error
}

// MaterialStore is the material persistence surface the service needs.
type MaterialStore interface {
	Create(ctx context.Context, ownerID int64, m reward.Material) error
	CountByRarity(ctx context.Context, ownerID int64) (map[equipment.Rarity]int, error)
	Consume(ctx context.Context, ownerID int64, rarity equipment.Rarity, n int) (bool, error)
}

// MatchStore is the match persistence surface the service needs.
type MatchStore interface {
	Create(ctx context.Context, m postgres.MatchRecord) (postgres.MatchRecord, error)
}

// Service runs matches and commits their consequences.
type Service struct {
	characters CharacterStore
	equipment  EquipmentStore
	materials  MaterialStore
	matches    MatchStore

	tables tuning.Tables
	src    rng.Source
	logger *zap.Logger
}

// NewService wires the arena service.
//
// Precondition: All stores, the source, and the logger must be non-nil;
// tables must have passed Validate.
func NewService(
	characters CharacterStore,
	equipment EquipmentStore,
	materials MaterialStore,
	matches MatchStore,
	tables tuning.Tables,
	src rng.Source,
	logger *zap.Logger,
) *Service {
	return &Service{
		characters: characters,
		equipment:  equipment,
		materials:  materials,
		matches:    matches,
		tables:     tables,
		src:        src,
		logger:     logger,
	}
}

// MatchReport is everything one resolved match changed.
type MatchReport struct {
	Record postgres.MatchRecord

	WinnerID int64
	LoserID  int64

	// WinnerRatingDelta and LoserRatingDelta are the signed adjustments
	// already applied to both sides.
	WinnerRatingDelta int
	LoserRatingDelta  int

	Rewards reward.Set
	Penalty penalty.Result

	// LevelsGained is how many level-ups the winner's experience payout
	// triggered.
	LevelsGained int
}

// ResolveMatch runs a full asynchronous match between two stored
// characters and commits every consequence: the match record, both
// rating adjustments, the winner's rewards (including level-ups and
// material drops), and the loser's death penalty with its zero-sum
// transfer to the winner.
//
// The simulation operates on snapshots with equipped bonuses folded in;
// the stored records change only when the result is committed.
//
// Precondition: attackerID and defenderID must reference distinct
// existing characters.
func (s *Service) ResolveMatch(ctx context.Context, attackerID, defenderID, seed int64) (*MatchReport, error) {
	if attackerID == defenderID {
		return nil, fmt.Errorf("a character cannot fight itself")
	}

	attacker, err := s.characters.GetByID(ctx, attackerID)
	if err != nil {
		return nil, fmt.Errorf("loading attacker: %w", err)
	}
	defender, err := s.characters.GetByID(ctx, defenderID)
	if err != nil {
		return nil, fmt.Errorf("loading defender: %w", err)
	}

	attackerSnap, err := s.combatSnapshot(ctx, attacker)
	if err != nil {
		return nil, err
	}
	defenderSnap, err := s.combatSnapshot(ctx, defender)
	if err != nil {
		return nil, err
	}

	res := pvp.SimulateMatch(attackerSnap, defenderSnap, attacker.Rating, defender.Rating, seed)

	winner, loser := attacker, defender
	if res.Winner == combat.SideDefender {
		winner, loser = defender, attacker
	}

	report := &MatchReport{
		WinnerID: winner.ID,
		LoserID:  loser.ID,
	}

	// Rating deltas for both sides, from pre-match ratings.
	report.WinnerRatingDelta = pvp.RatingDelta(winner.Rating, loser.Rating, true)
	report.LoserRatingDelta = pvp.RatingDelta(loser.Rating, winner.Rating, false)

	// Rewards use pre-match ratings and the streak including this win.
	winner.WinStreak++
	report.Rewards = reward.RewardsFor(*winner, *loser, winner.WinStreak, s.tables.Rewards, s.src)

	loserGear, err := s.equipment.ListByOwner(ctx, loser.ID)
	if err != nil {
		return nil, fmt.Errorf("loading loser equipment: %w", err)
	}
	report.Penalty = penalty.DeathPenalty(loser.Gold, deref(loserGear), loser.Insurance > 0, s.tables.Penalty, s.src)

	if report.Penalty.InsuranceUsed {
		consumed, err := s.characters.ConsumeInsurance(ctx, loser.ID)
		if err != nil {
			return nil, fmt.Errorf("consuming insurance: %w", err)
		}
		if consumed {
			loser.Insurance--
		} else {
			// The charge was spent by a concurrent death between our read
			// and the conditional decrement. The item stays spared this
			// time; the race costs the house, never the player twice.
			s.logger.Warn("insurance charge lost to concurrent death",
				zap.Int64("character_id", loser.ID),
			)
			report.Penalty.InsuranceUsed = false
		}
	}

	s.applyOutcome(winner, loser, report)

	if err := s.commit(ctx, winner, loser, report, attackerID, defenderID, res); err != nil {
		return nil, err
	}

	s.logger.Info("match resolved",
		zap.String("match_id", res.ID),
		zap.Int64("winner_id", winner.ID),
		zap.Int64("loser_id", loser.ID),
		zap.Int("turns", res.Turns),
		zap.Int("winner_rating_delta", report.WinnerRatingDelta),
		zap.Int("gold_transferred", report.Penalty.GoldLost),
	)
	return report, nil
}

// combatSnapshot returns a by-value copy of c with its equipped bonuses
// folded into the stat block.
func (s *Service) combatSnapshot(ctx context.Context, c *character.Character) (character.Character, error) {
	gear, err := s.equipment.ListByOwner(ctx, c.ID)
	if err != nil {
		return character.Character{}, fmt.Errorf("loading equipment for %s: %w", c.Name, err)
	}
	snap := c.Snapshot()
	snap.Stats = equipment.EffectiveStats(snap.Stats, deref(gear))
	return snap, nil
}

// applyOutcome folds ratings, gold, experience, and streaks into both
// live records. Gold and items are conserved in the transfer step: the
// winner gains exactly what the loser loses, plus the reward faucet.
func (s *Service) applyOutcome(winner, loser *character.Character, report *MatchReport) {
	winner.Rating += report.WinnerRatingDelta
	loser.Rating += report.LoserRatingDelta
	loser.WinStreak = 0

	transfer := penalty.PvPTransfer(report.Penalty)
	winner.Gold += report.Rewards.Gold + transfer.Gold
	loser.Gold -= report.Penalty.GoldLost

	report.LevelsGained = winner.GainExperience(report.Rewards.Experience)
}

// commit persists both characters, the item transfer, the material drop,
// and the immutable match record. These are independent statements, not
// one transaction: crash atomicity is delegated to the persistence layer.
// The match record goes last, so a stored match always means the rest of
// the outcome was applied; a crash mid-commit leaves partial state but
// never a match record pointing at it.
func (s *Service) commit(ctx context.Context, winner, loser *character.Character, report *MatchReport, attackerID, defenderID int64, res pvp.MatchResult) error {
	if item := report.Penalty.ItemLost; item != nil {
		if err := s.equipment.TransferOwner(ctx, item.ID, winner.ID); err != nil {
			return fmt.Errorf("transferring spoils: %w", err)
		}
	}
	if m := report.Rewards.Material; m != nil {
		if err := s.materials.Create(ctx, winner.ID, *m); err != nil {
			return fmt.Errorf("recording material drop: %w", err)
		}
	}

	if err := s.characters.SaveProgress(ctx, winner); err != nil {
		return fmt.Errorf("saving winner: %w", err)
	}
	if err := s.characters.SaveProgress(ctx, loser); err != nil {
		return fmt.Errorf("saving loser: %w", err)
	}

	record, err := s.matches.Create(ctx, postgres.NewMatchRecord(attackerID, defenderID, res))
	if err != nil {
		return fmt.Errorf("saving match record: %w", err)
	}
	report.Record = record
	return nil
}

func deref(items []*equipment.Equipment) []equipment.Equipment {
	out := make([]equipment.Equipment, 0, len(items))
	for _, e := range items {
		out = append(out, *e)
	}
	return out
}
