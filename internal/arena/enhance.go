package arena

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/enhance"
)

// EnhanceOutcome reports one enhancement request. A refused request
// (not the owner's item, cost not covered, already at cap) sets Accepted
// false with a reason and changes nothing.
type EnhanceOutcome struct {
	Accepted bool
	Reason   string
	// Result is the resolved attempt, valid when Accepted.
	Result enhance.Result
}

// EnhanceEquipment runs one enhancement attempt on a stored item: checks
// eligibility against the owner's gold and shard holdings, consumes the
// cost, resolves the gamble, and persists the new level or removes the
// destroyed item.
//
// The shard spend is a conditional delete, so two concurrent attempts
// funded by the same shards cannot both proceed.
//
// Precondition: equipmentID must belong to ownerID.
func (s *Service) EnhanceEquipment(ctx context.Context, ownerID, equipmentID int64, protected bool, policy enhance.FailPolicy) (*EnhanceOutcome, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("loading equipment: %w", err)
	}
	if eq.OwnerID != ownerID {
		return &EnhanceOutcome{Reason: fmt.Sprintf("%s does not belong to you", eq.Name)}, nil
	}

	owner, err := s.characters.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading owner: %w", err)
	}
	shards, err := s.materials.CountByRarity(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("counting shards: %w", err)
	}

	el := enhance.CanEnhance(*eq, owner.Gold, shards, s.tables.Enhancement)
	if !el.OK {
		return &EnhanceOutcome{Reason: el.Reason}, nil
	}

	if el.Cost.Shards > 0 {
		spent, err := s.materials.Consume(ctx, ownerID, el.Cost.ShardRarity, el.Cost.Shards)
		if err != nil {
			return nil, fmt.Errorf("spending shards: %w", err)
		}
		if !spent {
			return &EnhanceOutcome{Reason: "shards were spent by another attempt"}, nil
		}
	}

	owner.Gold -= el.Cost.Gold
	if err := s.characters.SaveProgress(ctx, owner); err != nil {
		return nil, fmt.Errorf("debiting gold: %w", err)
	}

	res, err := enhance.Attempt(*eq, protected, policy, s.tables.Enhancement, s.src)
	if err != nil {
		return nil, err
	}

	if res.Destroyed {
		if err := s.equipment.Delete(ctx, equipmentID); err != nil {
			return nil, fmt.Errorf("removing destroyed equipment: %w", err)
		}
	} else if res.NewLevel != eq.Enhancement {
		if err := s.equipment.SetEnhancement(ctx, equipmentID, res.NewLevel); err != nil {
			return nil, fmt.Errorf("saving enhancement level: %w", err)
		}
	}

	s.logger.Info("enhancement attempted",
		zap.Int64("owner_id", ownerID),
		zap.Int64("equipment_id", equipmentID),
		zap.Int("from_level", eq.Enhancement),
		zap.Bool("success", res.Success),
		zap.Bool("destroyed", res.Destroyed),
	)
	return &EnhanceOutcome{Accepted: true, Result: res}, nil
}
