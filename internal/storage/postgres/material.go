package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/equipment"
	"github.com/cory-johannsen/arena/internal/game/reward"
)

// MaterialRepository provides crafting-material persistence operations.
// Each dropped material is one row; shard holdings are counted per rarity.
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a MaterialRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create records a dropped material for its new owner.
//
// Precondition: ownerID must reference an existing character.
func (r *MaterialRepository) Create(ctx context.Context, ownerID int64, m reward.Material) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO materials (id, owner_id, name, rarity)
		VALUES ($1,$2,$3,$4)`,
		m.ID, ownerID, m.Name, m.Rarity,
	)
	if err != nil {
		return fmt.Errorf("inserting material: %w", err)
	}
	return nil
}

// CountByRarity returns the owner's shard holdings grouped by rarity.
//
// Postcondition: Absent rarities are simply missing from the map.
func (r *MaterialRepository) CountByRarity(ctx context.Context, ownerID int64) (map[equipment.Rarity]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rarity, COUNT(*) FROM materials
		WHERE owner_id = $1 GROUP BY rarity`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("counting materials: %w", err)
	}
	defer rows.Close()

	counts := make(map[equipment.Rarity]int)
	for rows.Next() {
		var rarity equipment.Rarity
		var n int
		if err := rows.Scan(&rarity, &n); err != nil {
			return nil, fmt.Errorf("scanning material count: %w", err)
		}
		counts[rarity] = n
	}
	return counts, rows.Err()
}

// Consume atomically spends n shards of the given rarity. The conditional
// delete makes concurrent spends race-safe: if fewer than n rows remain
// nothing is deleted and false is returned.
//
// Precondition: n must be > 0.
// Postcondition: Returns true iff exactly n shards were consumed.
func (r *MaterialRepository) Consume(ctx context.Context, ownerID int64, rarity equipment.Rarity, n int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM materials WHERE id IN (
			SELECT id FROM materials
			WHERE owner_id = $1 AND rarity = $2
			ORDER BY id LIMIT $3 FOR UPDATE SKIP LOCKED
		) AND (
			SELECT COUNT(*) FROM materials WHERE owner_id = $1 AND rarity = $2
		) >= $3`,
		ownerID, rarity, n,
	)
	if err != nil {
		return false, fmt.Errorf("consuming materials: %w", err)
	}
	return tag.RowsAffected() == int64(n), nil
}
