package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/equipment"
)

// ErrEquipmentNotFound is returned when an equipment lookup yields no results.
var ErrEquipmentNotFound = errors.New("equipment not found")

// EquipmentRepository provides equipment persistence operations.
type EquipmentRepository struct {
	db *pgxpool.Pool
}

// NewEquipmentRepository creates an EquipmentRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func scanEquipment(row pgx.Row) (*equipment.Equipment, error) {
	var e equipment.Equipment
	if err := row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Slot, &e.Rarity, &e.Bonuses, &e.Enhancement); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new piece of equipment and returns it with its ID set.
//
// Precondition: e.OwnerID must reference an existing character.
func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) (*equipment.Equipment, error) {
	out, err := scanEquipment(r.db.QueryRow(ctx, `
		INSERT INTO equipment (owner_id, name, slot, rarity, bonuses, enhancement)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, owner_id, name, slot, rarity, bonuses, enhancement`,
		e.OwnerID, e.Name, e.Slot, e.Rarity, e.Bonuses, e.Enhancement,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting equipment: %w", err)
	}
	return out, nil
}

// GetByID retrieves a piece of equipment by its primary key.
//
// Postcondition: Returns the Equipment or ErrEquipmentNotFound.
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*equipment.Equipment, error) {
	e, err := scanEquipment(r.db.QueryRow(ctx, `
		SELECT id, owner_id, name, slot, rarity, bonuses, enhancement
		FROM equipment WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	return e, nil
}

// ListByOwner returns all equipment owned by the given character.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *EquipmentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*equipment.Equipment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, name, slot, rarity, bonuses, enhancement
		FROM equipment WHERE owner_id = $1 ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	defer rows.Close()

	items := make([]*equipment.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning equipment row: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// SetEnhancement persists a new enhancement level after a successful or
// regressing attempt.
//
// Postcondition: Returns nil on success, ErrEquipmentNotFound if no row updated.
func (r *EquipmentRepository) SetEnhancement(ctx context.Context, id int64, level int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE equipment SET enhancement = $2 WHERE id = $1`, id, level)
	if err != nil {
		return fmt.Errorf("setting enhancement level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// TransferOwner moves a piece of equipment to a new owner, the persistence
// half of the zero-sum PvP item transfer.
//
// Postcondition: Returns nil on success, ErrEquipmentNotFound if no row updated.
func (r *EquipmentRepository) TransferOwner(ctx context.Context, id, newOwnerID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE equipment SET owner_id = $2 WHERE id = $1`, id, newOwnerID)
	if err != nil {
		return fmt.Errorf("transferring equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// Delete removes a destroyed piece of equipment. Destroyed gear is deleted,
// never zeroed.
//
// Postcondition: Returns nil on success, ErrEquipmentNotFound if no row deleted.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}
