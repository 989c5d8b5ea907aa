package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// ErrCharacterNameTaken is returned when creating a character with a name already used by the account.
var ErrCharacterNameTaken = errors.New("character name already taken")

const characterColumns = `id, account_id, name, class, level, experience,
	       health, max_health, attack, defense, speed, evasion, crit_chance, luck,
	       rating, gold, win_streak, insurance, created_at, updated_at`

// CharacterRepository provides character persistence operations.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

func scanCharacter(row pgx.Row) (*character.Character, error) {
	var c character.Character
	err := row.Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Class, &c.Level, &c.Experience,
		&c.Stats.Health, &c.Stats.MaxHealth, &c.Stats.Attack, &c.Stats.Defense,
		&c.Stats.Speed, &c.Stats.Evasion, &c.Stats.CritChance, &c.Stats.Luck,
		&c.Rating, &c.Gold, &c.WinStreak, &c.Insurance,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new character and returns it with ID and timestamps set.
//
// Precondition: c.AccountID must reference an existing account; c.Name must be non-empty.
// Postcondition: Returns the created character with ID set, or ErrCharacterNameTaken on duplicate.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	out, err := scanCharacter(r.db.QueryRow(ctx, `
		INSERT INTO characters
			(account_id, name, class, level, experience,
			 health, max_health, attack, defense, speed, evasion, crit_chance, luck,
			 rating, gold, win_streak, insurance)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING `+characterColumns,
		c.AccountID, c.Name, c.Class, c.Level, c.Experience,
		c.Stats.Health, c.Stats.MaxHealth, c.Stats.Attack, c.Stats.Defense,
		c.Stats.Speed, c.Stats.Evasion, c.Stats.CritChance, c.Stats.Luck,
		c.Rating, c.Gold, c.WinStreak, c.Insurance,
	))
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrCharacterNameTaken
		}
		return nil, fmt.Errorf("inserting character: %w", err)
	}
	return out, nil
}

// GetByID retrieves a character by its primary key.
//
// Precondition: id must be > 0.
// Postcondition: Returns the Character or ErrCharacterNotFound.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*character.Character, error) {
	c, err := scanCharacter(r.db.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	return c, nil
}

// ListByAccount returns all characters for the given account ID, ordered by created_at.
//
// Precondition: accountID must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) ListByAccount(ctx context.Context, accountID int64) ([]*character.Character, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE account_id = $1 ORDER BY created_at ASC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	chars := make([]*character.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		chars = append(chars, c)
	}
	return chars, rows.Err()
}

// SaveProgress persists everything a match or level-up can change: level,
// experience, the full stat block, rating, gold, and win streak.
//
// Precondition: c.ID must be > 0.
// Postcondition: Returns nil on success, ErrCharacterNotFound if no row updated.
func (r *CharacterRepository) SaveProgress(ctx context.Context, c *character.Character) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters SET
			level = $2, experience = $3,
			health = $4, max_health = $5, attack = $6, defense = $7,
			speed = $8, evasion = $9, crit_chance = $10, luck = $11,
			rating = $12, gold = $13, win_streak = $14, updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.Level, c.Experience,
		c.Stats.Health, c.Stats.MaxHealth, c.Stats.Attack, c.Stats.Defense,
		c.Stats.Speed, c.Stats.Evasion, c.Stats.CritChance, c.Stats.Luck,
		c.Rating, c.Gold, c.WinStreak,
	)
	if err != nil {
		return fmt.Errorf("saving character progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// ConsumeInsurance atomically spends one insurance charge. The conditional
// decrement makes concurrent deaths race-safe: only one of two simultaneous
// spends of the last charge can succeed.
//
// Precondition: id must be > 0.
// Postcondition: Returns true iff a charge was consumed.
func (r *CharacterRepository) ConsumeInsurance(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters SET insurance = insurance - 1, updated_at = NOW()
		WHERE id = $1 AND insurance > 0`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("consuming insurance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
