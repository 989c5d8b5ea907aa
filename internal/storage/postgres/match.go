package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/pvp"
)

// ErrMatchNotFound is returned when a match lookup yields no results.
var ErrMatchNotFound = errors.New("match not found")

// MatchRecord is one persisted match: the simulator output plus the two
// participant IDs. The log is stored as JSONB so replays and disputes can
// read the full transcript.
type MatchRecord struct {
	ID         string
	AttackerID int64
	DefenderID int64
	Seed       int64
	Winner     combat.Side
	Turns      int

	AttackerHealth int
	DefenderHealth int
	RatingDelta    int

	Log       []combat.Event
	CreatedAt time.Time
}

// NewMatchRecord pairs a simulator result with its participants.
func NewMatchRecord(attackerID, defenderID int64, res pvp.MatchResult) MatchRecord {
	return MatchRecord{
		ID:             res.ID,
		AttackerID:     attackerID,
		DefenderID:     defenderID,
		Seed:           res.Seed,
		Winner:         res.Winner,
		Turns:          res.Turns,
		AttackerHealth: res.AttackerHealth,
		DefenderHealth: res.DefenderHealth,
		RatingDelta:    res.RatingDelta,
		Log:            res.Log,
	}
}

// MatchRepository provides match-result persistence operations.
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a MatchRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create inserts a completed match record. Records are immutable once
// written; there is no update path.
func (r *MatchRepository) Create(ctx context.Context, m MatchRecord) (MatchRecord, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO matches
			(id, attacker_id, defender_id, seed, winner, turns,
			 attacker_health, defender_health, rating_delta, log)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at`,
		m.ID, m.AttackerID, m.DefenderID, m.Seed, int(m.Winner), m.Turns,
		m.AttackerHealth, m.DefenderHealth, m.RatingDelta, m.Log,
	).Scan(&m.CreatedAt)
	if err != nil {
		return MatchRecord{}, fmt.Errorf("inserting match: %w", err)
	}
	return m, nil
}

// GetByID retrieves a match record by its UUID.
//
// Postcondition: Returns the MatchRecord or ErrMatchNotFound.
func (r *MatchRepository) GetByID(ctx context.Context, id string) (MatchRecord, error) {
	var m MatchRecord
	var winner int
	err := r.db.QueryRow(ctx, `
		SELECT id, attacker_id, defender_id, seed, winner, turns,
		       attacker_health, defender_health, rating_delta, log, created_at
		FROM matches WHERE id = $1`, id,
	).Scan(
		&m.ID, &m.AttackerID, &m.DefenderID, &m.Seed, &winner, &m.Turns,
		&m.AttackerHealth, &m.DefenderHealth, &m.RatingDelta, &m.Log, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MatchRecord{}, ErrMatchNotFound
		}
		return MatchRecord{}, fmt.Errorf("querying match: %w", err)
	}
	m.Winner = combat.Side(winner)
	return m, nil
}

// ListByCharacter returns the most recent matches a character fought on
// either side, newest first.
//
// Precondition: limit must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *MatchRepository) ListByCharacter(ctx context.Context, characterID int64, limit int) ([]MatchRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, attacker_id, defender_id, seed, winner, turns,
		       attacker_health, defender_health, rating_delta, log, created_at
		FROM matches
		WHERE attacker_id = $1 OR defender_id = $1
		ORDER BY created_at DESC LIMIT $2`,
		characterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	matches := make([]MatchRecord, 0)
	for rows.Next() {
		var m MatchRecord
		var winner int
		if err := rows.Scan(
			&m.ID, &m.AttackerID, &m.DefenderID, &m.Seed, &winner, &m.Turns,
			&m.AttackerHealth, &m.DefenderHealth, &m.RatingDelta, &m.Log, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		m.Winner = combat.Side(winner)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
