// Package testutil provides test helpers including container management.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/arena/internal/config"
	"github.com/cory-johannsen/arena/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected pool,
// or fails the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// ApplyMigrations runs the schema creation SQL directly for tests.
// This avoids requiring the migrate tool in the test environment.
//
// Precondition: Pool must be connected.
// Postcondition: The characters, equipment, materials, and matches
// tables exist in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	schema := `
		CREATE TABLE IF NOT EXISTS characters (
			id          BIGSERIAL   PRIMARY KEY,
			account_id  BIGINT      NOT NULL,
			name        VARCHAR(64) NOT NULL,
			class       VARCHAR(16) NOT NULL,
			level       INT         NOT NULL DEFAULT 1,
			experience  INT         NOT NULL DEFAULT 0,
			health      INT         NOT NULL,
			max_health  INT         NOT NULL,
			attack      INT         NOT NULL,
			defense     INT         NOT NULL,
			speed       INT         NOT NULL,
			evasion     INT         NOT NULL DEFAULT 0,
			crit_chance INT         NOT NULL DEFAULT 0,
			luck        INT         NOT NULL DEFAULT 0,
			rating      INT         NOT NULL DEFAULT 1000,
			gold        INT         NOT NULL DEFAULT 0,
			win_streak  INT         NOT NULL DEFAULT 0,
			insurance   INT         NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (account_id, name)
		);
		CREATE INDEX IF NOT EXISTS idx_characters_account ON characters (account_id);

		CREATE TABLE IF NOT EXISTS equipment (
			id          BIGSERIAL   PRIMARY KEY,
			owner_id    BIGINT      NOT NULL REFERENCES characters (id) ON DELETE CASCADE,
			name        VARCHAR(64) NOT NULL,
			slot        VARCHAR(16) NOT NULL,
			rarity      INT         NOT NULL DEFAULT 0,
			bonuses     JSONB       NOT NULL DEFAULT '{}',
			enhancement INT         NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_equipment_owner ON equipment (owner_id);

		CREATE TABLE IF NOT EXISTS materials (
			id       UUID        PRIMARY KEY,
			owner_id BIGINT      NOT NULL REFERENCES characters (id) ON DELETE CASCADE,
			name     VARCHAR(64) NOT NULL,
			rarity   INT         NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_materials_owner ON materials (owner_id, rarity);

		CREATE TABLE IF NOT EXISTS matches (
			id              UUID        PRIMARY KEY,
			attacker_id     BIGINT      NOT NULL REFERENCES characters (id),
			defender_id     BIGINT      NOT NULL REFERENCES characters (id),
			seed            BIGINT      NOT NULL,
			winner          INT         NOT NULL,
			turns           INT         NOT NULL,
			attacker_health INT         NOT NULL,
			defender_health INT         NOT NULL,
			rating_delta    INT         NOT NULL,
			log             JSONB       NOT NULL DEFAULT '[]',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_matches_attacker ON matches (attacker_id);
		CREATE INDEX IF NOT EXISTS idx_matches_defender ON matches (defender_id);
	`

	_, err := pc.RawPool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

// NewPool starts a disposable database with the schema applied and
// returns the raw pool for repository tests.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.RawPool
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
