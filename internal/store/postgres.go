package store

import (
	"context"
	"fmt"

	"miraiz/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const interactionsSchema = `
CREATE TABLE IF NOT EXISTS interactions (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	propiedad_id INTEGER,
	pregunta     TEXT NOT NULL,
	respuesta    TEXT,
	status       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interactions_user_id ON interactions (user_id);
`

// PostgresStore is the durable interaction-store backend.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(interactionsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure interactions schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Add inserts an interaction.
func (s *PostgresStore) Add(ctx context.Context, interaction *model.Interaction) error {
	query := `
		INSERT INTO interactions (id, user_id, propiedad_id, pregunta, respuesta, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		interaction.ID, interaction.UserID, interaction.PropiedadID,
		interaction.Pregunta, interaction.Respuesta, interaction.Status,
		interaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

// List returns interactions, filtered by user when userID is non-empty,
// oldest first.
func (s *PostgresStore) List(ctx context.Context, userID string) ([]*model.Interaction, error) {
	query := `
		SELECT id, user_id, propiedad_id, pregunta, respuesta, status, created_at
		FROM interactions
		WHERE $1 = '' OR user_id = $1
		ORDER BY created_at ASC
	`
	interactions := []*model.Interaction{}
	if err := s.db.SelectContext(ctx, &interactions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

// Metrics counts interactions grouped by status.
func (s *PostgresStore) Metrics(ctx context.Context) (*model.InteractionMetrics, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	query := `SELECT status, COUNT(*) AS count FROM interactions GROUP BY status`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate interactions: %w", err)
	}

	metrics := &model.InteractionMetrics{Counts: make(map[string]int)}
	for _, r := range rows {
		metrics.Counts[r.Status] = r.Count
		metrics.Total += r.Count
	}
	return metrics, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
