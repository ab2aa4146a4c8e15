package repository

import (
	"context"
	"errors"

	"discord_rps/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// Record stores a finished match. A session is recorded at most once.
func (r *MatchRepository) Record(ctx context.Context, m *domain.Match) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO matches
			(session_id, challenger_id, challenger_choice, opponent_id, opponent_choice, winner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id) DO NOTHING
		 RETURNING id, created_at`,
		m.SessionID,
		m.ChallengerID,
		m.ChallengerChoice,
		m.OpponentID,
		m.OpponentChoice,
		m.WinnerID,
	).Scan(&m.ID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

// ListByUser returns the user's matches, newest first
func (r *MatchRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Match, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, challenger_id, challenger_choice, opponent_id,
				opponent_choice, winner_id, created_at
		 FROM matches
		 WHERE challenger_id = $1 OR opponent_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatches(rows pgx.Rows) ([]*domain.Match, error) {
	var matches []*domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(
			&m.ID, &m.SessionID, &m.ChallengerID, &m.ChallengerChoice,
			&m.OpponentID, &m.OpponentChoice, &m.WinnerID, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}
