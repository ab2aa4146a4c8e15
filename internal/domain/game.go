package domain

import (
	"time"

	"discord_rps/internal/game"
)

// GameResult - result of a match for one player
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
	GameResultDraw GameResult = "draw"
)

// Match - a finished rock paper scissors game
type Match struct {
	ID               int64     `db:"id" json:"id"`
	SessionID        string    `db:"session_id" json:"session_id"`
	ChallengerID     string    `db:"challenger_id" json:"challenger_id"`
	ChallengerChoice string    `db:"challenger_choice" json:"challenger_choice"`
	OpponentID       string    `db:"opponent_id" json:"opponent_id"`
	OpponentChoice   string    `db:"opponent_choice" json:"opponent_choice"`
	WinnerID         *string   `db:"winner_id" json:"winner_id,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// NewMatch builds the record of a decided game.
func NewMatch(sessionID string, challenger, opponent game.Player, r game.Result) *Match {
	m := &Match{
		SessionID:        sessionID,
		ChallengerID:     challenger.ID,
		ChallengerChoice: string(challenger.Choice),
		OpponentID:       opponent.ID,
		OpponentChoice:   string(opponent.Choice),
	}
	if !r.Draw {
		winner := r.WinnerID()
		m.WinnerID = &winner
	}
	return m
}

// ResultFor returns the outcome from userID's point of view
func (m *Match) ResultFor(userID string) GameResult {
	switch {
	case m.WinnerID == nil:
		return GameResultDraw
	case *m.WinnerID == userID:
		return GameResultWin
	default:
		return GameResultLose
	}
}
