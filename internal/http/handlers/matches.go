package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	slogctx "github.com/veqryn/slog-context"
)

// UserMatches returns a user's recent matches: GET /users/:id/matches?limit=N
func (h *Handler) UserMatches(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match history disabled"})
		return
	}

	userID := c.Param("id")
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	matches, err := h.Matches.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		slogctx.Error(c.Request.Context(), "list matches failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	type item struct {
		SessionID string `json:"session_id"`
		Opponent  string `json:"opponent_id"`
		Choice    string `json:"choice"`
		Against   string `json:"opponent_choice"`
		Result    string `json:"result"`
		PlayedAt  string `json:"played_at"`
	}
	out := make([]item, 0, len(matches))
	for _, m := range matches {
		it := item{
			SessionID: m.SessionID,
			Result:    string(m.ResultFor(userID)),
			PlayedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if m.ChallengerID == userID {
			it.Opponent, it.Choice, it.Against = m.OpponentID, m.ChallengerChoice, m.OpponentChoice
		} else {
			it.Opponent, it.Choice, it.Against = m.ChallengerID, m.OpponentChoice, m.ChallengerChoice
		}
		out = append(out, it)
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "matches": out})
}
