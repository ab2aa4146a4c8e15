package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"discord_rps/internal/interactions"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	slogctx "github.com/veqryn/slog-context"
)

const maxInteractionBody = 1 << 20

// Interactions answers POST /interactions. The request signature has
// already been checked by middleware.
func (h *Handler) Interactions(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInteractionBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	// pings are answered whatever else the body carries
	var envelope struct {
		Type discordgo.InteractionType `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		slogctx.Warn(ctx, "undecodable interaction", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction"})
		return
	}

	var i discordgo.Interaction
	if envelope.Type == discordgo.InteractionPing {
		i.Type = discordgo.InteractionPing
	} else if err := json.Unmarshal(body, &i); err != nil {
		slogctx.Warn(ctx, "undecodable interaction", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interaction"})
		return
	}

	ctx = slogctx.Append(ctx, "interaction_id", i.ID, "interaction_type", int(i.Type))

	reply, err := h.Router.Handle(ctx, &i)
	if err != nil {
		if interactions.IsBadRequest(err) {
			slogctx.Warn(ctx, "rejected interaction", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slogctx.Error(ctx, "interaction failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, reply.Response)
	c.Writer.Flush()

	if len(reply.FollowUps) > 0 {
		h.FollowUps.Schedule(ctx, reply.FollowUps...)
	}
}
