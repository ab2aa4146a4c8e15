package handlers

import (
	"context"

	"discord_rps/internal/domain"
	"discord_rps/internal/interactions"

	"github.com/bwmarrin/discordgo"
)

// InteractionRouter answers a verified interaction.
type InteractionRouter interface {
	Handle(ctx context.Context, i *discordgo.Interaction) (*interactions.Reply, error)
}

// Scheduler runs follow-up calls once the response is on its way.
type Scheduler interface {
	Schedule(ctx context.Context, calls ...interactions.FollowUp)
}

// MatchLister reads match history.
type MatchLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Match, error)
}

type Handler struct {
	Router    InteractionRouter
	FollowUps Scheduler
	Matches   MatchLister
}

func NewHandler(router InteractionRouter, followUps Scheduler, matches MatchLister) *Handler {
	return &Handler{
		Router:    router,
		FollowUps: followUps,
		Matches:   matches,
	}
}
