package discord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"discord_rps/internal/logger"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/oops"
)

var ErrUpstream = errors.New("discord api call failed")

// restAPI is the part of *discordgo.Session this package uses.
type restAPI interface {
	WebhookMessageEdit(webhookID, token, messageID string, data *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	WebhookMessageDelete(webhookID, token, messageID string, options ...discordgo.RequestOption) error
	GuildEdit(guildID string, g *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
}

// Client talks to the Discord REST API with a bot token. It never opens a
// gateway connection.
type Client struct {
	api   restAPI
	appID string
	http  *http.Client
	log   *slog.Logger
}

// New creates a client authenticated as the bot.
func New(token, appID string) (*Client, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, oops.In("discord").Wrapf(err, "create session")
	}
	return newClient(s, appID, &http.Client{Timeout: 20 * time.Second}), nil
}

func newClient(api restAPI, appID string, httpClient *http.Client) *Client {
	return &Client{
		api:   api,
		appID: appID,
		http:  httpClient,
		log:   logger.With("component", "discord"),
	}
}

// DeleteMessage deletes a message sent through the interaction webhook.
func (c *Client) DeleteMessage(ctx context.Context, token, messageID string) error {
	if err := c.api.WebhookMessageDelete(c.appID, token, messageID, discordgo.WithContext(ctx)); err != nil {
		return upstream(err, "delete message", "message_id", messageID)
	}
	return nil
}

// EditMessage replaces a webhook message's content and removes its components.
func (c *Client) EditMessage(ctx context.Context, token, messageID, content string) error {
	components := []discordgo.MessageComponent{}
	edit := &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	}
	if _, err := c.api.WebhookMessageEdit(c.appID, token, messageID, edit, discordgo.WithContext(ctx)); err != nil {
		return upstream(err, "edit message", "message_id", messageID)
	}
	return nil
}

// SetGuildIcon downloads imageURL and installs it as the guild icon.
func (c *Client) SetGuildIcon(ctx context.Context, guildID, imageURL string) error {
	icon, err := FetchImageDataURI(ctx, c.http, imageURL)
	if err != nil {
		return oops.In("discord").With("image_url", imageURL).Wrapf(err, "fetch icon")
	}
	if _, err := c.api.GuildEdit(guildID, &discordgo.GuildParams{Icon: icon}, discordgo.WithContext(ctx)); err != nil {
		return upstream(err, "edit guild", "guild_id", guildID)
	}
	c.log.Info("guild icon updated", "guild_id", guildID, "image_url", imageURL)
	return nil
}

func upstream(err error, op string, kv ...any) error {
	return oops.In("discord").
		With(kv...).
		Wrapf(errors.Join(ErrUpstream, err), "%s", op)
}
