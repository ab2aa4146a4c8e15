package interactions

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"discord_rps/internal/domain"
	"discord_rps/internal/game"
	"discord_rps/internal/session"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/oops"
	slogctx "github.com/veqryn/slog-context"
)

// SessionStore holds challenges waiting for an opponent.
type SessionStore interface {
	Create(id, challengerID string, choice game.Choice) error
	Get(id string) (session.Session, bool)
	ConsumeAndDelete(id string) (session.Session, bool)
}

// Notifier makes calls to the Discord REST API on behalf of an interaction.
type Notifier interface {
	DeleteMessage(ctx context.Context, token, messageID string) error
	EditMessage(ctx context.Context, token, messageID, content string) error
	SetGuildIcon(ctx context.Context, guildID, imageURL string) error
}

// Limiter decides whether key may perform another action.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MatchRecorder stores finished games.
type MatchRecorder interface {
	Record(ctx context.Context, m *domain.Match) error
}

type Options struct {
	// GuildID is used for guild commands invoked outside a guild
	GuildID  string
	Limiter  Limiter
	Recorder MatchRecorder
	// Shuffle permutes menu options; defaults to math/rand/v2
	Shuffle func(n int, swap func(i, j int))
}

// Reply is the synchronous response to an interaction plus the calls to
// make once it has been delivered.
type Reply struct {
	Response  *discordgo.InteractionResponse
	FollowUps []FollowUp
}

// Router turns interactions into game state transitions.
type Router struct {
	store    SessionStore
	notifier Notifier
	opts     Options
}

func NewRouter(store SessionStore, notifier Notifier, opts Options) *Router {
	if opts.Shuffle == nil {
		opts.Shuffle = rand.Shuffle
	}
	return &Router{store: store, notifier: notifier, opts: opts}
}

// Handle dispatches a verified interaction.
func (r *Router) Handle(ctx context.Context, i *discordgo.Interaction) (*Reply, error) {
	switch i.Type {
	case discordgo.InteractionPing:
		InteractionsTotal.WithLabelValues("ping", "").Inc()
		return &Reply{Response: &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}}, nil
	case discordgo.InteractionApplicationCommand:
		return r.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		return r.handleComponent(ctx, i)
	default:
		return nil, oops.In("router").
			With("type", int(i.Type)).
			Wrapf(ErrUnsupportedInteraction, "interaction type %d", int(i.Type))
	}
}

func (r *Router) handleCommand(ctx context.Context, i *discordgo.Interaction) (*Reply, error) {
	data := i.ApplicationCommandData()
	InteractionsTotal.WithLabelValues("command", data.Name).Inc()

	switch data.Name {
	case CommandTest:
		return &Reply{Response: message("hello world " + randomEmoji())}, nil
	case CommandChallenge:
		return r.challenge(ctx, i, data)
	case CommandUnsubscribe:
		return r.unsubscribe(ctx, i, data)
	case CommandServerIcon:
		return r.serverIcon(ctx, i, data)
	default:
		return nil, oops.In("router").
			With("command", data.Name).
			Wrapf(ErrUnknownCommand, "command %q", data.Name)
	}
}

func (r *Router) challenge(ctx context.Context, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) (*Reply, error) {
	userID := interactionUserID(i)
	raw, ok := stringOption(data.Options, optionObject)
	if i.ID == "" || userID == "" || !ok {
		return nil, oops.In("router").
			With("interaction_id", i.ID).
			Wrapf(ErrMalformedInteraction, "challenge needs an id, a user and an %q option", optionObject)
	}

	choice, err := game.ParseChoice(raw)
	if err != nil {
		return nil, oops.In("router").
			With("value", raw).
			Wrapf(fmt.Errorf("%w: %w", ErrConfiguration, err), "challenge option")
	}

	// a redelivered command is not a new challenge
	if _, exists := r.store.Get(i.ID); !exists && !r.allow(ctx, "challenge:"+userID) {
		slogctx.Info(ctx, "challenge rate limited", "user_id", userID)
		return &Reply{Response: ephemeral("You're issuing challenges too quickly, try again later.")}, nil
	}

	if err := r.store.Create(i.ID, userID, choice); err != nil {
		// a redelivered command gets the same prompt again
		if !errors.Is(err, session.ErrSessionExists) {
			return nil, oops.In("router").
				With("session_id", i.ID).
				Wrapf(fmt.Errorf("%w: %w", ErrConfiguration, err), "create session")
		}
	} else {
		slogctx.Info(ctx, "challenge created", "session_id", i.ID, "challenger_id", userID)
	}

	customID, err := Correlation{Kind: KindAccept, SessionID: i.ID}.Encode()
	if err != nil {
		return nil, oops.In("router").Wrapf(err, "encode accept button")
	}

	return &Reply{Response: message(
		fmt.Sprintf("Rock papers scissors challenge from <@%s>", userID),
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: customID,
					Label:    "Accept",
					Style:    discordgo.PrimaryButton,
				},
			},
		},
	)}, nil
}

func (r *Router) unsubscribe(ctx context.Context, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) (*Reply, error) {
	channelID, ok := channelOption(data.Options, optionChannel)
	if !ok {
		return nil, oops.In("router").Wrapf(ErrMalformedInteraction, "unsubscribe needs a %q option", optionChannel)
	}

	userID := interactionUserID(i)
	slogctx.Info(ctx, "unsubscribe requested", "user_id", userID, "channel_id", channelID)
	return &Reply{Response: ephemeral(fmt.Sprintf("Unsubscribed <@%s> from <#%s>", userID, channelID))}, nil
}

func (r *Router) serverIcon(ctx context.Context, i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) (*Reply, error) {
	var target *discordgo.Message
	if data.Resolved != nil {
		target = data.Resolved.Messages[data.TargetID]
	}
	imageURL := messageImageURL(target)
	if imageURL == "" {
		return &Reply{Response: ephemeral("No image found in that message")}, nil
	}

	guildID := i.GuildID
	if guildID == "" {
		guildID = r.opts.GuildID
	}
	if guildID == "" {
		return &Reply{Response: ephemeral("This command only works in a server")}, nil
	}

	slogctx.Info(ctx, "server icon requested", "guild_id", guildID, "image_url", imageURL)
	return &Reply{
		Response: message("Set the new server icon to " + imageURL),
		FollowUps: []FollowUp{{
			Name: "set_guild_icon",
			Run: func(ctx context.Context) error {
				return r.notifier.SetGuildIcon(ctx, guildID, imageURL)
			},
		}},
	}, nil
}

func (r *Router) handleComponent(ctx context.Context, i *discordgo.Interaction) (*Reply, error) {
	data := i.MessageComponentData()

	corr, err := DecodeCorrelation(data.CustomID)
	if err != nil {
		InteractionsTotal.WithLabelValues("component", "unknown").Inc()
		slogctx.Warn(ctx, "ignoring component with unknown custom id", "custom_id", data.CustomID, "error", err)
		return &Reply{Response: acknowledge()}, nil
	}
	InteractionsTotal.WithLabelValues("component", string(corr.Kind)).Inc()
	ctx = slogctx.Append(ctx, "session_id", corr.SessionID)

	switch corr.Kind {
	case KindAccept:
		return r.accept(ctx, i, corr)
	case KindSelectChoice:
		return r.selectChoice(ctx, i, data, corr)
	}
	// DecodeCorrelation only returns known kinds
	return &Reply{Response: acknowledge()}, nil
}

func (r *Router) accept(ctx context.Context, i *discordgo.Interaction, corr Correlation) (*Reply, error) {
	sess, ok := r.store.Get(corr.SessionID)
	if !ok {
		slogctx.Debug(ctx, "accept for unknown session")
		return &Reply{Response: acknowledge()}, nil
	}

	customID, err := Correlation{Kind: KindSelectChoice, SessionID: sess.ID}.Encode()
	if err != nil {
		return nil, oops.In("router").Wrapf(err, "encode choice menu")
	}

	slogctx.Info(ctx, "challenge accepted", "challenger_id", sess.ChallengerID, "opponent_id", interactionUserID(i))

	reply := &Reply{Response: ephemeral(
		"What is your object of choice?",
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    customID,
					Placeholder: "Choose your object",
					Options:     shuffledOptions(r.opts.Shuffle),
				},
			},
		},
	)}

	if i.Message != nil && i.Message.ID != "" {
		token, messageID := i.Token, i.Message.ID
		reply.FollowUps = append(reply.FollowUps, FollowUp{
			Name: "delete_challenge_message",
			Run: func(ctx context.Context) error {
				return r.notifier.DeleteMessage(ctx, token, messageID)
			},
		})
	}
	return reply, nil
}

func (r *Router) selectChoice(ctx context.Context, i *discordgo.Interaction, data discordgo.MessageComponentInteractionData, corr Correlation) (*Reply, error) {
	userID := interactionUserID(i)
	if userID == "" || len(data.Values) == 0 {
		return nil, oops.In("router").Wrapf(ErrMalformedInteraction, "selection without user or value")
	}

	// validate before consuming so a bad value leaves the session in place
	choice, err := game.ParseChoice(data.Values[0])
	if err != nil {
		return nil, oops.In("router").
			With("value", data.Values[0]).
			Wrapf(fmt.Errorf("%w: %w", ErrConfiguration, err), "selected value")
	}

	sess, ok := r.store.ConsumeAndDelete(corr.SessionID)
	if !ok {
		slogctx.Debug(ctx, "selection for unknown or finished session")
		return &Reply{Response: acknowledge()}, nil
	}

	challenger := game.Player{ID: sess.ChallengerID, Choice: sess.ChallengerChoice}
	opponent := game.Player{ID: userID, Choice: choice}
	result, err := game.Decide(challenger, opponent)
	if err != nil {
		return nil, oops.In("router").
			With("session_id", sess.ID).
			Wrapf(fmt.Errorf("%w: %w", ErrConfiguration, err), "resolve game")
	}

	outcome := "win"
	if result.Draw {
		outcome = "draw"
	}
	GamesResolved.WithLabelValues(outcome).Inc()
	slogctx.Info(ctx, "game resolved", "challenger_id", challenger.ID, "opponent_id", opponent.ID, "outcome", outcome, "winner_id", result.WinnerID())

	reply := &Reply{Response: message(result.String())}

	if i.Message != nil && i.Message.ID != "" {
		token, messageID := i.Token, i.Message.ID
		reply.FollowUps = append(reply.FollowUps, FollowUp{
			Name: "edit_choice_message",
			Run: func(ctx context.Context) error {
				return r.notifier.EditMessage(ctx, token, messageID, "Nice choice "+randomEmoji())
			},
		})
	}
	if r.opts.Recorder != nil {
		match := domain.NewMatch(sess.ID, challenger, opponent, result)
		reply.FollowUps = append(reply.FollowUps, FollowUp{
			Name: "record_match",
			Run: func(ctx context.Context) error {
				return r.opts.Recorder.Record(ctx, match)
			},
		})
	}
	return reply, nil
}

// allow fails open when the limiter errors.
func (r *Router) allow(ctx context.Context, key string) bool {
	if r.opts.Limiter == nil {
		return true
	}
	ok, err := r.opts.Limiter.Allow(ctx, key)
	if err != nil {
		slogctx.Warn(ctx, "rate limiter unavailable", "error", err)
		return true
	}
	return ok
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, o := range opts {
		if o == nil || o.Name != name || o.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		s, ok := o.Value.(string)
		return s, ok
	}
	return "", false
}

func channelOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, bool) {
	for _, o := range opts {
		if o == nil || o.Name != name || o.Type != discordgo.ApplicationCommandOptionChannel {
			continue
		}
		s, ok := o.Value.(string)
		return s, ok && s != ""
	}
	return "", false
}

// messageImageURL returns the first attachment, else the first embed's
// image, else the first embed's url.
func messageImageURL(m *discordgo.Message) string {
	if m == nil {
		return ""
	}
	for _, a := range m.Attachments {
		if a != nil && a.URL != "" {
			return a.URL
		}
	}
	for _, e := range m.Embeds {
		if e == nil {
			continue
		}
		if e.Image != nil && e.Image.URL != "" {
			return e.Image.URL
		}
		if e.URL != "" {
			return e.URL
		}
	}
	return ""
}
