package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/oops"
)

// EnsureCommands creates every command in cmds that is not already
// registered, matching by name only. An empty guildID targets global
// commands. Existing commands are left untouched even when their
// definition changed.
func (c *Client) EnsureCommands(ctx context.Context, guildID string, cmds []*discordgo.ApplicationCommand) ([]string, error) {
	existing, err := c.api.ApplicationCommands(c.appID, guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, upstream(err, "list commands", "guild_id", guildID)
	}

	installed := make(map[string]struct{}, len(existing))
	for _, cmd := range existing {
		installed[cmd.Name] = struct{}{}
	}

	var (
		created []string
		errs    []error
	)
	for _, cmd := range cmds {
		if _, ok := installed[cmd.Name]; ok {
			c.log.Debug("command already installed", "name", cmd.Name)
			continue
		}
		if _, err := c.api.ApplicationCommandCreate(c.appID, guildID, cmd, discordgo.WithContext(ctx)); err != nil {
			errs = append(errs, upstream(err, "create command", "name", cmd.Name))
			continue
		}
		c.log.Info("command installed", "name", cmd.Name, "guild_id", guildID)
		created = append(created, cmd.Name)
	}
	if err := errors.Join(errs...); err != nil {
		return created, oops.In("discord").Wrapf(err, "register commands")
	}
	return created, nil
}
