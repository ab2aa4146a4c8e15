package interactions

import (
	"discord_rps/internal/game"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandTest        = "test"
	CommandChallenge   = "challenge"
	CommandUnsubscribe = "unsubscribe"
	CommandServerIcon  = "Set as server icon"

	optionObject  = "object"
	optionChannel = "channel"
)

// Commands returns the application commands this service answers.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandTest,
			Description: "Basic guild command",
			Type:        discordgo.ChatApplicationCommand,
		},
		{
			Name:        CommandChallenge,
			Description: "Challenge to a match of rock paper scissors",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionObject,
					Description: "Pick your object",
					Required:    true,
					Choices:     commandChoices(),
				},
			},
		},
		{
			Name:        CommandUnsubscribe,
			Description: "Unsubscribe from a channel",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        optionChannel,
					Description: "Pick your channel",
					Required:    true,
				},
			},
		},
		{
			Name: CommandServerIcon,
			Type: discordgo.MessageApplicationCommand,
		},
	}
}

func commandChoices() []*discordgo.ApplicationCommandOptionChoice {
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, c := range game.Choices() {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{
			Name:  choiceLabel(c),
			Value: string(c),
		})
	}
	return out
}
