package interactions

import (
	"math/rand/v2"

	"discord_rps/internal/game"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var emojis = []string{"😭", "😄", "😌", "🤓", "😎", "😤", "🤖", "😶‍🌫️", "🌏", "📸", "💿", "👋", "🌊", "✨"}

func randomEmoji() string {
	return emojis[rand.IntN(len(emojis))]
}

func choiceLabel(c game.Choice) string {
	// Casers are not safe for concurrent use
	return cases.Title(language.English).String(string(c))
}

// shuffledOptions returns one menu option per choice in random order.
func shuffledOptions(shuffle func(n int, swap func(i, j int))) []discordgo.SelectMenuOption {
	choices := game.Choices()
	shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })

	opts := make([]discordgo.SelectMenuOption, 0, len(choices))
	for _, c := range choices {
		opts = append(opts, discordgo.SelectMenuOption{
			Label:       choiceLabel(c),
			Value:       string(c),
			Description: c.Description(),
		})
	}
	return opts
}

func message(content string, components ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	}
}

func ephemeral(content string, components ...discordgo.MessageComponent) *discordgo.InteractionResponse {
	resp := message(content, components...)
	resp.Data.Flags = discordgo.MessageFlagsEphemeral
	return resp
}

// acknowledge answers without changing anything visible.
func acknowledge() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
}
