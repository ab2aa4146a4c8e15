package interactions

import (
	"testing"

	"discord_rps/internal/game"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	cmds := Commands()
	require.Len(t, cmds, 4)

	byName := map[string]*discordgo.ApplicationCommand{}
	for _, c := range cmds {
		byName[c.Name] = c
	}

	challenge := byName[CommandChallenge]
	require.NotNil(t, challenge)
	require.Len(t, challenge.Options, 1)
	opt := challenge.Options[0]
	assert.Equal(t, optionObject, opt.Name)
	assert.True(t, opt.Required)

	var values []string
	for _, ch := range opt.Choices {
		values = append(values, ch.Value.(string))
	}
	assert.Equal(t, []string{"paper", "rock", "scissors"}, values)
	assert.Equal(t, "Rock", choiceLabel(game.Rock))

	icon := byName[CommandServerIcon]
	require.NotNil(t, icon)
	assert.Equal(t, discordgo.MessageApplicationCommand, icon.Type)
	assert.Empty(t, icon.Description)

	unsubscribe := byName[CommandUnsubscribe]
	require.NotNil(t, unsubscribe)
	assert.Equal(t, discordgo.ApplicationCommandOptionChannel, unsubscribe.Options[0].Type)
}

func TestShuffledOptions(t *testing.T) {
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	opts := shuffledOptions(reverse)
	require.Len(t, opts, 3)
	assert.Equal(t, "scissors", opts[0].Value)
	assert.Equal(t, "Scissors", opts[0].Label)
	assert.Equal(t, "paper", opts[2].Value)
	assert.NotEmpty(t, opts[0].Description)
}
