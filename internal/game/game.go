package game

import (
	"errors"
	"fmt"
)

// ErrInvalidChoice is returned for a value outside the choice set.
var ErrInvalidChoice = errors.New("invalid choice")

type Choice string

const (
	Rock     Choice = "rock"
	Paper    Choice = "paper"
	Scissors Choice = "scissors"
)

// Player is one side of a match
type Player struct {
	ID     string
	Choice Choice
}

// Result describes a decided match. On a draw Winner and Loser hold the
// players in argument order.
type Result struct {
	Winner Player
	Loser  Player
	Verb   string
	Draw   bool
}

// WinnerID returns the winning player's id, or "" on a draw.
func (r Result) WinnerID() string {
	if r.Draw {
		return ""
	}
	return r.Winner.ID
}

// String formats the outcome as a chat message.
func (r Result) String() string {
	if r.Draw {
		return fmt.Sprintf("<@%s> and <@%s> draw with **%s**", r.Winner.ID, r.Loser.ID, r.Winner.Choice)
	}
	return fmt.Sprintf("<@%s>'s **%s** %s <@%s>'s **%s**",
		r.Winner.ID, r.Winner.Choice, r.Verb, r.Loser.ID, r.Loser.Choice)
}

// ParseChoice converts a raw option value into a Choice.
func ParseChoice(s string) (Choice, error) {
	c := Choice(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
	return c, nil
}

// Valid reports whether c is part of the choice set.
func (c Choice) Valid() bool {
	_, ok := choices[c]
	return ok
}

// Description returns the flavour text shown next to c in menus.
func (c Choice) Description() string {
	return choices[c].description
}
