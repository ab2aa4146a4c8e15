package game

import (
	"fmt"
	"sort"
)

type choiceInfo struct {
	description string
	// beats maps each defeated choice to the verb used in the result message
	beats map[Choice]string
}

// choices is the beats table. Adding a choice means adding a row here and
// keeping every pair decided in exactly one direction (see ValidateTable).
var choices = map[Choice]choiceInfo{
	Rock: {
		description: "sedimentary, igneous, or perhaps even metamorphic",
		beats:       map[Choice]string{Scissors: "crushes"},
	},
	Paper: {
		description: "versatile and iconic",
		beats:       map[Choice]string{Rock: "covers"},
	},
	Scissors: {
		description: "careful ! sharp ! edges !!",
		beats:       map[Choice]string{Paper: "cuts"},
	},
}

// Choices returns the choice set in a stable order.
func Choices() []Choice {
	out := make([]Choice, 0, len(choices))
	for c := range choices {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Beats reports whether a defeats b.
func Beats(a, b Choice) bool {
	_, ok := choices[a].beats[b]
	return ok
}

// Decide plays a against b.
func Decide(a, b Player) (Result, error) {
	if !a.Choice.Valid() {
		return Result{}, fmt.Errorf("%w: player %s chose %q", ErrInvalidChoice, a.ID, a.Choice)
	}
	if !b.Choice.Valid() {
		return Result{}, fmt.Errorf("%w: player %s chose %q", ErrInvalidChoice, b.ID, b.Choice)
	}

	if a.Choice == b.Choice {
		return Result{Winner: a, Loser: b, Draw: true}, nil
	}
	if verb, ok := choices[a.Choice].beats[b.Choice]; ok {
		return Result{Winner: a, Loser: b, Verb: verb}, nil
	}
	if verb, ok := choices[b.Choice].beats[a.Choice]; ok {
		return Result{Winner: b, Loser: a, Verb: verb}, nil
	}

	// only reachable with an incomplete table
	return Result{}, fmt.Errorf("%w: no rule between %q and %q", ErrInvalidChoice, a.Choice, b.Choice)
}

// Resolve plays a against b and returns the outcome message.
func Resolve(a, b Player) (string, error) {
	r, err := Decide(a, b)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// ValidateTable checks that the beats table is total and antisymmetric.
func ValidateTable() error {
	for a, info := range choices {
		if _, ok := info.beats[a]; ok {
			return fmt.Errorf("%q beats itself", a)
		}
		for b := range info.beats {
			if !b.Valid() {
				return fmt.Errorf("%q beats unknown choice %q", a, b)
			}
		}
	}
	all := Choices()
	for i, a := range all {
		for _, b := range all[i+1:] {
			ab, ba := Beats(a, b), Beats(b, a)
			if ab == ba {
				return fmt.Errorf("pair %q/%q is not decided in exactly one direction", a, b)
			}
		}
	}
	return nil
}
