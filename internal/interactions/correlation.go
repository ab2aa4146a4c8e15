package interactions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Discord rejects component custom ids longer than this.
const maxCustomIDLength = 100

var ErrInvalidCorrelation = errors.New("invalid correlation id")

// Kind tells which step of a game a component belongs to.
type Kind string

const (
	KindAccept       Kind = "accept"
	KindSelectChoice Kind = "select_choice"
)

func (k Kind) valid() bool {
	return k == KindAccept || k == KindSelectChoice
}

// Correlation is carried in a component's custom id and binds the callback
// to its session.
type Correlation struct {
	Kind      Kind   `json:"k"`
	SessionID string `json:"s"`
}

// Encode serializes c into a custom id.
func (c Correlation) Encode() (string, error) {
	if !c.Kind.valid() || c.SessionID == "" {
		return "", fmt.Errorf("%w: kind=%q session=%q", ErrInvalidCorrelation, c.Kind, c.SessionID)
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	if len(b) > maxCustomIDLength {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidCorrelation, len(b), maxCustomIDLength)
	}
	return string(b), nil
}

// DecodeCorrelation parses a custom id produced by Encode.
func DecodeCorrelation(customID string) (Correlation, error) {
	if customID == "" || len(customID) > maxCustomIDLength {
		return Correlation{}, fmt.Errorf("%w: bad length %d", ErrInvalidCorrelation, len(customID))
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(customID)))
	dec.DisallowUnknownFields()

	var c Correlation
	if err := dec.Decode(&c); err != nil {
		return Correlation{}, fmt.Errorf("%w: %w", ErrInvalidCorrelation, err)
	}
	if dec.More() {
		return Correlation{}, fmt.Errorf("%w: trailing data", ErrInvalidCorrelation)
	}
	if !c.Kind.valid() {
		return Correlation{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidCorrelation, c.Kind)
	}
	if c.SessionID == "" {
		return Correlation{}, fmt.Errorf("%w: empty session", ErrInvalidCorrelation)
	}
	return c, nil
}
