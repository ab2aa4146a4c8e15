package interactions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelation_RoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindAccept, KindSelectChoice} {
		in := Correlation{Kind: kind, SessionID: "1234567890123456789"}

		id, err := in.Encode()
		require.NoError(t, err)
		assert.LessOrEqual(t, len(id), maxCustomIDLength)

		out, err := DecodeCorrelation(id)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestCorrelation_EncodeRejects(t *testing.T) {
	cases := []Correlation{
		{Kind: "", SessionID: "E1"},
		{Kind: "other", SessionID: "E1"},
		{Kind: KindAccept, SessionID: ""},
		{Kind: KindAccept, SessionID: strings.Repeat("9", maxCustomIDLength)},
	}
	for _, c := range cases {
		_, err := c.Encode()
		assert.ErrorIs(t, err, ErrInvalidCorrelation, "%+v", c)
	}
}

func TestDecodeCorrelation_Rejects(t *testing.T) {
	cases := []string{
		"",
		"accept_button_123",
		"select_choice_123",
		`{"k":"accept"}`,
		`{"k":"accept","s":""}`,
		`{"k":"bogus","s":"1"}`,
		`{"k":"accept","s":"1","x":1}`,
		`{"k":"accept","s":"1"}{"k":"accept","s":"2"}`,
		strings.Repeat("a", maxCustomIDLength+1),
	}
	for _, c := range cases {
		_, err := DecodeCorrelation(c)
		assert.ErrorIs(t, err, ErrInvalidCorrelation, c)
	}
}
