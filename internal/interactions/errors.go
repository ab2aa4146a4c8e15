package interactions

import "errors"

var (
	ErrUnsupportedInteraction = errors.New("unsupported interaction type")
	ErrUnknownCommand         = errors.New("unknown command")
	ErrMalformedInteraction   = errors.New("malformed interaction")

	// ErrConfiguration marks state that input validation should have made
	// impossible, such as a choice outside the choice set.
	ErrConfiguration = errors.New("configuration error")
)

// IsBadRequest reports whether err was caused by the request itself rather
// than by this service.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrUnsupportedInteraction) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrMalformedInteraction)
}
