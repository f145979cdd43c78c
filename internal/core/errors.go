package core

// Error codes surfaced to clients over the protocol.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeRateLimited    = "rate_limited"
)

// CoreError wraps a code and human-readable message. Core errors are only
// ever reported to the offending connection; they never abort the event
// loop or affect other rooms.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}
