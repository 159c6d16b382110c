package accesslog

import "errors"

var (
	// ErrMalformedLine means a line doesn't have the shape of an access log
	// entry: a client address, and later a quoted request.
	ErrMalformedLine = errors.New("malformed log line")

	// ErrInvalidAddress means a line had the right shape, but its first
	// field isn't an IPv4 or IPv6 address.
	ErrInvalidAddress = errors.New("invalid IP address")

	// ErrReadAfterClose is returned when reading from a pipe whose source
	// has already been consumed or closed.
	ErrReadAfterClose = errors.New("read from closed source")
)

// ParseError reports a line that was skipped. Err is ErrMalformedLine or
// ErrInvalidAddress.
type ParseError struct {
	Line  string
	Token string // the rejected address, if Err is ErrInvalidAddress
	Err   error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrInvalidAddress) {
		return "invalid IP address logged " + e.Token
	}
	return "failed to parse log line: " + e.Line
}

func (e *ParseError) Unwrap() error { return e.Err }
