package accesslog

import (
	"net/netip"
	"regexp"
)

// Record is one successfully parsed log line.
type Record struct {
	Addr     netip.Addr
	Endpoint string
}

// LineParser turns one line of a log into a Record. Lines that should be
// skipped produce a *ParseError.
type LineParser func(line string) (Record, error)

// requestPattern matches the address at the start of a line, and the path
// in the quoted request following the bracketed timestamp. Every other field
// is ignored.
var requestPattern = regexp.MustCompile(`^(\S+).*\] "\S+ (\S+)`)

// ParseLine parses one line in Common or Combined Log Format:
//
//	1.1.1.1 - - [10/Jul/2018:22:21:28 +0200] "GET /endpoint1/ HTTP/1.1" 200 3574 "-" "Mozilla/5.0"
//
// If the line doesn't match, the error wraps ErrMalformedLine. If the first
// field isn't a valid IPv4 or IPv6 address, the error wraps
// ErrInvalidAddress.
func ParseLine(line string) (Record, error) {
	match := requestPattern.FindStringSubmatch(line)
	if match == nil {
		return Record{}, &ParseError{Line: line, Err: ErrMalformedLine}
	}
	return newRecord(line, match[1], match[2])
}

func newRecord(line, token, endpoint string) (Record, error) {
	addr, err := netip.ParseAddr(token)
	if err != nil {
		return Record{}, &ParseError{Line: line, Token: token, Err: ErrInvalidAddress}
	}
	return Record{Addr: addr, Endpoint: endpoint}, nil
}
