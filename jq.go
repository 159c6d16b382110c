package accesslog

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// DefaultJQQuery extracts the address and endpoint from the field names most
// web servers use when logging JSON.
const DefaultJQQuery = `[(.remote_addr // .ip // .client_ip), (.path // .uri // .url)]`

// JQParser returns a LineParser for logs with one JSON object per line. The
// jq query is run against each object and must produce an array of two
// strings: the client address and the endpoint. Any other result means the
// line is malformed. It returns an error if the query doesn't compile.
func JQParser(query string) (LineParser, error) {
	q, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("parsing jq query %q: %w", query, err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compiling jq query %q: %w", query, err)
	}
	return func(line string) (Record, error) {
		malformed := &ParseError{Line: line, Err: ErrMalformedLine}
		var input any
		if err := json.Unmarshal([]byte(line), &input); err != nil {
			return Record{}, malformed
		}
		result, ok := code.Run(input).Next()
		if !ok {
			return Record{}, malformed
		}
		if _, isErr := result.(error); isErr {
			return Record{}, malformed
		}
		fields, ok := result.([]any)
		if !ok || len(fields) != 2 {
			return Record{}, malformed
		}
		token, ok := fields[0].(string)
		if !ok || token == "" {
			return Record{}, malformed
		}
		endpoint, ok := fields[1].(string)
		if !ok || endpoint == "" {
			return Record{}, malformed
		}
		return newRecord(line, token, endpoint)
	}, nil
}
