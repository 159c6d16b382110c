package accesslog

import (
	"io"
)

// ReadAutoCloser wraps an io.Reader, and closes it automatically, if closable,
// once it has been completely read. Reading after close returns an error, so
// a log file can't be consumed twice by mistake.
type ReadAutoCloser struct {
	r      io.Reader
	closed *bool
}

// NewReadAutoCloser returns a ReadAutoCloser wrapping the supplied Reader.
func NewReadAutoCloser(r io.Reader) ReadAutoCloser {
	return ReadAutoCloser{r: r, closed: new(bool)}
}

// Read reads up to len(b) bytes from the data source into b. It returns the
// number of bytes read and any error encountered. At end of file, Read returns
// 0, io.EOF, and the data source is closed.
func (a ReadAutoCloser) Read(b []byte) (n int, err error) {
	if a.r == nil {
		return 0, io.EOF
	}
	if *a.closed {
		return 0, ErrReadAfterClose
	}
	n, err = a.r.Read(b)
	if err == io.EOF {
		a.Close()
	}
	return n, err
}

// Close closes the data source associated with a, if it is an io.Closer, and
// returns the result of that close operation. Subsequent calls do nothing.
func (a ReadAutoCloser) Close() error {
	if a.r == nil || *a.closed {
		return nil
	}
	*a.closed = true
	if c, ok := a.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
