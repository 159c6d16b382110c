// Package accesslog reads web server access logs and summarises who made the
// requests and what they asked for: the number of unique client addresses,
// the most visited endpoints, and the most active addresses.
//
// Most operations start from a Pipe, so that reading, parsing and reporting
// can be chained:
//
//	accesslog.File("access.log").Report()
//
// If any pipe operation results in an error, the pipe's Error method will
// return that error, and all further pipe operations will be no-ops. Lines
// which can't be parsed are not errors: they are logged as diagnostics and
// skipped.
package accesslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Pipe is a source of log lines together with the parser that turns each
// line into a Record, the logger that reports skipped lines, and where the
// report goes. Once an operation fails, the error sticks: sinks return it and
// read nothing further.
type Pipe struct {
	Reader ReadAutoCloser
	err    error
	stdout io.Writer
	log    zerolog.Logger
	parse  LineParser
}

// NewPipe returns a pointer to a new empty pipe. Its report goes to
// os.Stdout and its diagnostics to os.Stderr.
func NewPipe() *Pipe {
	return &Pipe{
		Reader: ReadAutoCloser{},
		stdout: os.Stdout,
		log:    NewDiagnosticLogger(os.Stderr),
		parse:  ParseLine,
	}
}

// NewDiagnosticLogger returns a logger which writes one plain line per
// diagnostic to w: the message, followed by any fields.
func NewDiagnosticLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	})
}

// Close closes the pipe's associated reader. This is always safe to do, even
// more than once.
func (p *Pipe) Close() error {
	if p == nil {
		return nil
	}
	return p.Reader.Close()
}

// Error returns the last error returned by any pipe operation, or nil
// otherwise.
func (p *Pipe) Error() error {
	if p == nil {
		return nil
	}
	return p.err
}

// SetError sets the pipe's error status to the specified error. A non-nil
// error also closes the pipe's reader.
func (p *Pipe) SetError(err error) {
	if p != nil {
		if err != nil {
			p.Close()
		}
		p.err = err
	}
}

// WithReader takes an io.Reader, and associates the pipe with that reader. If
// necessary, the reader will be automatically closed once it has been
// completely read.
func (p *Pipe) WithReader(r io.Reader) *Pipe {
	if p == nil {
		return nil
	}
	p.Reader = NewReadAutoCloser(r)
	return p
}

// WithStdout takes an io.Writer, and associates the pipe's standard output with
// that writer, instead of the default os.Stdout. This is primarily useful for
// testing.
func (p *Pipe) WithStdout(w io.Writer) *Pipe {
	if p == nil {
		return nil
	}
	p.stdout = w
	return p
}

// WithStderr sends the pipe's diagnostics to w instead of os.Stderr.
func (p *Pipe) WithStderr(w io.Writer) *Pipe {
	if p == nil {
		return nil
	}
	p.log = NewDiagnosticLogger(w)
	return p
}

// WithLogger replaces the pipe's diagnostic logger. Skipped lines are logged
// at warn level, with the line number in the "line" field.
func (p *Pipe) WithLogger(l zerolog.Logger) *Pipe {
	if p == nil {
		return nil
	}
	p.log = l
	return p
}

// WithParser sets the function used to turn each line into a Record. The
// default is ParseLine.
func (p *Pipe) WithParser(parse LineParser) *Pipe {
	if p == nil {
		return nil
	}
	if parse == nil {
		parse = ParseLine
	}
	p.parse = parse
	return p
}

// WithError sets the pipe's error status to the specified error and returns
// the modified pipe.
func (p *Pipe) WithError(err error) *Pipe {
	p.SetError(err)
	return p
}
