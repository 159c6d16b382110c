package accesslog

import (
	"bufio"
	"io"
	"strings"
)

// EachLine calls process for each line of input, in order, passing it the
// line, without its line ending, and its 1-based line number. Lines may be
// any length. Reading stops early if process sets the pipe's error status.
// The pipe is closed afterwards. If there is an error reading the pipe, the
// pipe's error status is set.
func (p *Pipe) EachLine(process func(line string, n int)) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	defer p.Close()
	r := bufio.NewReader(p.Reader)
	var n int
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			n++
			line = strings.TrimSuffix(line, "\n")
			process(strings.TrimSuffix(line, "\r"), n)
			if p.Error() != nil {
				return p
			}
		}
		if err == io.EOF {
			return p
		}
		if err != nil {
			p.SetError(err)
			return p
		}
	}
}

// EachRecord parses each line with the pipe's parser and calls process for
// every Record. Lines which can't be parsed are logged as warnings, with
// their line number, and skipped.
func (p *Pipe) EachRecord(process func(Record)) *Pipe {
	return p.EachLine(func(line string, n int) {
		r, err := p.parse(line)
		if err != nil {
			p.log.Warn().Int("line", n).Msg(err.Error())
			return
		}
		process(r)
	})
}
