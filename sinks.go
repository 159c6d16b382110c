package accesslog

// CountLines counts lines from the pipe's reader, and returns the integer
// result, or an error. If there is an error reading the pipe, the pipe's error
// status is also set.
func (p *Pipe) CountLines() (int, error) {
	var lines int
	p.EachLine(func(string, int) {
		lines++
	})
	return lines, p.Error()
}

// Records parses every line from the pipe and returns the resulting records,
// in input order, or an error if the pipe couldn't be read. Skipped lines are
// logged but are not errors.
func (p *Pipe) Records() ([]Record, error) {
	var records []Record
	p.EachRecord(func(r Record) {
		records = append(records, r)
	})
	if p.Error() != nil {
		return nil, p.Error()
	}
	return records, nil
}

// Summary parses every line from the pipe and returns a summary of the
// records, or an error if the pipe couldn't be read.
func (p *Pipe) Summary() (*Summary, error) {
	records, err := p.Records()
	if err != nil {
		return nil, err
	}
	return Summarize(records), nil
}

// Report summarises the pipe's contents and writes the report to the pipe's
// standard output. It returns the number of bytes successfully written, plus a
// non-nil error if the write failed or if there was an error reading from the
// pipe. If the pipe has error status, Report returns zero plus the existing
// error.
func (p *Pipe) Report() (int, error) {
	if p == nil {
		return 0, nil
	}
	s, err := p.Summary()
	if err != nil {
		return 0, err
	}
	return s.WriteReport(p.stdout)
}
