package accesslog_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/bitfield/accesslog"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestFile_RecordsParsesValidLinesAndSkipsInvalidAddress(t *testing.T) {
	t.Parallel()
	stderr := new(bytes.Buffer)
	got, err := accesslog.File("testdata/access.log").WithStderr(stderr).Records()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(sampleRecords, got, addrComparer) {
		t.Error(cmp.Diff(sampleRecords, got, addrComparer))
	}
	want := "invalid IP address logged INVALID_IP line=12\n"
	if stderr.String() != want {
		t.Error(cmp.Diff(want, stderr.String()))
	}
}

func TestRecords_LogsEachSkippedLineInOrderWithLineNumber(t *testing.T) {
	t.Parallel()
	logs := new(bytes.Buffer)
	p := accesslog.Slice([]string{
		"garbage",
		logLine("1.1.1.1", "/a/"),
		logLine("INVALID_IP", "/b/"),
		logLine("1.1.1.2", "/c/"),
	}).WithLogger(zerolog.New(logs))
	got, err := p.Records()
	if err != nil {
		t.Fatal(err)
	}
	want := []accesslog.Record{record("1.1.1.1", "/a/"), record("1.1.1.2", "/c/")}
	if !cmp.Equal(want, got, addrComparer) {
		t.Error(cmp.Diff(want, got, addrComparer))
	}
	wantLogs := `{"level":"warn","line":1,"message":"failed to parse log line: garbage"}` + "\n" +
		`{"level":"warn","line":3,"message":"invalid IP address logged INVALID_IP"}` + "\n"
	if logs.String() != wantLogs {
		t.Error(cmp.Diff(wantLogs, logs.String()))
	}
}

func TestSummary_TotalEqualsNumberOfParsedLines(t *testing.T) {
	t.Parallel()
	s, err := accesslog.File("testdata/access.log").WithLogger(zerolog.Nop()).Summary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total() != len(sampleRecords) {
		t.Errorf("want %d requests, got %d", len(sampleRecords), s.Total())
	}
	if s.UniqueAddresses() != 5 {
		t.Errorf("want 5 unique addresses, got %d", s.UniqueAddresses())
	}
}

func TestReport_WritesReportToPipeStdout(t *testing.T) {
	t.Parallel()
	stdout := new(bytes.Buffer)
	n, err := accesslog.File("testdata/access.log").
		WithLogger(zerolog.Nop()).
		WithStdout(stdout).
		Report()
	if err != nil {
		t.Fatal(err)
	}
	want := accesslog.Summarize(sampleRecords).Report()
	if n != len(want) {
		t.Errorf("want %d bytes written, got %d", len(want), n)
	}
	if stdout.String() != want {
		t.Error(cmp.Diff(want, stdout.String()))
	}
}

func TestWithParser_ReplacesLineParser(t *testing.T) {
	t.Parallel()
	parse, err := accesslog.JQParser(accesslog.DefaultJQQuery)
	if err != nil {
		t.Fatal(err)
	}
	s, err := accesslog.File("testdata/access.jsonl").
		WithParser(parse).
		WithLogger(zerolog.Nop()).
		Summary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total() != 4 {
		t.Errorf("want 4 requests, got %d", s.Total())
	}
	if got := s.RequestsTo("/login"); got != 2 {
		t.Errorf("want 2 requests to /login, got %d", got)
	}
}

func TestWithParser_NilRestoresDefault(t *testing.T) {
	t.Parallel()
	got, err := accesslog.Echo(logLine("1.1.1.1", "/")).WithParser(nil).Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("want 1 record, got %d", len(got))
	}
}

func TestEachLine_HandlesLinesOverOneMebibyte(t *testing.T) {
	t.Parallel()
	long := `1.1.1.2 - - [10/Jul/2018:22:21:28 +0200] "GET /long/ HTTP/1.1" 200 3574 "-" "` + strings.Repeat("x", 2*1024*1024) + `"`
	s, err := accesslog.Slice([]string{
		logLine("1.1.1.1", "/first/"),
		long,
		logLine("1.1.1.3", "/last/"),
	}).WithLogger(zerolog.Nop()).Summary()
	if err != nil {
		t.Fatal(err)
	}
	if s.Total() != 3 {
		t.Errorf("want 3 requests, got %d", s.Total())
	}
	for _, endpoint := range []string{"/first/", "/long/", "/last/"} {
		if got := s.RequestsTo(endpoint); got != 1 {
			t.Errorf("%s: want 1 request, got %d", endpoint, got)
		}
	}
}

func TestEachLine_StripsLineEndingsAndCountsFinalUnterminatedLine(t *testing.T) {
	t.Parallel()
	var got []string
	p := accesslog.Echo("a\r\nb\n\nc").EachLine(func(line string, n int) {
		got = append(got, fmt.Sprintf("%d:%s", n, line))
	})
	if p.Error() != nil {
		t.Fatal(p.Error())
	}
	want := []string{"1:a", "2:b", "3:", "4:c"}
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
}

func TestCountLines(t *testing.T) {
	t.Parallel()
	got, err := accesslog.File("testdata/access.log").CountLines()
	if err != nil {
		t.Fatal(err)
	}
	if got != 12 {
		t.Errorf("want 12 lines, got %d", got)
	}
}

func TestFile_SetsErrorForNonexistentFile(t *testing.T) {
	t.Parallel()
	p := accesslog.File("testdata/doesntexist.log")
	if p.Error() == nil {
		t.Fatal("want error status on opening non-existent file, but got nil")
	}
	if !errors.Is(p.Error(), os.ErrNotExist) {
		t.Errorf("want os.ErrNotExist, got %v", p.Error())
	}
}

func TestSinks_OnErroredPipeReturnPipeError(t *testing.T) {
	t.Parallel()
	defer func() {
		// Reading an erroneous pipe should not panic.
		if r := recover(); r != nil {
			t.Fatalf("panic reading erroneous pipe: %v", r)
		}
	}()
	e := errors.New("fake error")
	p := accesslog.Echo(logLine("1.1.1.1", "/")).WithError(e)
	if p.Error() != e {
		t.Fatalf("want %v when setting pipe error, got %v", e, p.Error())
	}
	records, err := p.Records()
	if err != e || records != nil {
		t.Errorf("Records: want nil, %v; got %v, %v", e, records, err)
	}
	s, err := p.Summary()
	if err != e || s != nil {
		t.Errorf("Summary: want nil, %v; got %v, %v", e, s, err)
	}
	n, err := p.Report()
	if err != e || n != 0 {
		t.Errorf("Report: want 0, %v; got %d, %v", e, n, err)
	}
	lines, err := p.CountLines()
	if err != e || lines != 0 {
		t.Errorf("CountLines: want 0, %v; got %d, %v", e, lines, err)
	}
}

func TestSinks_OnNilPipeDoNotPanic(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic reading nil pipe: %v", r)
		}
	}()
	var p *accesslog.Pipe
	if _, err := p.Records(); err != nil {
		t.Error(err)
	}
	if _, err := p.Report(); err != nil {
		t.Error(err)
	}
	if err := p.Close(); err != nil {
		t.Error(err)
	}
}

func TestRecords_ReadingConsumedPipeSetsError(t *testing.T) {
	t.Parallel()
	p := accesslog.Echo(logLine("1.1.1.1", "/"))
	if _, err := p.Records(); err != nil {
		t.Fatal(err)
	}
	_, err := p.Records()
	if !errors.Is(err, accesslog.ErrReadAfterClose) {
		t.Errorf("want ErrReadAfterClose, got %v", err)
	}
	if p.Error() != err {
		t.Errorf("returned %v but pipe error status was %v", err, p.Error())
	}
}

func TestRecords_ClosesFileAfterReading(t *testing.T) {
	t.Parallel()
	f, err := os.Open("testdata/access.log")
	if err != nil {
		t.Fatal(err)
	}
	_, err = accesslog.NewPipe().WithReader(f).WithLogger(zerolog.Nop()).Records()
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Read(make([]byte, 1))
	if !errors.Is(err, os.ErrClosed) {
		t.Errorf("want file closed after reading, got %v", err)
	}
}

func TestSlice_ProducesOneLinePerElement(t *testing.T) {
	t.Parallel()
	got, err := accesslog.Slice([]string{"a", "b", "c"}).CountLines()
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("want 3 lines, got %d", got)
	}
	got, err = accesslog.Slice(nil).CountLines()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("want 0 lines, got %d", got)
	}
}
