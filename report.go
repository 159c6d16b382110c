package accesslog

import (
	"fmt"
	"io"
	"strings"
)

// reportTop is how many entries each ranking in a report lists.
const reportTop = 3

// Report renders the summary as text: the number of unique addresses, then
// the top three endpoints and the top three addresses. Addresses are shown in
// full, so IPv6 addresses have all eight groups.
func (s *Summary) Report() string {
	var out strings.Builder
	fmt.Fprintf(&out, "Number of unique IP addresses: %d\n", s.UniqueAddresses())
	fmt.Fprintf(&out, "Top %d most visited URLs:\n", reportTop)
	for _, e := range s.TopEndpoints(reportTop) {
		fmt.Fprintf(&out, "\t%s\tvisited %d time(s)\n", e.Endpoint, e.Count)
	}
	fmt.Fprintf(&out, "Top %d most active IP addresses:\n", reportTop)
	for _, a := range s.TopAddresses(reportTop) {
		fmt.Fprintf(&out, "\t%s\t%d requests\n", a.Addr.StringExpanded(), a.Count)
	}
	return out.String()
}

// WriteReport writes the summary's report to w, returning the number of bytes
// written.
func (s *Summary) WriteReport(w io.Writer) (int, error) {
	return io.WriteString(w, s.Report())
}
