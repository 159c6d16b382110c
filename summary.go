package accesslog

import (
	"net/netip"
	"sort"
)

// Summary counts requests by client address and by endpoint. The zero value
// is an empty summary ready to use.
type Summary struct {
	byAddr     map[netip.Addr]int
	byEndpoint map[string]int
	total      int
}

// AddressCount is one row of a ranking by address.
type AddressCount struct {
	Addr  netip.Addr
	Count int
}

// EndpointCount is one row of a ranking by endpoint.
type EndpointCount struct {
	Endpoint string
	Count    int
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		byAddr:     map[netip.Addr]int{},
		byEndpoint: map[string]int{},
	}
}

// Summarize returns a new summary of records.
func Summarize(records []Record) *Summary {
	s := NewSummary()
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Add counts one request.
func (s *Summary) Add(r Record) {
	if s.byAddr == nil {
		s.byAddr = map[netip.Addr]int{}
		s.byEndpoint = map[string]int{}
	}
	s.byAddr[r.Addr]++
	s.byEndpoint[r.Endpoint]++
	s.total++
}

// RequestsFrom returns the number of requests made by addr, which is zero if
// addr was never seen.
func (s *Summary) RequestsFrom(addr netip.Addr) int {
	return s.byAddr[addr]
}

// RequestsTo returns the number of requests made to endpoint, which is zero if
// endpoint was never seen.
func (s *Summary) RequestsTo(endpoint string) int {
	return s.byEndpoint[endpoint]
}

// UniqueAddresses returns the number of distinct client addresses.
func (s *Summary) UniqueAddresses() int {
	return len(s.byAddr)
}

// UniqueEndpoints returns the number of distinct endpoints.
func (s *Summary) UniqueEndpoints() int {
	return len(s.byEndpoint)
}

// Total returns the number of requests counted.
func (s *Summary) Total() int {
	return s.total
}

// TopEndpoints returns up to n endpoints, most visited first. Endpoints with
// equal counts are sorted alphabetically.
func (s *Summary) TopEndpoints(n int) []EndpointCount {
	if n <= 0 {
		return nil
	}
	ranked := make([]EndpointCount, 0, len(s.byEndpoint))
	for endpoint, count := range s.byEndpoint {
		ranked = append(ranked, EndpointCount{endpoint, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Endpoint < ranked[j].Endpoint
		}
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopAddresses returns up to n addresses, most active first. Addresses with
// equal counts are sorted in address order, IPv4 before IPv6.
func (s *Summary) TopAddresses(n int) []AddressCount {
	if n <= 0 {
		return nil
	}
	ranked := make([]AddressCount, 0, len(s.byAddr))
	for addr, count := range s.byAddr {
		ranked = append(ranked, AddressCount{addr, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Addr.Less(ranked[j].Addr)
		}
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
