// Package rootservers carries the IANA root hints used to seed an
// iterative resolution (RFC 1035 §4.3.2, "root-servers.net").
package rootservers

import "net"

// Hint is one root server's published name and addresses.
type Hint struct {
	Name string
	IPv4 net.IP
	IPv6 net.IP
}

// Hints is the frozen list of the thirteen root server letters, current as
// of the 2023 IANA root hints file. It is never mutated at runtime.
var Hints = []Hint{
	{Name: "a.root-servers.net", IPv4: net.ParseIP("198.41.0.4"), IPv6: net.ParseIP("2001:503:ba3e::2:30")},
	{Name: "b.root-servers.net", IPv4: net.ParseIP("170.247.170.2"), IPv6: net.ParseIP("2801:1b8:10::b")},
	{Name: "c.root-servers.net", IPv4: net.ParseIP("192.33.4.12"), IPv6: net.ParseIP("2001:500:2::c")},
	{Name: "d.root-servers.net", IPv4: net.ParseIP("199.7.91.13"), IPv6: net.ParseIP("2001:500:2d::d")},
	{Name: "e.root-servers.net", IPv4: net.ParseIP("192.203.230.10"), IPv6: net.ParseIP("2001:500:a8::e")},
	{Name: "f.root-servers.net", IPv4: net.ParseIP("192.5.5.241"), IPv6: net.ParseIP("2001:500:2f::f")},
	{Name: "g.root-servers.net", IPv4: net.ParseIP("192.112.36.4"), IPv6: net.ParseIP("2001:500:12::d0d")},
	{Name: "h.root-servers.net", IPv4: net.ParseIP("198.97.190.53"), IPv6: net.ParseIP("2001:500:1::53")},
	{Name: "i.root-servers.net", IPv4: net.ParseIP("192.36.148.17"), IPv6: net.ParseIP("2001:7fe::53")},
	{Name: "j.root-servers.net", IPv4: net.ParseIP("192.58.128.30"), IPv6: net.ParseIP("2001:503:c27::2:30")},
	{Name: "k.root-servers.net", IPv4: net.ParseIP("193.0.14.129"), IPv6: net.ParseIP("2001:7fd::1")},
	{Name: "l.root-servers.net", IPv4: net.ParseIP("199.7.83.42"), IPv6: net.ParseIP("2001:500:9f::42")},
	{Name: "m.root-servers.net", IPv4: net.ParseIP("202.12.27.33"), IPv6: net.ParseIP("2001:dc3::35")},
}

// Pick returns the root hint at index i modulo the number of hints, so any
// non-negative i (internal/trace passes a math/rand draw) selects a valid
// entry.
func Pick(i int) Hint {
	return Hints[i%len(Hints)]
}

// Count returns the number of known root hints.
func Count() int { return len(Hints) }
