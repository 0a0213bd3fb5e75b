package dnsmsg

import (
	"fmt"
	"strings"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// TXTRData holds one or more character-strings (RFC 1035 §3.3.14).
type TXTRData struct {
	Strings []string
}

func (r TXTRData) Type() QType { return TypeTXT }

func (r TXTRData) Marshal(b *wire.Builder) error {
	for _, s := range r.Strings {
		b.WriteCharString(s)
	}
	return nil
}

func (r TXTRData) String() string {
	parts := make([]string, len(r.Strings))
	for i, s := range r.Strings {
		parts[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(parts, " ")
}

func decodeTXT(c *wire.Cursor, rdlen int) (RData, error) {
	end := c.Off + rdlen
	var strs []string
	for c.Off < end {
		s, err := c.ReadCharString()
		if err != nil {
			return nil, fmt.Errorf("txt string: %w", err)
		}
		strs = append(strs, s)
	}
	if c.Off != end {
		return nil, fmt.Errorf("%w: txt strings overran rdlength", ErrRDLengthOverrun)
	}
	return TXTRData{Strings: strs}, nil
}

// HINFORData describes host CPU and OS (RFC 1035 §3.3.2).
type HINFORData struct {
	CPU string
	OS  string
}

func (r HINFORData) Type() QType { return TypeHINFO }

func (r HINFORData) Marshal(b *wire.Builder) error {
	b.WriteCharString(r.CPU)
	b.WriteCharString(r.OS)
	return nil
}

func (r HINFORData) String() string { return fmt.Sprintf("%q %q", r.CPU, r.OS) }

func decodeHINFO(c *wire.Cursor) (RData, error) {
	cpu, err := c.ReadCharString()
	if err != nil {
		return nil, fmt.Errorf("hinfo cpu: %w", err)
	}
	os, err := c.ReadCharString()
	if err != nil {
		return nil, fmt.Errorf("hinfo os: %w", err)
	}
	return HINFORData{CPU: cpu, OS: os}, nil
}
