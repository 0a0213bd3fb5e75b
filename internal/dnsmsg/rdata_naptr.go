package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// NAPTRRData is a Naming Authority Pointer record (RFC 3403 §4.1).
type NAPTRRData struct {
	Order       uint16
	Preference  uint16
	Flags       string
	Services    string
	Regexp      string
	Replacement dnsname.Name
}

func (r NAPTRRData) Type() QType { return TypeNAPTR }

func (r NAPTRRData) Marshal(b *wire.Builder) error {
	b.WriteUint16(r.Order)
	b.WriteUint16(r.Preference)
	b.WriteCharString(r.Flags)
	b.WriteCharString(r.Services)
	b.WriteCharString(r.Regexp)
	encoded, err := dnsname.Encode(r.Replacement)
	if err != nil {
		return fmt.Errorf("naptr replacement: %w", err)
	}
	b.WriteBytes(encoded)
	return nil
}

func (r NAPTRRData) String() string {
	return fmt.Sprintf("%d %d %q %q %q %s", r.Order, r.Preference, r.Flags, r.Services, r.Regexp, r.Replacement)
}

func decodeNAPTR(msg []byte, c *wire.Cursor) (RData, error) {
	order, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("naptr order: %w", err)
	}
	pref, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("naptr preference: %w", err)
	}
	flags, err := c.ReadCharString()
	if err != nil {
		return nil, fmt.Errorf("naptr flags: %w", err)
	}
	services, err := c.ReadCharString()
	if err != nil {
		return nil, fmt.Errorf("naptr services: %w", err)
	}
	regexp, err := c.ReadCharString()
	if err != nil {
		return nil, fmt.Errorf("naptr regexp: %w", err)
	}
	replacement, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("naptr replacement: %w", err)
	}
	return NAPTRRData{Order: order, Preference: pref, Flags: flags, Services: services, Regexp: regexp, Replacement: replacement}, nil
}
