package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// PreferenceRData is the RDATA shape shared by MX (RFC 1035 §3.3.9), AFSDB
// (RFC 1183 §1), KX (RFC 2230) and RT (RFC 1183 §3.3): a 16-bit preference
// followed by a domain name.
type PreferenceRData struct {
	RRType     QType
	Preference uint16
	Exchange   dnsname.Name
}

func (r PreferenceRData) Type() QType { return r.RRType }

func (r PreferenceRData) Marshal(b *wire.Builder) error {
	encoded, err := dnsname.Encode(r.Exchange)
	if err != nil {
		return fmt.Errorf("preference rdata exchange: %w", err)
	}
	b.WriteUint16(r.Preference)
	b.WriteBytes(encoded)
	return nil
}

func (r PreferenceRData) String() string {
	return fmt.Sprintf("%d %s", r.Preference, r.Exchange)
}

func decodePreference(msg []byte, c *wire.Cursor, t QType) (RData, error) {
	pref, err := c.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("preference: %w", err)
	}
	name, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("exchange name: %w", err)
	}
	return PreferenceRData{RRType: t, Preference: pref, Exchange: name}, nil
}

func decodeMX(msg []byte, c *wire.Cursor) (RData, error)    { return decodePreference(msg, c, TypeMX) }
func decodeAFSDB(msg []byte, c *wire.Cursor) (RData, error) { return decodePreference(msg, c, TypeAFSDB) }
func decodeKX(msg []byte, c *wire.Cursor) (RData, error)    { return decodePreference(msg, c, TypeKX) }
func decodeRT(msg []byte, c *wire.Cursor) (RData, error)    { return decodePreference(msg, c, TypeRT) }
