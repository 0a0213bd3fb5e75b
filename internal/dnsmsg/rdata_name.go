package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// NameRData is the RDATA shape shared by every record whose payload is a
// single domain name: NS, CNAME, PTR, DNAME, and the legacy MB/MD/MF/MG/MR
// mailbox types (RFC 1035 §3.3).
type NameRData struct {
	RRType QType
	Target dnsname.Name
}

func (r NameRData) Type() QType { return r.RRType }

func (r NameRData) Marshal(b *wire.Builder) error {
	encoded, err := dnsname.Encode(r.Target)
	if err != nil {
		return fmt.Errorf("name rdata target: %w", err)
	}
	b.WriteBytes(encoded)
	return nil
}

func (r NameRData) String() string { return r.Target.String() }

func decodeNameRData(msg []byte, c *wire.Cursor, t QType) (RData, error) {
	name, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("target name: %w", err)
	}
	return NameRData{RRType: t, Target: name}, nil
}
