package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

// RPRData is a Responsible Person record (RFC 1183 §2.2).
type RPRData struct {
	Mailbox dnsname.Name
	TXTDom  dnsname.Name
}

func (r RPRData) Type() QType { return TypeRP }

func (r RPRData) Marshal(b *wire.Builder) error {
	mb, err := dnsname.Encode(r.Mailbox)
	if err != nil {
		return fmt.Errorf("rp mailbox: %w", err)
	}
	td, err := dnsname.Encode(r.TXTDom)
	if err != nil {
		return fmt.Errorf("rp txt-dname: %w", err)
	}
	b.WriteBytes(mb)
	b.WriteBytes(td)
	return nil
}

func (r RPRData) String() string { return fmt.Sprintf("%s %s", r.Mailbox, r.TXTDom) }

func decodeRP(msg []byte, c *wire.Cursor) (RData, error) {
	mailbox, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("rp mailbox: %w", err)
	}
	txtdom, err := dnsname.Decode(msg, &c.Off)
	if err != nil {
		return nil, fmt.Errorf("rp txt-dname: %w", err)
	}
	return RPRData{Mailbox: mailbox, TXTDom: txtdom}, nil
}
