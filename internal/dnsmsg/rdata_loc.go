package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// LOCRData is a geographic location record (RFC 1876 §2). Latitude and
// longitude are stored as the raw 1000m-offset thousandths-of-arcsecond
// wire encoding; Size/HorizPrecision/VertPrecision use the base*10^exponent
// byte encoding from the RFC.
type LOCRData struct {
	Version   uint8
	Size      uint8
	HorizPre  uint8
	VertPre   uint8
	Latitude  uint32
	Longitude uint32
	Altitude  uint32
}

func (r LOCRData) Type() QType { return TypeLOC }

func (r LOCRData) Marshal(b *wire.Builder) error {
	b.WriteUint8(r.Version)
	b.WriteUint8(r.Size)
	b.WriteUint8(r.HorizPre)
	b.WriteUint8(r.VertPre)
	b.WriteUint32(r.Latitude)
	b.WriteUint32(r.Longitude)
	b.WriteUint32(r.Altitude)
	return nil
}

func (r LOCRData) String() string {
	return fmt.Sprintf("LOC lat=%d lon=%d alt=%d size=%#x hp=%#x vp=%#x", r.Latitude, r.Longitude, r.Altitude, r.Size, r.HorizPre, r.VertPre)
}

func decodeLOC(c *wire.Cursor) (RData, error) {
	version, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("loc version: %w", err)
	}
	size, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("loc size: %w", err)
	}
	hp, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("loc horiz precision: %w", err)
	}
	vp, err := c.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("loc vert precision: %w", err)
	}
	lat, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("loc latitude: %w", err)
	}
	lon, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("loc longitude: %w", err)
	}
	alt, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("loc altitude: %w", err)
	}
	return LOCRData{Version: version, Size: size, HorizPre: hp, VertPre: vp, Latitude: lat, Longitude: lon, Altitude: alt}, nil
}
