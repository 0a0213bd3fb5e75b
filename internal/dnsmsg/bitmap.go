package dnsmsg

import (
	"fmt"

	"github.com/duskcoil/dnsdig/internal/wire"
)

// TypeBitmap is the decoded "type present" set carried by NSEC, NSEC3 and
// CSYNC records (RFC 4034 §4.1.2, RFC 5155 §3.2.1): a sorted list of the
// RR types that exist at the owner name.
type TypeBitmap struct {
	Types []QType
}

// Has reports whether t is a member of the bitmap.
func (tb TypeBitmap) Has(t QType) bool {
	for _, x := range tb.Types {
		if x == t {
			return true
		}
	}
	return false
}

func (tb TypeBitmap) String() string {
	s := ""
	for i, t := range tb.Types {
		if i > 0 {
			s += " "
		}
		s += t.String()
	}
	return s
}

// EncodeTypeBitmap serializes a sorted type list into the windowed bitmap
// wire format: one block per 256-value window, each block a window number,
// a byte-length, and the packed bits (MSB-first, network bit order within
// each byte) for the types present in that window.
func EncodeTypeBitmap(b *wire.Builder, types []QType) {
	if len(types) == 0 {
		return
	}
	byWindow := map[uint8][32]byte{}
	maxByte := map[uint8]int{}
	for _, t := range types {
		window := uint8(uint16(t) >> 8)
		bit := uint8(t) // low 8 bits
		byteIdx := int(bit / 8)
		bitIdx := uint(7 - bit%8)
		blk := byWindow[window]
		blk[byteIdx] |= 1 << bitIdx
		byWindow[window] = blk
		if byteIdx+1 > maxByte[window] {
			maxByte[window] = byteIdx + 1
		}
	}
	windows := make([]uint8, 0, len(byWindow))
	for w := range byWindow {
		windows = append(windows, w)
	}
	// deterministic ascending order
	for i := 0; i < len(windows); i++ {
		for j := i + 1; j < len(windows); j++ {
			if windows[j] < windows[i] {
				windows[i], windows[j] = windows[j], windows[i]
			}
		}
	}
	for _, w := range windows {
		blk := byWindow[w]
		n := maxByte[w]
		b.WriteUint8(w)
		b.WriteUint8(uint8(n))
		b.WriteBytes(blk[:n])
	}
}

// DecodeTypeBitmap parses the windowed bitmap format occupying the remaining
// n bytes of c.
func DecodeTypeBitmap(c *wire.Cursor, n int) (TypeBitmap, error) {
	end := c.Off + n
	var types []QType
	for c.Off < end {
		window, err := c.ReadUint8()
		if err != nil {
			return TypeBitmap{}, fmt.Errorf("%w: bitmap window: %v", ErrBadBitmap, err)
		}
		blen, err := c.ReadUint8()
		if err != nil {
			return TypeBitmap{}, fmt.Errorf("%w: bitmap block length: %v", ErrBadBitmap, err)
		}
		if blen == 0 || blen > 32 {
			return TypeBitmap{}, fmt.Errorf("%w: block length %d out of range", ErrBadBitmap, blen)
		}
		if c.Off+int(blen) > end {
			return TypeBitmap{}, fmt.Errorf("%w: block runs past rdlength", ErrBadBitmap)
		}
		block, err := c.ReadBytes(int(blen))
		if err != nil {
			return TypeBitmap{}, fmt.Errorf("%w: %v", ErrBadBitmap, err)
		}
		for i, byt := range block {
			for bit := 0; bit < 8; bit++ {
				if byt&(1<<(7-bit)) == 0 {
					continue
				}
				val := uint16(window)<<8 | uint16(i*8+bit)
				types = append(types, QType(val))
			}
		}
	}
	if c.Off != end {
		return TypeBitmap{}, fmt.Errorf("%w: trailing bytes in bitmap", ErrBadBitmap)
	}
	return TypeBitmap{Types: types}, nil
}
