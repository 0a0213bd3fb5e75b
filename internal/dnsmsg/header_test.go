package dnsmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/wire"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := NewQueryHeader(0x1234, OpcodeQuery, true)
	h = h.WithFlag(FlagAD, true)

	b := wire.NewBuilder(12)
	h.Marshal(b)
	require.Equal(t, 12, b.Len())

	c := wire.NewCursor(b.Bytes())
	got, err := ParseHeader(c)
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.True(t, got.RD())
	assert.True(t, got.AD())
	assert.False(t, got.QR())
	assert.Equal(t, OpcodeQuery, got.Opcode())
}

func TestHeaderRCodeRoundTrip(t *testing.T) {
	h := NewQueryHeader(1, OpcodeQuery, false)
	h = h.SetRCode(RCodeNXDomain)
	assert.Equal(t, RCodeNXDomain, h.RCode())
}

func TestParseHeaderRejectsUnknownOpcode(t *testing.T) {
	h := NewQueryHeader(1, OpcodeQuery, true)
	h.Flags = (h.Flags &^ MaskOpcode) | (uint16(3) << opcodeShift & MaskOpcode)

	b := wire.NewBuilder(12)
	h.Marshal(b)

	_, err := ParseHeader(wire.NewCursor(b.Bytes()))
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "QUERY", OpcodeQuery.String())
	assert.Equal(t, "OPCODE3", Opcode(3).String())
}

func TestRCodeString(t *testing.T) {
	assert.Equal(t, "NXDOMAIN", RCodeNXDomain.String())
	assert.Equal(t, "RCODE20", RCode(20).String())
}
