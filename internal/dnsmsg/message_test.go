package dnsmsg

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/wire"
)

func TestPacketRoundTrip(t *testing.T) {
	name := mustName(t, "example.com")
	p := Packet{
		Header:    NewQueryHeader(0xABCD, OpcodeQuery, true).WithFlag(FlagQR, true).WithFlag(FlagRA, true),
		Questions: []Question{NewQuestion(name, TypeA)},
		Answer: []ResourceRecord{
			{Name: name, Type: TypeA, Class: ClassIN, TTL: 60, RData: ARecord{Addr: net.ParseIP("93.184.216.34")}},
		},
		Additional: []ResourceRecord{
			NewOPTRecord(4096, true, nil),
		},
	}

	raw, err := p.Marshal()
	require.NoError(t, err)

	got, err := ParsePacket(raw)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xABCD), got.Header.ID)
	assert.True(t, got.Header.QR())
	assert.Len(t, got.Questions, 1)
	assert.Len(t, got.Answer, 1)
	assert.Len(t, got.Additional, 1)

	opt, ok := got.OPT()
	require.True(t, ok)
	meta, err := ParseEDNSMeta(opt)
	require.NoError(t, err)
	assert.Equal(t, uint16(4096), meta.UDPSize)
	assert.True(t, meta.DNSSECOK)
}

func TestPacketRepeatsOwnerNameAcrossSections(t *testing.T) {
	name := mustName(t, "example.com")
	p := Packet{
		Header:    NewQueryHeader(1, OpcodeQuery, true).WithFlag(FlagQR, true),
		Questions: []Question{NewQuestion(name, TypeNS)},
		Answer: []ResourceRecord{
			{Name: name, Type: TypeNS, Class: ClassIN, TTL: 3600, RData: NameRData{RRType: TypeNS, Target: mustName(t, "ns1.example.com")}},
		},
	}
	raw, err := p.Marshal()
	require.NoError(t, err)

	got, err := ParsePacket(raw)
	require.NoError(t, err)
	assert.True(t, name.Equal(got.Answer[0].Name))
}

func TestParsePacketTruncatedQuestion(t *testing.T) {
	h := NewQueryHeader(1, OpcodeQuery, true).WithFlag(FlagQR, true)
	h.QDCount = 1
	b := wire.NewBuilder(12)
	h.Marshal(b)
	// no question data follows
	_, err := ParsePacket(b.Bytes())
	assert.ErrorIs(t, err, ErrTruncatedMessage)
}

func TestParsePacketRejectsUnknownOpcode(t *testing.T) {
	h := NewQueryHeader(1, OpcodeQuery, true).WithFlag(FlagQR, true)
	h.Flags = (h.Flags &^ MaskOpcode) | (uint16(9) << opcodeShift & MaskOpcode)
	b := wire.NewBuilder(12)
	h.Marshal(b)
	_, err := ParsePacket(b.Bytes())
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestParsePacketRejectsQueryBitSetInsteadOfResponse(t *testing.T) {
	h := NewQueryHeader(1, OpcodeQuery, true)
	b := wire.NewBuilder(12)
	h.Marshal(b)
	_, err := ParsePacket(b.Bytes())
	assert.ErrorIs(t, err, ErrUnknownPacketType)
}
