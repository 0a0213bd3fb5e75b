package dnsmsg

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/wire"
)

func mustName(t *testing.T, s string) dnsname.Name {
	t.Helper()
	n, err := dnsname.NewName(s)
	require.NoError(t, err)
	return n
}

func roundTripRR(t *testing.T, rr ResourceRecord) ResourceRecord {
	t.Helper()
	b := wire.NewBuilder(64)
	require.NoError(t, rr.Marshal(b))

	msg := b.Bytes()
	off := 0
	got, err := ParseResourceRecord(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, len(msg), off)
	return got
}

func TestARecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeA, Class: ClassIN, TTL: 300,
		RData: ARecord{Addr: net.ParseIP("93.184.216.34")},
	}
	got := roundTripRR(t, rr)
	a, ok := got.RData.(ARecord)
	require.True(t, ok)
	assert.Equal(t, "93.184.216.34", a.Addr.String())
}

func TestAAAARecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeAAAA, Class: ClassIN, TTL: 300,
		RData: AAAARecord{Addr: net.ParseIP("2606:2800:220:1:248:1893:25c8:1946")},
	}
	got := roundTripRR(t, rr)
	aaaa, ok := got.RData.(AAAARecord)
	require.True(t, ok)
	assert.Equal(t, "2606:2800:220:1:248:1893:25c8:1946", aaaa.Addr.String())
}

func TestSOARecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeSOA, Class: ClassIN, TTL: 3600,
		RData: SOARData{
			MName: mustName(t, "ns1.example.com"), RName: mustName(t, "admin.example.com"),
			Serial: 2024010100, Refresh: 7200, Retry: 3600, Expire: 1209600, Minimum: 300,
		},
	}
	got := roundTripRR(t, rr)
	soa, ok := got.RData.(SOARData)
	require.True(t, ok)
	assert.Equal(t, uint32(2024010100), soa.Serial)
	assert.True(t, mustName(t, "ns1.example.com").Equal(soa.MName))
}

func TestMXRecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeMX, Class: ClassIN, TTL: 3600,
		RData: PreferenceRData{RRType: TypeMX, Preference: 10, Exchange: mustName(t, "mail.example.com")},
	}
	got := roundTripRR(t, rr)
	mx, ok := got.RData.(PreferenceRData)
	require.True(t, ok)
	assert.Equal(t, uint16(10), mx.Preference)
}

func TestTXTRecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeTXT, Class: ClassIN, TTL: 300,
		RData: TXTRData{Strings: []string{"v=spf1 -all", "second chunk"}},
	}
	got := roundTripRR(t, rr)
	txt, ok := got.RData.(TXTRData)
	require.True(t, ok)
	assert.Equal(t, []string{"v=spf1 -all", "second chunk"}, txt.Strings)
}

func TestDSRecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeDS, Class: ClassIN, TTL: 3600,
		RData: DSRData{RRType: TypeDS, KeyTag: 12345, Algorithm: AlgRSASHA256, DigestType: 2, Digest: []byte{1, 2, 3, 4}},
	}
	got := roundTripRR(t, rr)
	ds, ok := got.RData.(DSRData)
	require.True(t, ok)
	assert.Equal(t, uint16(12345), ds.KeyTag)
	assert.Equal(t, []byte{1, 2, 3, 4}, ds.Digest)
}

func TestSVCBRecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeHTTPS, Class: ClassIN, TTL: 300,
		RData: SVCBRData{
			RRType: TypeHTTPS, Priority: 1, Target: dnsname.Root,
			Params: []SVCBParam{{Key: SVCBKeyALPN, Value: []byte("h2")}, {Key: SVCBKeyPort, Value: []byte{0x01, 0xBB}}},
		},
	}
	got := roundTripRR(t, rr)
	svcb, ok := got.RData.(SVCBRData)
	require.True(t, ok)
	assert.Len(t, svcb.Params, 2)
	assert.Equal(t, SVCBKeyALPN, svcb.Params[0].Key)
}

func TestNSECRecordRoundTrip(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: TypeNSEC, Class: ClassIN, TTL: 3600,
		RData: NSECRData{
			NextDomain: mustName(t, "www.example.com"),
			Types:      TypeBitmap{Types: []QType{TypeA, TypeNS, TypeSOA, TypeRRSIG}},
		},
	}
	got := roundTripRR(t, rr)
	nsec, ok := got.RData.(NSECRData)
	require.True(t, ok)
	assert.True(t, nsec.Types.Has(TypeA))
	assert.True(t, nsec.Types.Has(TypeRRSIG))
	assert.False(t, nsec.Types.Has(TypeMX))
}

func TestUnknownRecordFallsBack(t *testing.T) {
	rr := ResourceRecord{
		Name: mustName(t, "example.com"), Type: QType(65280), Class: ClassIN, TTL: 10,
		RData: UnknownRData{RRType: QType(65280), Raw: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
	}
	got := roundTripRR(t, rr)
	unk, ok := got.RData.(UnknownRData)
	require.True(t, ok)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, unk.Raw)
	assert.Equal(t, "TYPE65280", got.Type.String())
}

func TestParseResourceRecordRejectsRDLengthOverrun(t *testing.T) {
	// A record claiming RDLENGTH 4 but with only 2 bytes following.
	b := wire.NewBuilder(32)
	nameBytes, _ := dnsname.Encode(mustName(t, "example.com"))
	b.WriteBytes(nameBytes)
	b.WriteUint16(uint16(TypeA))
	b.WriteUint16(uint16(ClassIN))
	b.WriteUint32(300)
	b.WriteUint16(4)
	b.WriteBytes([]byte{1, 2})

	off := 0
	_, err := ParseResourceRecord(b.Bytes(), &off)
	assert.ErrorIs(t, err, ErrRDLengthOverrun)
}
