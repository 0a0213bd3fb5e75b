package dnsmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/wire"
)

func TestTypeBitmapRoundTrip(t *testing.T) {
	types := []QType{TypeA, TypeNS, TypeSOA, TypeMX, TypeTXT, TypeAAAA, TypeRRSIG, TypeNSEC, TypeDNSKEY}

	b := wire.NewBuilder(32)
	EncodeTypeBitmap(b, types)

	c := wire.NewCursor(b.Bytes())
	got, err := DecodeTypeBitmap(c, b.Len())
	require.NoError(t, err)

	for _, qt := range types {
		assert.True(t, got.Has(qt), "expected %s present", qt)
	}
	assert.False(t, got.Has(TypeCAA))
}

func TestTypeBitmapSpansMultipleWindows(t *testing.T) {
	// TypeURI (256) falls in window 1; TypeA (1) falls in window 0.
	types := []QType{TypeA, TypeURI, TypeCAA}
	b := wire.NewBuilder(32)
	EncodeTypeBitmap(b, types)

	c := wire.NewCursor(b.Bytes())
	got, err := DecodeTypeBitmap(c, b.Len())
	require.NoError(t, err)
	assert.True(t, got.Has(TypeA))
	assert.True(t, got.Has(TypeURI))
	assert.True(t, got.Has(TypeCAA))
}

func TestDecodeTypeBitmapRejectsBadBlockLength(t *testing.T) {
	// window 0, block length 33 (> 32 max)
	msg := []byte{0x00, 33}
	c := wire.NewCursor(msg)
	_, err := DecodeTypeBitmap(c, len(msg))
	assert.ErrorIs(t, err, ErrBadBitmap)
}
