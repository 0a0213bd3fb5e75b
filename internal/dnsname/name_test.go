package dnsname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNameAndString(t *testing.T) {
	n, err := NewName("www.example.com")
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", n.String())

	root, err := NewName(".")
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.Equal(t, ".", root.String())
}

func TestNewNameRejectsEmpty(t *testing.T) {
	_, err := NewName("")
	assert.ErrorIs(t, err, ErrEmptyDomainName)
}

func TestNewNameRejectsLongLabel(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewName(string(long) + ".com")
	assert.ErrorIs(t, err, ErrDomainLabelTooLong)
}

func TestNewNameAccepts63ByteLabel(t *testing.T) {
	label := make([]byte, 63)
	for i := range label {
		label[i] = 'a'
	}
	_, err := NewName(string(label) + ".com")
	assert.NoError(t, err)
}

func TestNewNameRejectsOverlongName(t *testing.T) {
	label := make([]byte, 63)
	for i := range label {
		label[i] = 'a'
	}
	s := ""
	for i := 0; i < 5; i++ {
		s += string(label) + "."
	}
	_, err := NewName(s + "com")
	assert.ErrorIs(t, err, ErrDomainNameTooLong)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	n, err := NewName("www.example.com")
	require.NoError(t, err)

	b, err := Encode(n)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}, b)

	off := 0
	decoded, err := Decode(b, &off)
	require.NoError(t, err)
	assert.Equal(t, len(b), off)
	assert.True(t, n.Equal(decoded))
}

func TestDecodeFollowsCompressionPointer(t *testing.T) {
	// message: [www.example.com][0] then a second name "mail" pointing back at offset 0
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	msg = append(msg, 4, 'm', 'a', 'i', 'l', 0xC0, 0x00)

	off := len(msg) - 7
	n, err := Decode(msg, &off)
	require.NoError(t, err)
	assert.Equal(t, "mail.www.example.com.", n.String())
	assert.Equal(t, len(msg), off)
}

func TestDecodeRejectsPointerLoop(t *testing.T) {
	// byte 0 points to itself
	msg := []byte{0xC0, 0x00}
	off := 0
	_, err := Decode(msg, &off)
	assert.ErrorIs(t, err, ErrCompressionLoop)
}

func TestDecodeRejectsOutOfBounds(t *testing.T) {
	msg := []byte{5, 'a', 'b'}
	off := 0
	_, err := Decode(msg, &off)
	assert.ErrorIs(t, err, ErrCantCreateDomainName)
}

func TestEqualIsCaseInsensitive(t *testing.T) {
	a, err := NewName("WWW.Example.COM")
	require.NoError(t, err)
	b, err := NewName("www.example.com")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestPunycodeConversion(t *testing.T) {
	n, err := NewName("münchen.de")
	require.NoError(t, err)
	assert.Equal(t, "xn--mnchen-3ya.de.", n.String())
	assert.Equal(t, "münchen.de.", n.Unicode())
}
