package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFramedRoundTrip(t *testing.T) {
	msg := []byte("a fake dns message payload")
	var buf bytes.Buffer

	n, err := writeFramed(&buf, msg)
	require.NoError(t, err)
	assert.Equal(t, len(msg)+2, n)

	got, consumed, err := readFramed(&buf)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, len(msg)+2, consumed)
}

func TestReadFramedRejectsZeroLength(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x00})
	_, _, err := readFramed(buf)
	assert.Error(t, err)
}

func TestReadFramedRejectsTruncatedBody(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0x00, 0x05, 'a', 'b'})
	_, _, err := readFramed(buf)
	assert.Error(t, err)
}
