package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/transport"
)

func TestRecorderAccumulatesAcrossModes(t *testing.T) {
	r := NewRecorder()
	r.RecordSent(transport.ModeUDP, 32)
	r.RecordReceived(transport.ModeUDP, 256)
	r.RecordSent(transport.ModeTCP, 32)
	r.RecordReceived(transport.ModeTCP, 4096)

	assert.Equal(t, 64, r.TotalSent())
	assert.Equal(t, 4352, r.TotalReceived())
}

func TestRecorderWriteTextContainsCounters(t *testing.T) {
	r := NewRecorder()
	r.RecordSent(transport.ModeUDP, 32)
	r.RecordReceived(transport.ModeUDP, 256)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, "dnsdig_bytes_sent"))
	assert.True(t, strings.Contains(out, "dnsdig_bytes_received"))
	assert.True(t, strings.Contains(out, `transport="UDP"`))
}

func TestRecorderWriteTextEmpty(t *testing.T) {
	r := NewRecorder()
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.True(t, strings.Contains(buf.String(), "dnsdig_exchanges_total 0"))
}
