package format

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/orchestrator"
	"github.com/duskcoil/dnsdig/internal/response"
	"github.com/duskcoil/dnsdig/internal/transport"
)

func mustName(t *testing.T, s string) dnsname.Name {
	t.Helper()
	n, err := dnsname.NewName(s)
	require.NoError(t, err)
	return n
}

func sampleResult(t *testing.T) orchestrator.Result {
	name := mustName(t, "example.com.")
	query := dnsmsg.Packet{
		Header:    dnsmsg.NewQueryHeader(1234, dnsmsg.OpcodeQuery, true),
		Questions: []dnsmsg.Question{{Name: name, QType: dnsmsg.TypeA, Class: dnsmsg.ClassIN}},
	}
	reply := dnsmsg.Packet{
		Header:    dnsmsg.NewQueryHeader(1234, dnsmsg.OpcodeQuery, true).WithFlag(dnsmsg.FlagQR, true),
		Questions: query.Questions,
		Answer: []dnsmsg.ResourceRecord{
			{Name: name, Type: dnsmsg.TypeA, Class: dnsmsg.ClassIN, TTL: 300,
				RData: dnsmsg.ARecord{Addr: net.ParseIP("93.184.216.34")}},
		},
	}
	return orchestrator.Result{
		Exchanges: []orchestrator.Exchange{
			{
				Query:    query,
				Response: response.Response{Query: query, Reply: reply, RawSize: 48},
				Mode:     transport.ModeUDP,
				Duration: 12 * time.Millisecond,
			},
		},
	}
}

func TestWriteTextIncludesSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleResult(t)))
	out := buf.String()
	assert.True(t, strings.Contains(out, "QUESTION SECTION"))
	assert.True(t, strings.Contains(out, "ANSWER SECTION"))
	assert.True(t, strings.Contains(out, "93.184.216.34"))
}

func TestWriteShortPrintsOnlyRData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteShort(&buf, sampleResult(t)))
	assert.Equal(t, "93.184.216.34\n", buf.String())
}

func TestWriteJSONIsValidAndComplete(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult(t)))
	out := buf.String()
	assert.True(t, strings.Contains(out, `"rdata": "93.184.216.34"`))
	assert.True(t, strings.Contains(out, `"mode": "UDP"`))
}
