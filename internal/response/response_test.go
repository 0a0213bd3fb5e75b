package response

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
)

func mustName(t *testing.T, s string) dnsname.Name {
	t.Helper()
	n, err := dnsname.NewName(s)
	require.NoError(t, err)
	return n
}

func buildReply(t *testing.T, id uint16, question dnsmsg.Question, answer []dnsmsg.ResourceRecord) []byte {
	t.Helper()
	p := dnsmsg.Packet{
		Header:    dnsmsg.NewQueryHeader(id, dnsmsg.OpcodeQuery, true).WithFlag(dnsmsg.FlagQR, true),
		Questions: []dnsmsg.Question{question},
		Answer:    answer,
	}
	raw, err := p.Marshal()
	require.NoError(t, err)
	return raw
}

func TestParseAcceptsMatchingReply(t *testing.T) {
	name := mustName(t, "example.com.")
	question := dnsmsg.Question{Name: name, QType: dnsmsg.TypeA, Class: dnsmsg.ClassIN}
	query := dnsmsg.Packet{
		Header:    dnsmsg.NewQueryHeader(42, dnsmsg.OpcodeQuery, true),
		Questions: []dnsmsg.Question{question},
	}
	raw := buildReply(t, 42, question, []dnsmsg.ResourceRecord{
		{Name: name, Type: dnsmsg.TypeA, Class: dnsmsg.ClassIN, TTL: 60, RData: dnsmsg.ARecord{Addr: net.ParseIP("1.2.3.4")}},
	})

	resp, err := Parse(query, raw)
	require.NoError(t, err)
	assert.Nil(t, resp.Mismatch)
	assert.Len(t, resp.Reply.Answer, 1)
}

func TestParseFlagsIDMismatchWithoutAborting(t *testing.T) {
	name := mustName(t, "example.com.")
	question := dnsmsg.Question{Name: name, QType: dnsmsg.TypeA, Class: dnsmsg.ClassIN}
	query := dnsmsg.Packet{
		Header:    dnsmsg.NewQueryHeader(42, dnsmsg.OpcodeQuery, true),
		Questions: []dnsmsg.Question{question},
	}
	raw := buildReply(t, 99, question, nil)

	resp, err := Parse(query, raw)
	require.NoError(t, err)
	require.Error(t, resp.Mismatch)
	assert.ErrorIs(t, resp.Mismatch, ErrIDMismatch)
}

func TestParseFlagsNameMismatchWithoutAborting(t *testing.T) {
	name := mustName(t, "example.com.")
	other := mustName(t, "example.net.")
	query := dnsmsg.Packet{
		Header:    dnsmsg.NewQueryHeader(7, dnsmsg.OpcodeQuery, true),
		Questions: []dnsmsg.Question{{Name: name, QType: dnsmsg.TypeA, Class: dnsmsg.ClassIN}},
	}
	raw := buildReply(t, 7, dnsmsg.Question{Name: other, QType: dnsmsg.TypeA, Class: dnsmsg.ClassIN}, nil)

	resp, err := Parse(query, raw)
	require.NoError(t, err)
	require.Error(t, resp.Mismatch)
	assert.ErrorIs(t, resp.Mismatch, ErrNameMismatch)
}

func TestIsTruncatedReadsHeaderTC(t *testing.T) {
	r := Response{Reply: dnsmsg.Packet{Header: dnsmsg.Header{}.WithFlag(dnsmsg.FlagTC, true)}}
	assert.True(t, r.IsTruncated())
}
