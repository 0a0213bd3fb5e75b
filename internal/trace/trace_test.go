package trace

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/options"
	"github.com/duskcoil/dnsdig/internal/response"
)

func mustName(t *testing.T, s string) dnsname.Name {
	t.Helper()
	n, err := dnsname.NewName(s)
	require.NoError(t, err)
	return n
}

func TestAnswersQueryMatchesNameAndType(t *testing.T) {
	name := mustName(t, "www.netmeister.org.")
	resp := response.Response{
		Reply: dnsmsg.Packet{
			Answer: []dnsmsg.ResourceRecord{
				{Name: name, Type: dnsmsg.TypeA},
			},
		},
	}
	assert.True(t, answersQuery(resp, name, dnsmsg.TypeA))
	assert.False(t, answersQuery(resp, name, dnsmsg.TypeAAAA))
}

func TestNextHopPrefersGlue(t *testing.T) {
	org := mustName(t, "org.")
	ns := mustName(t, "a0.org.afilias-nst.info.")

	resp := response.Response{
		Reply: dnsmsg.Packet{
			Authority: []dnsmsg.ResourceRecord{
				{Name: org, Type: dnsmsg.TypeNS, RData: dnsmsg.NameRData{RRType: dnsmsg.TypeNS, Target: ns}},
			},
			Additional: []dnsmsg.ResourceRecord{
				{Name: ns, Type: dnsmsg.TypeA, RData: dnsmsg.ARecord{Addr: net.ParseIP("199.19.56.1")}},
			},
		},
	}

	addr, err := nextHop(context.Background(), options.Options{}, resp, nil)
	require.NoError(t, err)
	assert.Equal(t, "199.19.56.1", addr)
}

func TestNextHopFallsBackToNSResolverWhenNoGlue(t *testing.T) {
	org := mustName(t, "org.")
	ns := mustName(t, "a0.org.afilias-nst.info.")

	resp := response.Response{
		Reply: dnsmsg.Packet{
			Authority: []dnsmsg.ResourceRecord{
				{Name: org, Type: dnsmsg.TypeNS, RData: dnsmsg.NameRData{RRType: dnsmsg.TypeNS, Target: ns}},
			},
		},
	}

	resolver := func(ctx context.Context, name dnsname.Name) (string, bool, error) {
		assert.True(t, name.Equal(ns))
		return "199.19.56.1", true, nil
	}

	addr, err := nextHop(context.Background(), options.Options{}, resp, resolver)
	require.NoError(t, err)
	assert.Equal(t, "199.19.56.1", addr)
}

func TestNextHopFailsWithoutGlueOrResolver(t *testing.T) {
	org := mustName(t, "org.")
	ns := mustName(t, "a0.org.afilias-nst.info.")

	resp := response.Response{
		Reply: dnsmsg.Packet{
			Authority: []dnsmsg.ResourceRecord{
				{Name: org, Type: dnsmsg.TypeNS, RData: dnsmsg.NameRData{RRType: dnsmsg.TypeNS, Target: ns}},
			},
		},
	}

	_, err := nextHop(context.Background(), options.Options{}, resp, nil)
	assert.ErrorIs(t, err, ErrImpossibleToTrace)
}

func TestNextHopFailsWithNoAuthority(t *testing.T) {
	_, err := nextHop(context.Background(), options.Options{}, response.Response{}, nil)
	assert.ErrorIs(t, err, ErrImpossibleToTrace)
}

func TestRunRejectsMissingQueryType(t *testing.T) {
	opts := options.Options{}
	_, err := Run(context.Background(), opts, 5, nil, nil)
	require.Error(t, err)
}
