package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/transport"
)

func mustName(t *testing.T, s string) dnsname.Name {
	t.Helper()
	n, err := dnsname.NewName(s)
	require.NoError(t, err)
	return n
}

func TestEndpointCarriesTLSAndIPVersionFields(t *testing.T) {
	opts := Default(mustName(t, "example.com."))
	opts.IPVersion = transport.IPv6
	opts.ALPN = true
	opts.Cert = []byte("pem bytes")
	opts.HTTPSVersion = transport.HTTPSVersionHTTP1
	opts.EDNSUDPSize = 4096

	ep := opts.Endpoint()
	assert.Equal(t, transport.IPv6, ep.IPVersion)
	assert.True(t, ep.ALPN)
	assert.Equal(t, []byte("pem bytes"), ep.Cert)
	assert.Equal(t, transport.HTTPSVersionHTTP1, ep.HTTPSVersion)
	assert.Equal(t, 4096, ep.RecvSize)
}

func TestValidateRejectsZeroTypesAndBadTimeout(t *testing.T) {
	opts := Default(mustName(t, "example.com."))
	opts.Types = nil
	assert.Error(t, opts.Validate())

	opts = Default(mustName(t, "example.com."))
	opts.Timeout = 0
	assert.Error(t, opts.Validate())
}
