package exitcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/transport"
)

func TestForClassifiesKnownFamilies(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, OK},
		{"resolver discovery", fmt.Errorf("wrap: %w", ErrResolverDiscovery), ResolverDiscover},
		{"ip parse", fmt.Errorf("wrap: %w", ErrIPParse), IPParseError},
		{"http client", fmt.Errorf("wrap: %w", transport.ErrHTTPClient), HTTPSError},
		{"tls handshake", fmt.Errorf("wrap: %w", transport.ErrTLSHandshake), TLSError},
		{"timeout", fmt.Errorf("wrap: %w", transport.ErrTimeout), TimeoutError},
		{"bind", fmt.Errorf("wrap: %w", transport.ErrBind), BufferError},
		{"connect", fmt.Errorf("wrap: %w", transport.ErrConnect), NetworkError},
		{"truncated message", fmt.Errorf("wrap: %w", dnsmsg.ErrTruncatedMessage), DNSError},
		{"unclassified", fmt.Errorf("some other failure"), IOError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, For(tc.err))
		})
	}
}
