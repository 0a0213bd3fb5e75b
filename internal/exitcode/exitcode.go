// Package exitcode maps a top-level run() error to the process exit code
// spec.md §7 assigns its category, the way cmd/hydradns/main.go turns a
// single run() error into os.Exit(1) but split by error family instead of
// collapsing everything to one code.
package exitcode

import (
	"errors"
	"os"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/transport"
)

const (
	OK               = 0
	IOError          = 1
	BufferError      = 2
	NetworkError     = 3
	TimeoutError     = 4
	TLSError         = 5
	HTTPSError       = 6
	DNSError         = 7
	IPParseError     = 8
	LoggerError      = 9
	ResolverDiscover = 10
)

// ErrIPParse marks a server address that is not a valid IP literal; For
// maps it to IPParseError. No code path in dnsdig returns it: server
// addresses are handed to the transports without being parsed as IPs.
var ErrIPParse = errors.New("exitcode: could not parse IP address")

// ErrLoggerInit marks a failure to set up structured logging; For maps it
// to LoggerError. logging.Configure cannot fail, so nothing returns it.
var ErrLoggerInit = errors.New("exitcode: logger initialization failed")

// ErrResolverDiscovery is wrapped when no server was given and the system
// resolver configuration could not be read or contained no nameserver.
var ErrResolverDiscovery = errors.New("exitcode: could not determine a default resolver")

// For classifies err into one of the codes above. Order matters: more
// specific sentinels are checked before generic fallbacks.
func For(err error) int {
	if err == nil {
		return OK
	}

	switch {
	case errors.Is(err, ErrResolverDiscovery):
		return ResolverDiscover
	case errors.Is(err, ErrLoggerInit):
		return LoggerError
	case errors.Is(err, ErrIPParse):
		return IPParseError
	case errors.Is(err, transport.ErrHTTPClient):
		return HTTPSError
	case errors.Is(err, transport.ErrTLSHandshake):
		return TLSError
	case errors.Is(err, transport.ErrTimeout):
		return TimeoutError
	case errors.Is(err, transport.ErrBind):
		return BufferError
	case errors.Is(err, transport.ErrConnect):
		return NetworkError
	case errors.Is(err, dnsmsg.ErrProtocol),
		errors.Is(err, dnsmsg.ErrTruncatedMessage),
		errors.Is(err, dnsmsg.ErrRDLengthOverrun),
		errors.Is(err, dnsmsg.ErrBadBitmap),
		errors.Is(err, dnsmsg.ErrUnknownOpcode),
		errors.Is(err, dnsmsg.ErrUnknownPacketType),
		errors.Is(err, dnsname.ErrCantCreateDomainName),
		errors.Is(err, dnsname.ErrDomainLabelTooLong),
		errors.Is(err, dnsname.ErrDomainNameTooLong),
		errors.Is(err, dnsname.ErrEmptyDomainName),
		errors.Is(err, dnsname.ErrCompressionLoop):
		return DNSError
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return IOError
	default:
		return IOError
	}
}
