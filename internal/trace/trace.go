// Package trace implements the iterative root-to-authority resolution walk
// that backs the --trace flag: start at a root server, follow referrals
// down the delegation tree using glue when it's offered and a recursive
// address lookup when it isn't, and stop once an authoritative answer for
// the original name and type is in hand.
package trace

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/time/rate"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/options"
	"github.com/duskcoil/dnsdig/internal/query"
	"github.com/duskcoil/dnsdig/internal/response"
	"github.com/duskcoil/dnsdig/internal/rootservers"
	"github.com/duskcoil/dnsdig/internal/stats"
	"github.com/duskcoil/dnsdig/internal/transport"
)

// ErrImpossibleToTrace is returned when a referral supplies neither glue
// nor a resolvable NS, leaving no candidate next-hop endpoint.
var ErrImpossibleToTrace = errors.New("trace: referral has no usable next hop")

// defaultMaxHops bounds the delegation chain length when the caller passes
// maxHops <= 0. No legitimate zone is delegated this deep; it exists to
// stop a pathological or poisoned referral loop from spinning forever.
const defaultMaxHops = 30

// Hop is one step of the trace: the endpoint queried and the response it
// returned.
type Hop struct {
	Server   string
	Response response.Response
}

// Result is the ordered sequence of hops a trace produced, ending either
// in a hop whose response answers the original query or in an error.
type Result struct {
	Hops []Hop
}

// Run walks the delegation tree for opts.Domain/opts.Types[0], starting
// from a randomly chosen root server address matching the query's address
// family preference. maxHops bounds the delegation chain length; <= 0 uses
// defaultMaxHops.
func Run(ctx context.Context, opts options.Options, maxHops int, recorder *stats.Recorder, resolveNS NSResolver) (Result, error) {
	if len(opts.Types) == 0 {
		return Result{}, fmt.Errorf("trace: no query type configured")
	}
	if maxHops <= 0 {
		maxHops = defaultMaxHops
	}
	qtype := opts.Types[0]
	opts.RecursionDesired = false

	limiter := rate.NewLimiter(rate.Limit(5), 1)

	hint := rootservers.Pick(rand.Intn(rootservers.Count()))
	endpoint := hint.IPv4.String()
	if opts.IPVersion == transport.IPv6 {
		endpoint = hint.IPv6.String()
	}

	var result Result
	for hop := 0; hop < maxHops; hop++ {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("trace: rate limiter: %w", err)
		}

		resp, err := queryOnce(ctx, opts, endpoint, qtype, recorder)
		if err != nil {
			return result, fmt.Errorf("trace: hop %d against %s: %w", hop, endpoint, err)
		}
		result.Hops = append(result.Hops, Hop{Server: endpoint, Response: resp})

		if answersQuery(resp, opts.Domain, qtype) {
			return result, nil
		}

		next, err := nextHop(ctx, opts, resp, resolveNS)
		if err != nil {
			return result, fmt.Errorf("trace: hop %d: %w", hop, err)
		}
		endpoint = next
	}
	return result, fmt.Errorf("trace: exceeded %d hops without resolving %s", maxHops, opts.Domain)
}

// NSResolver resolves a nameserver name to an address when a referral's
// additional section carries no glue for it, using the caller's normal
// recursive resolution path (RD=1 against the default resolver).
type NSResolver func(ctx context.Context, name dnsname.Name) (string, bool, error)

func answersQuery(resp response.Response, domain dnsname.Name, qtype dnsmsg.QType) bool {
	for _, rr := range resp.Reply.Answer {
		if rr.Name.Equal(domain) && rr.Type == qtype {
			return true
		}
	}
	return false
}

func nextHop(ctx context.Context, opts options.Options, resp response.Response, resolveNS NSResolver) (string, error) {
	glue := resp.GlueAddresses()
	nsName, hasNS := response.RandomNSRecord(resp.Reply.Authority)
	if hasNS {
		if addr, ok := response.RandomGlueRecord(glue, nsName); ok {
			return addr.String(), nil
		}
	}

	ns := filterNS(resp.Reply.Authority)
	if len(ns) == 0 {
		return "", ErrImpossibleToTrace
	}
	pick := ns[rand.Intn(len(ns))]
	if resolveNS == nil {
		return "", ErrImpossibleToTrace
	}
	addr, ok, err := resolveNS(ctx, pick)
	if err != nil {
		return "", fmt.Errorf("resolve nameserver %s: %w", pick, err)
	}
	if !ok {
		return "", ErrImpossibleToTrace
	}
	return addr, nil
}

func filterNS(authority []dnsmsg.ResourceRecord) []dnsname.Name {
	var out []dnsname.Name
	for _, rr := range authority {
		if rr.Type != dnsmsg.TypeNS {
			continue
		}
		if nr, ok := rr.RData.(dnsmsg.NameRData); ok {
			out = append(out, nr.Target)
		}
	}
	return out
}

func queryOnce(ctx context.Context, opts options.Options, server string, qtype dnsmsg.QType, recorder *stats.Recorder) (response.Response, error) {
	ep := opts.Endpoint()
	ep.Host = server

	dialCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tr, err := transport.Dial(dialCtx, transport.ModeUDP, ep, opts.Timeout)
	if err != nil {
		return response.Response{}, fmt.Errorf("dial %s: %w", server, err)
	}
	defer tr.Close()

	q := query.New(opts.Domain, qtype).WithFlag(dnsmsg.FlagRD, opts.RecursionDesired)

	queryCtx, queryCancel := context.WithTimeout(ctx, opts.Timeout)
	defer queryCancel()

	sent, err := q.Send(queryCtx, tr)
	if err != nil {
		return response.Response{}, err
	}
	if recorder != nil {
		recorder.RecordSent(transport.ModeUDP, sent)
	}

	raw, received, err := tr.Recv(queryCtx)
	if err != nil {
		return response.Response{}, fmt.Errorf("receive reply: %w", err)
	}
	if recorder != nil {
		recorder.RecordReceived(transport.ModeUDP, received)
	}

	built, err := q.Build()
	if err != nil {
		return response.Response{}, err
	}
	return response.Parse(built, raw)
}

// DefaultNSResolver builds an NSResolver that issues a recursive A query
// against server for whatever nameserver name the trace loop could not
// find glue for.
func DefaultNSResolver(server string, base options.Options, recorder *stats.Recorder) NSResolver {
	return func(ctx context.Context, name dnsname.Name) (string, bool, error) {
		nsOpts := base
		nsOpts.Domain = name
		nsOpts.Types = []dnsmsg.QType{dnsmsg.TypeA}
		nsOpts.RecursionDesired = true

		resp, err := queryOnce(ctx, nsOpts, server, dnsmsg.TypeA, recorder)
		if err != nil {
			return "", false, err
		}
		for _, rr := range resp.Reply.Answer {
			if ip := response.IPAddress(rr); ip != nil {
				return ip.String(), true, nil
			}
		}
		return "", false, nil
	}
}
