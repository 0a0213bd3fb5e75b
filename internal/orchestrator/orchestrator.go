// Package orchestrator drives the build -> send -> recv -> validate ->
// (TCP fallback) sequence for every RR type an invocation asked for. Each
// exchange is run to completion before the next starts; no goroutines are
// spawned across exchanges, so a slow or stuck server cannot race its
// neighbor's accounting.
package orchestrator

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/options"
	"github.com/duskcoil/dnsdig/internal/query"
	"github.com/duskcoil/dnsdig/internal/response"
	"github.com/duskcoil/dnsdig/internal/stats"
	"github.com/duskcoil/dnsdig/internal/transport"
)

// Exchange is one query/response pair, plus the transport it actually
// traveled over (which may differ from the requested mode after a TC
// fallback) and how long the round trip took.
type Exchange struct {
	Query    dnsmsg.Packet
	Response response.Response
	Mode     transport.Mode
	Duration time.Duration
}

// Result collects every exchange an invocation produced, one per requested
// RR type, in request order.
type Result struct {
	Exchanges []Exchange
}

// Run performs one exchange per opts.Types in order, against the server
// named by opts (or the caller-resolved fallback address passed in server).
func Run(ctx context.Context, opts options.Options, server string, recorder *stats.Recorder) (Result, error) {
	var result Result
	for _, qtype := range opts.Types {
		ex, err := runOne(ctx, opts, server, qtype, recorder)
		if err != nil {
			return result, fmt.Errorf("query %s %s: %w", opts.Domain, qtype, err)
		}
		result.Exchanges = append(result.Exchanges, ex)
	}
	return result, nil
}

func runOne(ctx context.Context, opts options.Options, server string, qtype dnsmsg.QType, recorder *stats.Recorder) (Exchange, error) {
	mode := opts.EffectiveMode()
	start := time.Now()

	ex, err := exchangeOnce(ctx, opts, server, qtype, mode, recorder)
	if err != nil {
		return Exchange{}, err
	}

	if mode == transport.ModeUDP && !opts.IgnoreTC && ex.Response.IsTruncated() {
		fallback, err := exchangeOnce(ctx, opts, server, qtype, transport.ModeTCP, recorder)
		if err != nil {
			return Exchange{}, fmt.Errorf("tcp fallback after truncated udp reply: %w", err)
		}
		fallback.Duration = time.Since(start)
		return fallback, nil
	}

	ex.Duration = time.Since(start)
	return ex, nil
}

func exchangeOnce(ctx context.Context, opts options.Options, server string, qtype dnsmsg.QType, mode transport.Mode, recorder *stats.Recorder) (Exchange, error) {
	ep := opts.Endpoint()
	ep.Host = server

	dialCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tr, err := transport.Dial(dialCtx, mode, ep, opts.Timeout)
	if err != nil {
		return Exchange{}, fmt.Errorf("dial %s: %w", mode, err)
	}
	defer tr.Close()

	q := query.New(opts.Domain, qtype).
		WithClass(opts.Class).
		WithFlag(dnsmsg.FlagRD, opts.RecursionDesired).
		WithFlag(dnsmsg.FlagAD, opts.AuthenticData).
		WithFlag(dnsmsg.FlagCD, opts.CheckingDisabled)

	if !opts.DisableEDNS && (opts.EDNSUDPSize != 0 || opts.DNSSECOK || opts.NSID || opts.Cookie) {
		var ednsOpts []dnsmsg.EDNSOption
		if opts.NSID {
			ednsOpts = append(ednsOpts, dnsmsg.NSIDOption(nil))
		}
		if opts.Cookie {
			ednsOpts = append(ednsOpts, dnsmsg.CookieOption(randomClientCookie(), nil))
		}
		q = q.WithEDNS(opts.EDNSUDPSize, opts.DNSSECOK, ednsOpts...)
	}

	queryCtx, queryCancel := context.WithTimeout(ctx, opts.Timeout)
	defer queryCancel()

	sent, err := q.Send(queryCtx, tr)
	if err != nil {
		return Exchange{}, err
	}
	if recorder != nil {
		recorder.RecordSent(mode, sent)
	}

	raw, received, err := tr.Recv(queryCtx)
	if err != nil {
		return Exchange{}, fmt.Errorf("receive reply: %w", err)
	}
	if recorder != nil {
		recorder.RecordReceived(mode, received)
	}

	built, err := q.Build()
	if err != nil {
		return Exchange{}, err
	}
	resp, err := response.Parse(built, raw)
	if err != nil {
		return Exchange{}, err
	}

	return Exchange{Query: built, Response: resp, Mode: mode}, nil
}

func randomClientCookie() []byte {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return b
}

// ErrNoServer names the case of an invocation with no usable server. Run
// does not return it; cmd/dnsdig reports a failed system-resolver fallback
// with exitcode.ErrResolverDiscovery instead.
var ErrNoServer = errors.New("orchestrator: no DNS server available")
