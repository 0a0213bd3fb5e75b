package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/duskcoil/dnsdig/internal/config"
	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/dnsname"
	"github.com/duskcoil/dnsdig/internal/exitcode"
	"github.com/duskcoil/dnsdig/internal/format"
	"github.com/duskcoil/dnsdig/internal/logging"
	"github.com/duskcoil/dnsdig/internal/options"
	"github.com/duskcoil/dnsdig/internal/orchestrator"
	"github.com/duskcoil/dnsdig/internal/stats"
	"github.com/duskcoil/dnsdig/internal/sysresolv"
	"github.com/duskcoil/dnsdig/internal/trace"
	"github.com/duskcoil/dnsdig/internal/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dnsdig: %v\n", err)
		os.Exit(exitcode.For(err))
	}
}

// cliFlags holds parsed command-line flag values.
type cliFlags struct {
	name        string
	types       string
	class       string
	server      string
	port        int
	mode        string
	timeout     time.Duration
	retries     int
	tcpOnly     bool
	ignoreTC    bool
	noRD        bool
	dnssecOK    bool
	ad          bool
	cd          bool
	ednsSize    int
	noEDNS      bool
	nsid        bool
	cookie      bool
	doHPath     string
	serverName  string
	insecureTLS bool
	ip4         bool
	ip6         bool
	alpn        bool
	httpsVer    string
	certPath    string
	traceFlag   bool
	short       bool
	jsonOut     bool
	statsFlag   bool
	configPath  string
	debug       bool
	jsonLogs    bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.name, "name", "", "Name to query (positional argument also accepted)")
	flag.StringVar(&f.types, "t", "A", "Comma-separated RR types to query (A, AAAA, MX, ANY, ...)")
	flag.StringVar(&f.class, "c", "IN", "Query class")
	flag.StringVar(&f.server, "server", "", "DNS server to query (default: system resolver)")
	flag.IntVar(&f.port, "port", 0, "Server port (default per transport mode)")
	flag.StringVar(&f.mode, "mode", "udp", "Transport: udp, tcp, dot, doh")
	flag.DurationVar(&f.timeout, "timeout", 5*time.Second, "Per-exchange timeout")
	flag.IntVar(&f.retries, "retries", 2, "Retry count (reserved for future use; each RRTYPE is still a single exchange)")
	flag.BoolVar(&f.tcpOnly, "tcp", false, "Force TCP for the first attempt")
	flag.BoolVar(&f.ignoreTC, "ignore-tc", false, "Do not retry over TCP when a UDP reply is truncated")
	flag.BoolVar(&f.noRD, "no-rd", false, "Clear the recursion-desired flag")
	flag.BoolVar(&f.dnssecOK, "dnssec", false, "Set the EDNS DNSSEC OK bit")
	flag.BoolVar(&f.ad, "ad", false, "Set the authentic-data flag")
	flag.BoolVar(&f.cd, "cd", false, "Set the checking-disabled flag")
	flag.IntVar(&f.ednsSize, "bufsize", 1232, "EDNS UDP payload size (0 disables EDNS unless another EDNS flag is set)")
	flag.BoolVar(&f.noEDNS, "no-edns", false, "Omit the EDNS OPT record entirely")
	flag.BoolVar(&f.nsid, "nsid", false, "Request the NSID EDNS option")
	flag.BoolVar(&f.cookie, "cookie", false, "Send a DNS COOKIE EDNS option")
	flag.StringVar(&f.doHPath, "doh-path", "/dns-query", "HTTPS path for DoH")
	flag.StringVar(&f.serverName, "tls-servername", "", "TLS server name for DoT/DoH (default: server)")
	flag.BoolVar(&f.insecureTLS, "insecure", false, "Skip TLS certificate verification for DoT/DoH")
	flag.BoolVar(&f.ip4, "ip4", false, "Restrict dialing to IPv4")
	flag.BoolVar(&f.ip6, "ip6", false, "Restrict dialing to IPv6")
	flag.BoolVar(&f.alpn, "alpn", false, "Offer the \"dot\" ALPN identifier during the DoT TLS handshake")
	flag.StringVar(&f.httpsVer, "https-version", "", "HTTP protocol version for DoH: http1, http2 (default: http2)")
	flag.StringVar(&f.certPath, "cert", "", "Path to a PEM file of trust anchors for DoT/DoH (default: system trust store)")
	flag.BoolVar(&f.traceFlag, "trace", false, "Perform an iterative trace from the root instead of a single recursive query")
	flag.BoolVar(&f.short, "short", false, "Print only answer RDATA, one per line")
	flag.BoolVar(&f.jsonOut, "json", false, "Print results as JSON")
	flag.BoolVar(&f.statsFlag, "stats", false, "Print byte/exchange counters in Prometheus text format to stderr")
	flag.StringVar(&f.configPath, "config", "", "Path to a YAML preferences file")
	flag.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&f.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	flag.Parse()

	if f.name == "" && flag.NArg() > 0 {
		f.name = flag.Arg(0)
	}
	return f
}

func run() error {
	f := parseFlags()

	cfg, err := config.Load(config.ResolveConfigPath(f.configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	}
	if f.debug {
		logCfg.Level = "DEBUG"
	}
	if f.jsonLogs {
		logCfg.Structured = true
		logCfg.StructuredFormat = "json"
	}
	logging.Configure(logCfg)

	opts, err := buildOptions(f, cfg)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	server, err := resolveServer(f.server, cfg)
	if err != nil {
		return err
	}

	var recorder *stats.Recorder
	if f.statsFlag {
		recorder = stats.NewRecorder()
	}

	ctx := context.Background()

	if f.traceFlag {
		resolved, err := trace.Run(ctx, opts, cfg.Trace.MaxHops, recorder, trace.DefaultNSResolver(server, opts, recorder))
		if err != nil {
			return err
		}
		if err := format.WriteTrace(os.Stdout, resolved); err != nil {
			return err
		}
	} else {
		result, err := orchestrator.Run(ctx, opts, server, recorder)
		if err != nil {
			return err
		}
		if err := writeResult(opts, result); err != nil {
			return err
		}
	}

	if recorder != nil {
		if err := recorder.WriteText(os.Stderr); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(opts options.Options, result orchestrator.Result) error {
	switch opts.Format {
	case options.FormatJSON:
		return format.WriteJSON(os.Stdout, result)
	case options.FormatShort:
		return format.WriteShort(os.Stdout, result)
	default:
		return format.WriteText(os.Stdout, result)
	}
}

func buildOptions(f cliFlags, cfg *config.Config) (options.Options, error) {
	if strings.TrimSpace(f.name) == "" {
		return options.Options{}, fmt.Errorf("a query name is required")
	}
	name, err := dnsname.NewName(f.name)
	if err != nil {
		return options.Options{}, fmt.Errorf("invalid name %q: %w", f.name, err)
	}

	types, err := parseTypes(f.types)
	if err != nil {
		return options.Options{}, err
	}

	class, ok := dnsmsg.ParseQClass(strings.ToUpper(f.class))
	if !ok {
		return options.Options{}, fmt.Errorf("unknown class %q", f.class)
	}

	mode, err := parseMode(f.mode)
	if err != nil {
		return options.Options{}, err
	}

	ipVersion, err := parseIPVersion(f.ip4, f.ip6)
	if err != nil {
		return options.Options{}, err
	}

	httpsVersion, err := parseHTTPSVersion(f.httpsVer)
	if err != nil {
		return options.Options{}, err
	}

	var cert []byte
	if f.certPath != "" {
		cert, err = os.ReadFile(f.certPath)
		if err != nil {
			return options.Options{}, fmt.Errorf("read cert %q: %w", f.certPath, err)
		}
	}

	opts := options.Default(name)
	opts.Types = types
	opts.Class = class
	opts.Server = f.server
	opts.Port = f.port
	opts.Mode = mode
	opts.Timeout = f.timeout
	opts.Retries = f.retries
	opts.TCPOnly = f.tcpOnly
	opts.IgnoreTC = f.ignoreTC || cfg.Defaults.IgnoreTC
	opts.RecursionDesired = !f.noRD && cfg.Defaults.RecursionDesired
	opts.DNSSECOK = f.dnssecOK || cfg.Defaults.DNSSECOK
	opts.AuthenticData = f.ad
	opts.CheckingDisabled = f.cd
	opts.EDNSUDPSize = uint16(f.ednsSize)
	opts.DisableEDNS = f.noEDNS
	opts.NSID = f.nsid
	opts.Cookie = f.cookie
	opts.DoHPath = f.doHPath
	opts.ServerName = f.serverName
	opts.InsecureSkipVerify = f.insecureTLS
	opts.IPVersion = ipVersion
	opts.ALPN = f.alpn
	opts.Cert = cert
	opts.HTTPSVersion = httpsVersion
	opts.Trace = f.traceFlag
	opts.ShortForm = f.short
	opts.Stats = f.statsFlag

	switch {
	case f.jsonOut:
		opts.Format = options.FormatJSON
	case f.short:
		opts.Format = options.FormatShort
	case cfg.Defaults.Format != "":
		opts.Format = options.OutputFormat(cfg.Defaults.Format)
	}

	return opts, nil
}

func parseTypes(raw string) ([]dnsmsg.QType, error) {
	var out []dnsmsg.QType
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		qt, ok := dnsmsg.ParseQType(part)
		if !ok {
			return nil, fmt.Errorf("unknown query type %q", part)
		}
		out = append(out, qt)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one query type is required")
	}
	return out, nil
}

func parseMode(s string) (transport.Mode, error) {
	switch strings.ToLower(s) {
	case "udp", "":
		return transport.ModeUDP, nil
	case "tcp":
		return transport.ModeTCP, nil
	case "dot":
		return transport.ModeDoT, nil
	case "doh":
		return transport.ModeDoH, nil
	default:
		return "", fmt.Errorf("unknown transport mode %q", s)
	}
}

func parseIPVersion(ip4, ip6 bool) (transport.IPVersion, error) {
	switch {
	case ip4 && ip6:
		return "", fmt.Errorf("--ip4 and --ip6 are mutually exclusive")
	case ip4:
		return transport.IPv4, nil
	case ip6:
		return transport.IPv6, nil
	default:
		return transport.IPAny, nil
	}
}

func parseHTTPSVersion(s string) (transport.HTTPSVersion, error) {
	switch strings.ToLower(s) {
	case "":
		return transport.HTTPSVersionAuto, nil
	case "http1":
		return transport.HTTPSVersionHTTP1, nil
	case "http2":
		return transport.HTTPSVersionHTTP2, nil
	default:
		return "", fmt.Errorf("unknown https version %q", s)
	}
}

func resolveServer(flagServer string, cfg *config.Config) (string, error) {
	if flagServer != "" {
		return flagServer, nil
	}
	if cfg.Resolver.Server != "" {
		return cfg.Resolver.Server, nil
	}
	sysCfg, err := sysresolv.Default()
	if err != nil {
		return "", fmt.Errorf("%w: %v", exitcode.ErrResolverDiscovery, err)
	}
	ns, ok := sysCfg.FirstNameserver()
	if !ok {
		return "", fmt.Errorf("%w: no nameserver configured in %s", exitcode.ErrResolverDiscovery, sysresolv.DefaultResolvConfPath)
	}
	return ns, nil
}
