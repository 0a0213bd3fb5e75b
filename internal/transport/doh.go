package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// dohRoundTripper builds the http.RoundTripper for ep.HTTPSVersion: HTTP/2
// by default (DoH is most commonly deployed over h2), or plain HTTP/1.1
// when the caller needs to interoperate with a server that only speaks it.
func dohRoundTripper(ep Endpoint, tlsCfg *tls.Config) http.RoundTripper {
	if ep.HTTPSVersion == HTTPSVersionHTTP1 {
		return &http.Transport{TLSClientConfig: tlsCfg}
	}
	return &http2.Transport{TLSClientConfig: tlsCfg}
}

const dohContentType = "application/dns-message"

// dohTransport is DNS-over-HTTPS (RFC 8484): the DNS message is POSTed as
// the body of an HTTP request (HTTP/2 unless HTTPSVersionHTTP1 is selected)
// and the reply is the HTTP response body.
// Unlike UDP/TCP/DoT, the request/response cycle happens inside Send; Recv
// just hands back what arrived.
type dohTransport struct {
	client   *http.Client
	url      string
	response []byte
	sent     bool
}

func dialDoH(ctx context.Context, ep Endpoint, timeout time.Duration) (Transport, error) {
	rootCAs, err := ep.rootCAs()
	if err != nil {
		return nil, err
	}
	tlsCfg := &tls.Config{
		ServerName:         ep.serverNameOrHost(),
		InsecureSkipVerify: ep.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
		RootCAs:            rootCAs,
	}
	tr := dohRoundTripper(ep, tlsCfg)
	path := ep.DoHPath
	if path == "" {
		path = "/dns-query"
	}
	host := ep.Host
	if ep.Port != 0 && ep.Port != 443 {
		host = fmt.Sprintf("%s:%d", ep.Host, ep.Port)
	}
	url := fmt.Sprintf("https://%s%s", host, path)

	return &dohTransport{
		client: &http.Client{Transport: tr, Timeout: timeout},
		url:    url,
	}, nil
}

func (t *dohTransport) Send(ctx context.Context, msg []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(msg))
	if err != nil {
		return 0, fmt.Errorf("build doh request: %w", err)
	}
	req.Header.Set("Content-Type", dohContentType)
	req.Header.Set("Accept", dohContentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return len(msg), wrapNetError("doh post", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return len(msg), fmt.Errorf("%w: doh server returned status %d", ErrHTTPClient, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDNSMessageSize))
	if err != nil {
		return len(msg), fmt.Errorf("%w: read doh response body: %v", ErrHTTPClient, err)
	}
	t.response = body
	t.sent = true
	return len(msg), nil
}

func (t *dohTransport) Recv(ctx context.Context) ([]byte, int, error) {
	if !t.sent {
		return nil, 0, fmt.Errorf("doh: Recv called before a successful Send")
	}
	return t.response, len(t.response), nil
}

func (t *dohTransport) UsesLeadingLength() bool { return false }
func (t *dohTransport) Mode() Mode              { return ModeDoH }
func (t *dohTransport) Close() error            { return nil }
