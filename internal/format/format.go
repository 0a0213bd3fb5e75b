// Package format renders an orchestrator.Result as dig-style plain text,
// a compact "short" form (answer data only), or JSON for machine
// consumption.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/duskcoil/dnsdig/internal/dnsmsg"
	"github.com/duskcoil/dnsdig/internal/orchestrator"
	"github.com/duskcoil/dnsdig/internal/trace"
)

// WriteText renders result in a dig(1)-like layout: one section per
// exchange, echoing the query header line, the answer/authority/additional
// sections, and a trailing stats line.
func WriteText(w io.Writer, result orchestrator.Result) error {
	for i, ex := range result.Exchanges {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeExchangeText(w, ex); err != nil {
			return err
		}
	}
	return nil
}

func writeExchangeText(w io.Writer, ex orchestrator.Exchange) error {
	q := ex.Query
	r := ex.Response.Reply

	question := "?"
	if len(q.Questions) > 0 {
		qq := q.Questions[0]
		question = fmt.Sprintf("%s %s %s", qq.Name, qq.Class, qq.QType)
	}

	fmt.Fprintf(w, ";; Got answer for %s via %s in %s\n", question, ex.Mode, ex.Duration)
	fmt.Fprintf(w, ";; ->>HEADER<<- opcode: %s, status: %s, id: %d\n", r.Header.Opcode(), ex.Response.RCode(), r.Header.ID)
	fmt.Fprintf(w, ";; flags:%s; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		headerFlagString(r.Header), len(r.Questions), len(r.Answer), len(r.Authority), len(r.Additional))

	if len(q.Questions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ";; QUESTION SECTION:")
		qq := q.Questions[0]
		fmt.Fprintf(w, ";%s\t\t%s\t%s\n", qq.Name, qq.Class, qq.QType)
	}

	writeSection(w, "ANSWER", r.Answer)
	writeSection(w, "AUTHORITY", r.Authority)
	writeSection(w, "ADDITIONAL", r.Additional)

	fmt.Fprintln(w)
	fmt.Fprintf(w, ";; MSG SIZE  rcvd: %d\n", ex.Response.RawSize)
	return nil
}

func writeSection(w io.Writer, name string, rrs []dnsmsg.ResourceRecord) {
	if len(rrs) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, ";; %s SECTION:\n", name)
	for _, rr := range rrs {
		fmt.Fprintln(w, rr.String())
	}
}

func headerFlagString(h dnsmsg.Header) string {
	var flags []string
	if h.QR() {
		flags = append(flags, "qr")
	}
	if h.AA() {
		flags = append(flags, "aa")
	}
	if h.TC() {
		flags = append(flags, "tc")
	}
	if h.RD() {
		flags = append(flags, "rd")
	}
	if h.RA() {
		flags = append(flags, "ra")
	}
	if h.AD() {
		flags = append(flags, "ad")
	}
	if h.CD() {
		flags = append(flags, "cd")
	}
	if len(flags) == 0 {
		return ""
	}
	return " " + strings.Join(flags, " ")
}

// WriteShort renders only the RDATA of every answer record, one per line,
// matching `dig +short`.
func WriteShort(w io.Writer, result orchestrator.Result) error {
	for _, ex := range result.Exchanges {
		for _, rr := range ex.Response.Reply.Answer {
			fmt.Fprintln(w, rr.RData.String())
		}
	}
	return nil
}

// jsonRR is the JSON-serializable shape of one resource record.
type jsonRR struct {
	Name  string `json:"name"`
	TTL   uint32 `json:"ttl"`
	Class string `json:"class"`
	Type  string `json:"type"`
	RData string `json:"rdata"`
}

// jsonExchange is the JSON-serializable shape of one query/response
// exchange.
type jsonExchange struct {
	Question   string   `json:"question"`
	Mode       string   `json:"mode"`
	DurationMS float64  `json:"duration_ms"`
	RCode      string   `json:"rcode"`
	Truncated  bool     `json:"truncated"`
	Answer     []jsonRR `json:"answer"`
	Authority  []jsonRR `json:"authority"`
	Additional []jsonRR `json:"additional"`
}

// WriteJSON renders result as a JSON array of exchanges.
func WriteJSON(w io.Writer, result orchestrator.Result) error {
	out := make([]jsonExchange, 0, len(result.Exchanges))
	for _, ex := range result.Exchanges {
		question := ""
		if len(ex.Query.Questions) > 0 {
			qq := ex.Query.Questions[0]
			question = fmt.Sprintf("%s %s %s", qq.Name, qq.Class, qq.QType)
		}
		out = append(out, jsonExchange{
			Question:   question,
			Mode:       string(ex.Mode),
			DurationMS: float64(ex.Duration.Microseconds()) / 1000,
			RCode:      ex.Response.RCode().String(),
			Truncated:  ex.Response.IsTruncated(),
			Answer:     toJSONRRs(ex.Response.Reply.Answer),
			Authority:  toJSONRRs(ex.Response.Reply.Authority),
			Additional: toJSONRRs(ex.Response.Reply.Additional),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONRRs(rrs []dnsmsg.ResourceRecord) []jsonRR {
	out := make([]jsonRR, 0, len(rrs))
	for _, rr := range rrs {
		out = append(out, jsonRR{
			Name:  rr.Name.String(),
			TTL:   rr.TTL,
			Class: rr.Class.String(),
			Type:  rr.Type.String(),
			RData: rr.RData.String(),
		})
	}
	return out
}

// WriteTrace renders a trace.Result as a sequence of hop summaries,
// matching the dig +trace layout of one block per delegation level.
func WriteTrace(w io.Writer, result trace.Result) error {
	for i, hop := range result.Hops {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, ";; hop %d: queried %s -- %s\n", i+1, hop.Server, hop.Response.Summary())
		writeSection(w, "ANSWER", hop.Response.Reply.Answer)
		writeSection(w, "AUTHORITY", hop.Response.Reply.Authority)
		writeSection(w, "ADDITIONAL", hop.Response.Reply.Additional)
	}
	return nil
}
