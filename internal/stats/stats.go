// Package stats accounts for bytes sent/received per transport and renders
// a one-shot Prometheus text exposition when an invocation passes --stats.
// There is no scrape server: the client process runs once and exits, so the
// registry is built, populated, and dumped to a writer in the same call.
package stats

import (
	"fmt"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/duskcoil/dnsdig/internal/transport"
)

// Recorder accumulates byte counts per transport mode for a single
// invocation. Safe for concurrent use, though the orchestrator only ever
// drives it sequentially.
type Recorder struct {
	mu       sync.Mutex
	sent     map[transport.Mode]int
	received map[transport.Mode]int
	exchanges int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		sent:     map[transport.Mode]int{},
		received: map[transport.Mode]int{},
	}
}

// RecordSent adds n bytes to the sent total for mode.
func (r *Recorder) RecordSent(mode transport.Mode, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[mode] += n
}

// RecordReceived adds n bytes to the received total for mode, and counts
// one completed exchange.
func (r *Recorder) RecordReceived(mode transport.Mode, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received[mode] += n
	r.exchanges++
}

// TotalSent sums bytes sent across every transport mode.
func (r *Recorder) TotalSent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.sent {
		total += n
	}
	return total
}

// TotalReceived sums bytes received across every transport mode.
func (r *Recorder) TotalReceived() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.received {
		total += n
	}
	return total
}

// registry builds a fresh Prometheus registry populated with this
// invocation's counters. A fresh registry per call keeps this a one-shot
// exposition rather than a long-lived collector.
func (r *Recorder) registry() *prometheus.Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg := prometheus.NewRegistry()

	sentVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dnsdig_bytes_sent",
		Help: "Bytes sent to the server, by transport mode.",
	}, []string{"transport"})
	recvVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dnsdig_bytes_received",
		Help: "Bytes received from the server, by transport mode.",
	}, []string{"transport"})
	exchangesGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dnsdig_exchanges_total",
		Help: "Number of completed query/response exchanges.",
	})

	reg.MustRegister(sentVec, recvVec, exchangesGauge)

	for mode, n := range r.sent {
		sentVec.WithLabelValues(string(mode)).Set(float64(n))
	}
	for mode, n := range r.received {
		recvVec.WithLabelValues(string(mode)).Set(float64(n))
	}
	exchangesGauge.Set(float64(r.exchanges))

	return reg
}

// WriteText renders the current counters as Prometheus text exposition
// format to w.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.registry().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", mf.GetName(), mf.GetHelp(), mf.GetName(), mf.GetType()); err != nil {
			return err
		}
		for _, m := range mf.GetMetric() {
			labelStr := ""
			for i, lp := range m.GetLabel() {
				if i > 0 {
					labelStr += ","
				}
				labelStr += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
			}
			value := m.GetGauge().GetValue()
			if labelStr != "" {
				if _, err := fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), labelStr, value); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprintf(w, "%s %g\n", mf.GetName(), value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
