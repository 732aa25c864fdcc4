// Package metrics counts what a HAR synthesis run read, skipped, built and
// dropped, as Prometheus counters on a caller-supplied registry.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

// DefaultNamespace prefixes every metric name when Config.Namespace is empty.
const DefaultNamespace = "perfhar"

// Config selects metric naming.
type Config struct {
	Namespace string
}

// Collector owns the counters of one registry. All methods are safe on a nil
// *Collector, which records nothing.
//
// Metrics:
//   - <ns>_log_lines_total{kind}: classified log lines by Network.* method
//   - <ns>_skipped_lines_total{reason}: lines the classifier rejected
//   - <ns>_entries_total{type}: entries built, "http" or "websocket"
//   - <ns>_dropped_bags_total{reason}: bags that produced no entry
//   - <ns>_websocket_messages_total{direction,opcode}: frames turned into messages
//   - <ns>_websocket_control_frames_total{direction}: close, ping and pong frames among them
type Collector struct {
	registry *prometheus.Registry

	lines    *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	entries  *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	messages *prometheus.CounterVec
	control  *prometheus.CounterVec
}

// NewCollector creates the counters and registers them. If registry is nil a
// fresh one is created, so collectors never collide on the global registry.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	c := &Collector{
		registry: registry,
		lines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "log_lines_total",
				Help:      "Performance log lines classified as network events",
			},
			[]string{"kind"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "skipped_lines_total",
				Help:      "Performance log lines skipped by the classifier",
			},
			[]string{"reason"},
		),
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "entries_total",
				Help:      "HAR entries built",
			},
			[]string{"type"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "dropped_bags_total",
				Help:      "Request bags that produced no HAR entry",
			},
			[]string{"reason"},
		),
		messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "websocket_messages_total",
				Help:      "WebSocket frames written as HAR messages",
			},
			[]string{"direction", "opcode"},
		),
		control: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "websocket_control_frames_total",
				Help:      "WebSocket close, ping and pong frames written as HAR messages",
			},
			[]string{"direction"},
		),
	}

	registry.MustRegister(c.lines, c.skipped, c.entries, c.dropped, c.messages, c.control)
	return c
}

// Registry returns the registry the counters live on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordLine counts one classified line of the given kind.
func (c *Collector) RecordLine(kind string) {
	if c == nil {
		return
	}
	c.lines.WithLabelValues(kind).Inc()
}

// RecordSkip counts one rejected line.
func (c *Collector) RecordSkip(reason string) {
	if c == nil {
		return
	}
	c.skipped.WithLabelValues(reason).Inc()
}

// RecordEntry counts one built entry.
func (c *Collector) RecordEntry(entryType string) {
	if c == nil {
		return
	}
	c.entries.WithLabelValues(entryType).Inc()
}

// RecordDrop counts one bag that produced no entry.
func (c *Collector) RecordDrop(reason string) {
	if c == nil {
		return
	}
	c.dropped.WithLabelValues(reason).Inc()
}

// RecordMessages counts the messages of a WebSocket entry.
func (c *Collector) RecordMessages(msgs []har.WebSocketMessage) {
	if c == nil {
		return
	}
	for _, m := range msgs {
		c.messages.WithLabelValues(m.Type, har.OpcodeName(m.Opcode)).Inc()
		if m.IsControl() {
			c.control.WithLabelValues(m.Type).Inc()
		}
	}
}

// Sample is one counter value with its labels rendered as k=v pairs.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers every counter on the registry, sorted by name then labels.
func (c *Collector) Snapshot() ([]Sample, error) {
	if c == nil {
		return nil, nil
	}
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}
			out = append(out, Sample{
				Name:   mf.GetName(),
				Labels: strings.Join(pairs, ","),
				Value:  m.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
