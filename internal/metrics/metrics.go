// Package metrics exposes engine counters through a private Prometheus
// registry.
//
// The CLI is short-lived, so there is no scrape endpoint. Instead the
// registry is written in text exposition format to a file (for the node
// exporter textfile collector) when --metrics-file is set.
//
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rotorgraph"

// Keystroke outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeMissing     = "missing_combination"
	OutcomeUnreachable = "unreachable"
	OutcomeMalformed   = "malformed_terminal"
)

// Metrics holds the engine's collectors.
type Metrics struct {
	registry *prometheus.Registry

	keystrokes      *prometheus.CounterVec
	assemblies      prometheus.Counter
	scrambles       prometheus.Counter
	assemblySeconds prometheus.Histogram
	graphNodes      *prometheus.GaugeVec
	graphEdges      *prometheus.GaugeVec
	pathCost        prometheus.Histogram
}

// New creates and registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		keystrokes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keystrokes_total",
			Help:      "Letters enciphered, by outcome.",
		}, []string{"outcome"}),
		assemblies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assemblies_total",
			Help:      "Machine graphs assembled.",
		}),
		scrambles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrambles_total",
			Help:      "Machine scrambles performed.",
		}),
		assemblySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Time spent assembling a machine graph.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		graphNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes in the most recent graph of each machine.",
		}, []string{"machine"}),
		graphEdges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges in the most recent graph of each machine.",
		}, []string{"machine"}),
		pathCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_cost",
			Help:      "Total crosswire cost of each enciphering path.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
	}
	m.registry.MustRegister(
		m.keystrokes,
		m.assemblies,
		m.scrambles,
		m.assemblySeconds,
		m.graphNodes,
		m.graphEdges,
		m.pathCost,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Keystroke counts one enciphered letter.
func (m *Metrics) Keystroke(outcome string) {
	if m == nil {
		return
	}
	m.keystrokes.WithLabelValues(outcome).Inc()
}

// Path records the cost of a resolved path.
func (m *Metrics) Path(cost float64) {
	if m == nil {
		return
	}
	m.pathCost.Observe(cost)
}

// Scramble counts one machine scramble.
func (m *Metrics) Scramble() {
	if m == nil {
		return
	}
	m.scrambles.Inc()
}

// Assembly records one finished assembly.
func (m *Metrics) Assembly(machine string, nodes, edges int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.assemblies.Inc()
	m.assemblySeconds.Observe(elapsed.Seconds())
	m.graphNodes.WithLabelValues(machine).Set(float64(nodes))
	m.graphEdges.WithLabelValues(machine).Set(float64(edges))
}

// WriteTextfile writes the registry to path in text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

// Summary flattens the keystroke counters for display.
func (m *Metrics) Summary() (map[string]string, error) {
	if m == nil {
		return map[string]string{}, nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}
	out := make(map[string]string)
	for _, mf := range families {
		if mf.GetName() != namespace+"_keystrokes_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" {
					out[label.GetValue()] = strconv.FormatFloat(metric.GetCounter().GetValue(), 'f', -1, 64)
				}
			}
		}
	}
	return out, nil
}
