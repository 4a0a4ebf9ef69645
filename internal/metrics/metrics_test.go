package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystroke(t *testing.T) {
	m := New()
	m.Keystroke(OutcomeOK)
	m.Keystroke(OutcomeOK)
	m.Keystroke(OutcomeUnreachable)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.keystrokes.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.keystrokes.WithLabelValues(OutcomeUnreachable)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.keystrokes.WithLabelValues(OutcomeMissing)))
}

func TestAssembly(t *testing.T) {
	m := New()
	m.Assembly("m-1", 30, 32, 2*time.Millisecond)
	m.Scramble()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.assemblies))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scrambles))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.graphNodes.WithLabelValues("m-1")))
	assert.Equal(t, 32.0, testutil.ToFloat64(m.graphEdges.WithLabelValues("m-1")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.assemblySeconds))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Keystroke(OutcomeOK)
		m.Scramble()
		m.Path(2)
		m.Assembly("m", 1, 1, time.Second)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))

	summary, err := m.Summary()
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Keystroke(OutcomeOK)
	m.Path(2)

	path := filepath.Join(t.TempDir(), "rotorgraph.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `rotorgraph_keystrokes_total{outcome="ok"} 1`), text)
	assert.Contains(t, text, "rotorgraph_path_cost_count 1")
}

func TestSummary(t *testing.T) {
	m := New()
	m.Keystroke(OutcomeOK)
	m.Keystroke(OutcomeMalformed)
	m.Keystroke(OutcomeMalformed)

	summary, err := m.Summary()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{OutcomeOK: "1", OutcomeMalformed: "2"}, summary)
}
