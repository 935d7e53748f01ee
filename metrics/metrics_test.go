package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementTurns()
	m.IncrementTurns()
	m.ObserveBoard(3, 7, 1)
	m.IncrementFinished("killer_wins")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TurnsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DaysPassed))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.ResidentsAlive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PendingSuspicions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesFinished.WithLabelValues("killer_wins")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementTurns()
		m.ObserveBoard(1, 1, 1)
		m.IncrementFinished("residents_win")
	})
}
