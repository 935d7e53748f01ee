package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the progress of the running game.
type Metrics struct {
	TurnsTotal        prometheus.Counter
	DaysPassed        prometheus.Gauge
	ResidentsAlive    prometheus.Gauge
	PendingSuspicions prometheus.Gauge
	GamesFinished     *prometheus.CounterVec
}

// New registers every hotel metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TurnsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "hotel_turns_total",
			Help: "Total number of turns in which a resident acted",
		}),
		DaysPassed: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hotel_days_passed",
			Help: "Days passed in the current game",
		}),
		ResidentsAlive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hotel_residents_alive",
			Help: "Residents still alive in the current game",
		}),
		PendingSuspicions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hotel_pending_suspicions",
			Help: "Suspicions waiting for the judges",
		}),
		GamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_games_finished_total",
			Help: "Finished games by outcome",
		}, []string{"outcome"}),
	}
}

// IncrementTurns records one acted turn.
func (m *Metrics) IncrementTurns() {
	if m == nil {
		return
	}
	m.TurnsTotal.Inc()
}

// ObserveBoard refreshes the gauges from a board snapshot.
func (m *Metrics) ObserveBoard(days, alive, suspicions int) {
	if m == nil {
		return
	}
	m.DaysPassed.Set(float64(days))
	m.ResidentsAlive.Set(float64(alive))
	m.PendingSuspicions.Set(float64(suspicions))
}

// IncrementFinished records the end of a game.
func (m *Metrics) IncrementFinished(outcome string) {
	if m == nil {
		return
	}
	m.GamesFinished.WithLabelValues(outcome).Inc()
}
