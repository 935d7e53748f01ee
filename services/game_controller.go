package services

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/metrics"
	"github.com/qianlnk/hotel/models"
)

// GameController drives a GameFlow and decides when the game is over
type GameController struct {
	flow     *GameFlow
	notifier Notifier
	metrics  *metrics.Metrics
	outcome  models.Outcome
	mutex    sync.RWMutex
}

// NewGameController wraps flow; a nil notifier or metrics disables them.
func NewGameController(flow *GameFlow, notifier Notifier, m *metrics.Metrics) *GameController {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &GameController{
		flow:     flow,
		notifier: notifier,
		metrics:  m,
		outcome:  models.GameOngoing,
	}
}

// Flow is the scheduler being driven.
func (gc *GameController) Flow() *GameFlow {
	return gc.flow
}

// Outcome is decided at the end of a round.
func (gc *GameController) Outcome() models.Outcome {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()
	return gc.outcome
}

// IsOver reports whether a side has won.
func (gc *GameController) IsOver() bool {
	return gc.Outcome() != models.GameOngoing
}

// Step runs exactly one turn.
func (gc *GameController) Step() (TurnReport, error) {
	if gc.IsOver() {
		return TurnReport{}, ErrGameOver
	}

	report, err := gc.flow.NextTurn()
	if err != nil {
		return report, err
	}
	if report.Acted {
		gc.metrics.IncrementTurns()
	}
	if report.RoundBoundary {
		gc.checkGameEnd()
	}
	return report, nil
}

// PlayUntilHuman keeps stepping until a human has acted, the round ended or
// the game is decided.
func (gc *GameController) PlayUntilHuman() ([]TurnReport, error) {
	reports := make([]TurnReport, 0)
	for {
		report, err := gc.Step()
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
		if report.Human || report.RoundBoundary {
			return reports, nil
		}
	}
}

// checkGameEnd updates the outcome and the gauges after a round.
func (gc *GameController) checkGameEnd() {
	board := gc.flow.Board()

	alive := 0
	for _, apt := range board.Apartments {
		if apt.Resident != nil && apt.Resident.Status == models.Alive {
			alive++
		}
	}
	gc.metrics.ObserveBoard(board.DaysPassed, alive, board.Suspicions)

	if board.Outcome == models.GameOngoing {
		return
	}

	gc.mutex.Lock()
	gc.outcome = board.Outcome
	gc.mutex.Unlock()

	gc.metrics.IncrementFinished(string(board.Outcome))
	gc.notifier.Publish(board)
	log.Info().Str("outcome", string(board.Outcome)).Int("day", board.DaysPassed).Msg("game over")
}
