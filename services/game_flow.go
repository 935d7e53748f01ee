package services

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// TurnReport what one NextTurn call did
type TurnReport struct {
	Actor         int    `json:"actor"`
	Name          string `json:"name"`
	Human         bool   `json:"human"`
	Acted         bool   `json:"acted"`
	RoundBoundary bool   `json:"round_boundary"`
	Announcement  string `json:"announcement,omitempty"`
}

// GameFlow turn scheduler: who moves next and when night turns into day
type GameFlow struct {
	State        models.DayPhase
	DaysPassed   int
	FlowSequence models.FlowSequence
	Actors       []int

	cursor       int
	world        *World
	retellFormat string
	notifier     Notifier
}

// NewGameFlow orders every current resident of the world's hotel. Play starts
// at night.
func NewGameFlow(w *World, sequence models.FlowSequence, retellFormat string, notifier Notifier) (*GameFlow, error) {
	if sequence == models.FlowScheduled {
		return nil, ErrFlowNotImplemented
	}
	if _, ok := models.ParseFlowSequence(string(sequence)); !ok {
		return nil, ErrInvalidSetting
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	flow := &GameFlow{
		State:        models.PhaseNight,
		FlowSequence: sequence,
		world:        w,
		retellFormat: retellFormat,
		notifier:     notifier,
	}
	for _, r := range w.Hotel.Residents() {
		flow.Actors = append(flow.Actors, r.View().HomeApartment)
	}
	if len(flow.Actors) == 0 {
		return nil, ErrNoActors
	}
	flow.order()

	log.Info().Str("flow", string(sequence)).Ints("actors", flow.Actors).Msg("game flow ready")
	return flow, nil
}

// order sorts Actors according to the flow sequence.
func (f *GameFlow) order() {
	hotel := f.world.Hotel
	switch f.FlowSequence {
	case models.FlowOrdered:
		sort.SliceStable(f.Actors, func(i, j int) bool {
			pi := hotel.ResidentAt(f.Actors[i]).Strategy().ConfessRole().Priority()
			pj := hotel.ResidentAt(f.Actors[j]).Strategy().ConfessRole().Priority()
			if pi != pj {
				return pi < pj
			}
			return f.Actors[i] < f.Actors[j]
		})
	case models.FlowAlphabetical:
		sort.SliceStable(f.Actors, func(i, j int) bool {
			ni := hotel.ResidentAt(f.Actors[i]).View().Name
			nj := hotel.ResidentAt(f.Actors[j]).View().Name
			if ni != nj {
				return ni < nj
			}
			return f.Actors[i] < f.Actors[j]
		})
	case models.FlowRandom, models.FlowChaotic:
		f.shuffle()
	}
}

func (f *GameFlow) shuffle() {
	f.world.Rand.Shuffle(len(f.Actors), func(i, j int) {
		f.Actors[i], f.Actors[j] = f.Actors[j], f.Actors[i]
	})
}

// CurrentMovingPlayer is the apartment whose turn comes next.
func (f *GameFlow) CurrentMovingPlayer() int {
	return f.Actors[f.cursor]
}

// NextTurn runs the next resident able to act. Once the cursor wraps the night
// ends, so a full round always advances DaysPassed by exactly one.
func (f *GameFlow) NextTurn() (TurnReport, error) {
	if len(f.Actors) == 0 {
		return TurnReport{}, ErrNoActors
	}
	if f.State == models.PhaseDay {
		f.SwitchDayNight()
	}

	var report TurnReport
	for f.cursor < len(f.Actors) {
		own := f.Actors[f.cursor]
		f.cursor++

		r := f.world.Hotel.ResidentAt(own)
		if r == nil || !r.canAct() {
			log.Debug().Int("apartment", own).Msg("turn skipped")
			continue
		}

		view := r.View()
		isHuman := view.Type == models.Human
		r.Strategy().PerformAction(own, isHuman, f.world, f.world.History)
		report = TurnReport{Actor: own, Name: view.Name, Human: isHuman, Acted: true}
		break
	}

	if f.cursor >= len(f.Actors) {
		f.cursor = 0
		report.RoundBoundary = true
		report.Announcement = f.SwitchDayNight()
	}

	f.notifier.Publish(f.Board())
	return report, nil
}

// SwitchDayNight flips the phase. Ending a night resolves conditions, sends
// everyone home, charges the daily costs and returns the announcement.
func (f *GameFlow) SwitchDayNight() string {
	if f.State == models.PhaseDay {
		f.State = models.PhaseNight
		if f.FlowSequence == models.FlowChaotic {
			f.shuffle()
		}
		log.Debug().Int("day", f.DaysPassed).Msg("night falls")
		return ""
	}

	hotel := f.world.Hotel
	history := f.world.History
	announcement := history.RetellLastNight(hotel, f.retellFormat)

	f.DaysPassed++
	for _, r := range hotel.Residents() {
		r.resolveNight()
	}
	resolveSuspicions(f.world)
	hotel.sendEveryoneHome()
	collected := hotel.chargeDailyCosts()
	history.NextDay()
	f.State = models.PhaseDay

	log.Info().
		Int("day", f.DaysPassed).
		Float64("collected", collected).
		Float64("capital", hotel.Config.Capital).
		Msg("day breaks")
	f.notifier.Announce(f.DaysPassed, announcement)
	return announcement
}

// LastNight is the ledger day of the most recent night, finished or not.
func (f *GameFlow) LastNight() int {
	day := f.world.History.Day()
	if f.State == models.PhaseDay && day > 1 {
		return day - 1
	}
	return day
}

// Outcome checks the living residents.
func (f *GameFlow) Outcome() models.Outcome {
	return checkGameEnd(f.world.Hotel.Residents())
}

// Board builds the snapshot published to spectators.
func (f *GameFlow) Board() models.BoardView {
	return models.BoardView{
		HotelID:     f.world.Hotel.Config.ID,
		Phase:       f.State,
		DaysPassed:  f.DaysPassed,
		Capital:     f.world.Hotel.Config.Capital,
		Apartments:  f.world.Hotel.Snapshot(),
		Suspicions:  f.world.Investigations.Len(),
		Outcome:     f.Outcome(),
		CurrentTurn: f.CurrentMovingPlayer(),
	}
}
