package services

import (
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// AvengerAction what an avenger does at the chosen door
type AvengerAction string

const (
	AvengerSleep AvengerAction = "Sleep"
	AvengerKill  AvengerAction = "Kill"
)

// AvengerStrategy watches a door, and may kill behind it on a later night
type AvengerStrategy struct {
	baseStrategy
}

// NewAvengerStrategy creates the avenger protocol.
func NewAvengerStrategy() *AvengerStrategy {
	return &AvengerStrategy{baseStrategy{role: models.Avenger}}
}

func (s *AvengerStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

// options offers Kill only at a door the avenger already acted on.
func (s *AvengerStrategy) options(own, target int, h *History) []AvengerAction {
	options := []AvengerAction{AvengerSleep}
	if h.HasVisited(own, target) {
		options = append(options, AvengerKill)
	}
	return options
}

func (s *AvengerStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	options := s.options(own, target, h)
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = string(option)
	}
	choice, err := w.Decider.ChooseAction("Choose an action from available options:", labels)
	if err != nil {
		log.Warn().Err(err).Int("apartment", own).Msg("avenger made no choice")
		return
	}
	s.execute(options[choice], own, target, w, h)
}

func (s *AvengerStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	options := s.options(own, target, h)
	s.execute(options[len(options)-1], own, target, w, h)
}

func (s *AvengerStrategy) execute(action AvengerAction, own, target int, w *World, h *History) {
	switch action {
	case AvengerKill:
		victim := w.Hotel.ResidentAt(target)
		if victim == nil {
			return
		}
		victim.Lock()
		victim.Status = models.Dead
		victim.Unlock()
		h.AddAction(own, models.ActionAvenge, target)
	default:
		h.AddAction(own, models.ActionSleep, target)
	}
	log.Debug().Int("avenger", own).Int("target", target).Str("action", string(action)).Msg("avenger acted")
}
