package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// KillerAction what a killer does to its target
type KillerAction string

const (
	KillerKill     KillerAction = "Kill"
	KillerThreaten KillerAction = "Threaten"
	KillerBribe    KillerAction = "Bribe"
	KillerRob      KillerAction = "Rob"
)

var killerActions = []KillerAction{KillerKill, KillerThreaten, KillerBribe, KillerRob}

// KillerStrategy kills, threatens, bribes or robs one resident a night
type KillerStrategy struct {
	baseStrategy
}

// NewKillerStrategy creates the killer protocol.
func NewKillerStrategy() *KillerStrategy {
	return &KillerStrategy{baseStrategy{role: models.Killer}}
}

func (s *KillerStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *KillerStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}

	labels := make([]string, len(killerActions))
	for i, action := range killerActions {
		labels[i] = string(action)
	}
	choice, err := w.Decider.ChooseAction("Choose an action from available options:", labels)
	if err != nil {
		log.Warn().Err(err).Int("apartment", own).Msg("killer made no choice")
		return
	}

	s.execute(killerActions[choice], own, target, w, h)
	w.Decider.Inform(fmt.Sprintf("You chose to %s apartment %d.", killerActions[choice], target))
}

// performBot always kills.
func (s *KillerStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	s.execute(KillerKill, own, target, w, h)
}

func (s *KillerStrategy) execute(action KillerAction, own, target int, w *World, h *History) {
	killer := w.Hotel.ResidentAt(own)
	victim := w.Hotel.ResidentAt(target)
	if killer == nil || victim == nil {
		return
	}

	switch action {
	case KillerKill:
		victim.Lock()
		victim.Status = models.Dead
		victim.Unlock()
		h.AddAction(own, models.ActionKill, target)

	case KillerThreaten:
		name := victim.View().Name
		if err := w.Hotel.DeliverMail(target, NewLetters(w.Rand).Threat(name)); err != nil {
			log.Error().Err(err).Msg("threat not delivered")
			return
		}
		h.AddAction(own, models.ActionThreaten, target)

	case KillerBribe:
		killer.Lock()
		amount := killer.Balance / 2
		killer.Balance -= amount
		killer.Unlock()

		victim.Lock()
		victim.Balance += amount
		victim.SuperStatus = models.Disinterested
		victim.Unlock()
		h.AddAction(own, models.ActionBribe, target)

	case KillerRob:
		victim.Lock()
		loot := victim.Balance
		victim.Balance = 0
		victim.Unlock()

		killer.Lock()
		killer.Balance += loot
		killer.Unlock()
		h.AddAction(own, models.ActionRob, target)
	}

	log.Debug().Int("killer", own).Int("target", target).Str("action", string(action)).Msg("killer acted")
}
