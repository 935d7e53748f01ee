package services

import (
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// OldWomanStrategy pays a visit and snoops through the host's papers
type OldWomanStrategy struct {
	baseStrategy
}

// NewOldWomanStrategy creates the old woman protocol.
func NewOldWomanStrategy() *OldWomanStrategy {
	return &OldWomanStrategy{baseStrategy{role: models.OldWoman}}
}

func (s *OldWomanStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *OldWomanStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	w.Decider.Inform(describeDocuments(target, s.visit(own, target, w, h)))
}

func (s *OldWomanStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	docs := s.visit(own, target, w, h)
	log.Debug().Int("old_woman", own).Int("host", target).Int("documents", len(docs)).Msg("old woman visited")
}

func (s *OldWomanStrategy) visit(own, target int, w *World, h *History) []models.Document {
	if self := w.Hotel.ResidentAt(own); self != nil {
		self.Lock()
		self.CurrentApartment = target
		self.Unlock()
	}
	docs := inspect(w, target)
	if err := w.Hotel.AddGuest(target, own); err != nil {
		log.Error().Err(err).Msg("guest not registered")
	}
	h.AddAction(own, models.ActionVisit, target)
	return docs
}
