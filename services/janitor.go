package services

import (
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// JanitorStrategy closes apartments for good and reads the papers inside
type JanitorStrategy struct {
	baseStrategy
}

// NewJanitorStrategy creates the janitor protocol.
func NewJanitorStrategy() *JanitorStrategy {
	return &JanitorStrategy{baseStrategy{role: models.Janitor}}
}

func (s *JanitorStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *JanitorStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	docs, ok := s.clean(own, target, w, h)
	if ok {
		w.Decider.Inform(describeDocuments(target, docs))
	}
}

func (s *JanitorStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	if docs, ok := s.clean(own, target, w, h); ok {
		log.Debug().Int("janitor", own).Int("target", target).Int("documents", len(docs)).Msg("janitor inspected")
	}
}

func (s *JanitorStrategy) clean(own, target int, w *World, h *History) ([]models.Document, bool) {
	if err := w.Hotel.CloseApartment(target); err != nil {
		log.Warn().Err(err).Int("janitor", own).Msg("apartment not cleaned")
		return nil, false
	}
	docs := inspect(w, target)
	h.AddAction(own, models.ActionClean, target)
	return docs, true
}
