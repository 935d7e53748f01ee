package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// ProfessorStrategy lectures a neighbour; it leaves a trace and nothing else
type ProfessorStrategy struct {
	baseStrategy
}

// NewProfessorStrategy creates the professor protocol.
func NewProfessorStrategy() *ProfessorStrategy {
	return &ProfessorStrategy{baseStrategy{role: models.Professor}}
}

func (s *ProfessorStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *ProfessorStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	w.Decider.Inform(fmt.Sprintf("You lecture apartment %d on %s.", target, s.lecture(own, target, w, h)))
}

func (s *ProfessorStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	s.lecture(own, target, w, h)
}

func (s *ProfessorStrategy) lecture(own, target int, w *World, h *History) string {
	topic := NewLetters(w.Rand).Lecture()
	h.AddAction(own, models.ActionLecture, target)
	log.Debug().Int("professor", own).Int("audience", target).Str("topic", topic).Msg("professor lectured")
	return topic
}
