package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// PoliceStrategy inspects papers and files suspicions for the judges
type PoliceStrategy struct {
	baseStrategy
}

// NewPoliceStrategy creates the police protocol.
func NewPoliceStrategy() *PoliceStrategy {
	return &PoliceStrategy{baseStrategy{role: models.Police}}
}

func (s *PoliceStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *PoliceStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	docs, filed := s.investigate(own, target, w, h)
	w.Decider.Inform(describeDocuments(target, docs))
	if filed {
		w.Decider.Inform(fmt.Sprintf("A suspicion against apartment %d goes to the judges.", target))
	}
}

func (s *PoliceStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	s.investigate(own, target, w, h)
}

// verdict judges a set of papers on its own.
func verdict(docs []models.Document) bool {
	switch len(docs) {
	case 0:
		return false
	case 1:
		return docs[0].Role.IsBad()
	default:
		return true
	}
}

// escalation looks at what is already pending against target.
func (s *PoliceStrategy) escalation(own, target int, w *World, h *History) string {
	pending, ok := w.Investigations.Get(target)
	if !ok {
		return ""
	}
	if w.IsCredible(pending.From) {
		return "reported by a credible source"
	}
	if pending.ForVotes == 0 && h.HasVisited(own, target) {
		return "repeated uncorroborated suspicion"
	}
	return ""
}

func (s *PoliceStrategy) investigate(own, target int, w *World, h *History) ([]models.Document, bool) {
	docs := inspect(w, target)

	reason := ""
	suspicious := verdict(docs)
	if !suspicious {
		reason = s.escalation(own, target, w, h)
		suspicious = reason != ""
	}

	if suspicious {
		replaced := w.Investigations.Enqueue(models.Suspicion{
			From:        own,
			Suspected:   target,
			Description: NewLetters(w.Rand).Suspicion(target, docs, reason),
		})
		log.Info().Int("police", own).Int("suspect", target).Bool("replaced", replaced).Msg("suspicion filed")
	}

	h.AddAction(own, models.ActionInvestigate, target)
	return docs, suspicious
}
