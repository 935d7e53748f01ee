package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// JudgeStrategy votes on every pending suspicion
type JudgeStrategy struct {
	baseStrategy
}

// NewJudgeStrategy creates the judge protocol.
func NewJudgeStrategy() *JudgeStrategy {
	return &JudgeStrategy{baseStrategy{role: models.Judge}}
}

func (s *JudgeStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *JudgeStrategy) performHuman(own int, w *World, h *History) {
	targets := w.Investigations.Targets()
	if len(targets) == 0 {
		w.Decider.Inform("No suspicion awaits judgement tonight.")
		return
	}
	for _, target := range targets {
		pending, _ := w.Investigations.Get(target)
		inFavor, err := w.Decider.Confirm(fmt.Sprintf("%s (for %d, against %d). Vote for?",
			pending.Description, pending.ForVotes, pending.AgainstVotes))
		if err != nil {
			log.Warn().Err(err).Int("apartment", own).Msg("judge stopped voting")
			return
		}
		s.vote(own, target, inFavor, w, h)
	}
}

func (s *JudgeStrategy) performBot(own int, w *World, h *History) {
	targets := w.Investigations.Targets()
	if len(targets) == 0 {
		log.Debug().Int("judge", own).Msg("nothing to judge")
		return
	}
	ai := s.bot(own, w)
	for _, target := range targets {
		s.vote(own, target, ai.Chance(w.Rules.JudgeVoteFor), w, h)
	}
}

func (s *JudgeStrategy) vote(own, target int, inFavor bool, w *World, h *History) {
	if !w.Investigations.Vote(target, inFavor) {
		return
	}
	h.AddAction(own, models.ActionJudge, target)
	log.Debug().Int("judge", own).Int("suspect", target).Bool("for", inFavor).Msg("judge voted")
}

// resolveSuspicions applies the majority policy at dawn. Suspects with more
// votes for than against are arrested; rejected suspicions are dropped.
func resolveSuspicions(w *World) {
	if w.Rules.JudgeResolution != models.ResolutionMajority {
		return
	}
	for _, target := range w.Investigations.Targets() {
		pending, _ := w.Investigations.Get(target)
		switch {
		case pending.ForVotes > pending.AgainstVotes:
			if suspect := w.Hotel.ResidentAt(target); suspect != nil {
				suspect.Lock()
				suspect.SuperStatus = models.Arrested
				suspect.Unlock()
			}
			w.Investigations.Remove(target)
			log.Info().Int("suspect", target).Msg("suspect arrested")
		case pending.AgainstVotes > 0 && pending.AgainstVotes >= pending.ForVotes:
			w.Investigations.Remove(target)
			log.Info().Int("suspect", target).Msg("suspicion dismissed")
		}
	}
}
