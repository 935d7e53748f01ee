package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

var swindlerMoneyOptions = []string{
	"Keep all the money",
	"Split the money evenly",
	"Keep only what you had",
	"Give all the money away",
}

// SwindlerStrategy pools its own and the target's papers and money, then
// splits them again. Nothing is created or lost by the split.
type SwindlerStrategy struct {
	baseStrategy
	mode models.SwindlerMode
}

// NewSwindlerStrategy creates the swindler protocol; mode drives bots only.
func NewSwindlerStrategy(mode models.SwindlerMode) *SwindlerStrategy {
	if mode == "" {
		mode = models.SwindlerRandom
	}
	return &SwindlerStrategy{baseStrategy: baseStrategy{role: models.Swindler}, mode: mode}
}

// Mode is the split used by bot swindlers.
func (s *SwindlerStrategy) Mode() models.SwindlerMode {
	return s.mode
}

func (s *SwindlerStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

// loot pooled goods of swindler and target
type loot struct {
	ownDocs     []models.Document
	targetDocs  []models.Document
	ownMoney    float64
	targetMoney float64
}

func (l loot) docs() []models.Document {
	all := make([]models.Document, 0, len(l.ownDocs)+len(l.targetDocs))
	all = append(all, l.ownDocs...)
	return append(all, l.targetDocs...)
}

func (l loot) money() float64 {
	return l.ownMoney + l.targetMoney
}

func holdsKiller(docs []models.Document) bool {
	for _, doc := range docs {
		if doc.Role == models.Killer {
			return true
		}
	}
	return false
}

// split how the loot is handed back
type split struct {
	keep      []models.Document
	give      []models.Document
	keepMoney float64
	report    bool
	suspect   int
}

func (s *SwindlerStrategy) gather(own, target int, w *World) (loot, bool) {
	self := w.Hotel.ResidentAt(own)
	victim := w.Hotel.ResidentAt(target)
	if self == nil || victim == nil {
		return loot{}, false
	}

	var l loot
	self.Lock()
	l.ownDocs = append([]models.Document(nil), self.Documents...)
	l.ownMoney = self.Balance
	self.Unlock()

	victim.Lock()
	l.targetDocs = append([]models.Document(nil), victim.Documents...)
	l.targetMoney = victim.Balance
	victim.Unlock()
	return l, true
}

func (s *SwindlerStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	l, ok := s.gather(own, target, w)
	if !ok {
		return
	}

	var out split
	for _, doc := range l.docs() {
		keep, err := w.Decider.Confirm(fmt.Sprintf("Keep %s?", doc))
		if err != nil {
			log.Warn().Err(err).Int("apartment", own).Msg("swindle abandoned")
			return
		}
		if keep {
			out.keep = append(out.keep, doc)
		} else {
			out.give = append(out.give, doc)
		}
	}

	choice, err := w.Decider.ChooseAction(fmt.Sprintf("The pot holds %.2f. What about the money?", l.money()), swindlerMoneyOptions)
	if err != nil {
		log.Warn().Err(err).Int("apartment", own).Msg("swindle abandoned")
		return
	}
	switch choice {
	case 0:
		out.keepMoney = l.money()
	case 1:
		out.keepMoney = l.money() / 2
	case 2:
		out.keepMoney = l.ownMoney
	default:
		out.keepMoney = 0
	}

	if holdsKiller(l.targetDocs) {
		report, err := w.Decider.Confirm(fmt.Sprintf("Apartment %d carries killer papers. Report it?", target))
		if err == nil {
			out.report, out.suspect = report, target
		}
	}

	s.apply(own, target, l, out, w, h)
}

func (s *SwindlerStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	l, ok := s.gather(own, target, w)
	if !ok {
		return
	}
	s.apply(own, target, l, s.botSplit(own, target, l, w), w, h)
}

func (s *SwindlerStrategy) botSplit(own, target int, l loot, w *World) split {
	var out split
	switch s.mode {
	case models.SwindlerInnocentLook:
		kept := false
		for _, doc := range l.docs() {
			if !kept && !doc.Role.IsBad() {
				out.keep = append(out.keep, doc)
				kept = true
				continue
			}
			out.give = append(out.give, doc)
		}
		out.keepMoney = l.money() / 2

	case models.SwindlerBadGuy:
		for _, doc := range l.docs() {
			if doc.Role.IsBad() {
				out.give = append(out.give, doc)
			} else {
				out.keep = append(out.keep, doc)
			}
		}
		out.keepMoney = l.money()

	case models.SwindlerGoodGuy:
		out.keep = l.ownDocs
		out.give = l.targetDocs
		out.keepMoney = l.ownMoney
		// everything goes back where it was, so whoever brought killer papers keeps them
		switch {
		case holdsKiller(l.targetDocs):
			out.report, out.suspect = true, target
		case holdsKiller(l.ownDocs):
			out.report, out.suspect = true, own
		}

	case models.SwindlerCollector:
		out.keep = l.docs()
		out.keepMoney = l.money()

	default:
		for _, doc := range l.docs() {
			if w.Rand.Intn(2) == 0 {
				out.keep = append(out.keep, doc)
			} else {
				out.give = append(out.give, doc)
			}
		}
		out.keepMoney = l.money() * w.Rand.Float64()
	}
	return out
}

func (s *SwindlerStrategy) apply(own, target int, l loot, out split, w *World, h *History) {
	self := w.Hotel.ResidentAt(own)
	victim := w.Hotel.ResidentAt(target)

	self.Lock()
	self.Documents = append(make([]models.Document, 0, len(out.keep)), out.keep...)
	self.Balance = out.keepMoney
	self.Unlock()

	victim.Lock()
	victim.Documents = append(make([]models.Document, 0, len(out.give)), out.give...)
	victim.Balance = l.money() - out.keepMoney
	victim.Unlock()

	if out.report {
		w.Investigations.Enqueue(models.Suspicion{
			From:        own,
			Suspected:   out.suspect,
			Description: NewLetters(w.Rand).Suspicion(out.suspect, nil, "caught carrying killer papers"),
		})
	}

	h.AddAction(own, models.ActionSwindle, target)
	log.Debug().
		Int("swindler", own).
		Int("target", target).
		Int("kept", len(out.keep)).
		Int("given", len(out.give)).
		Float64("kept_money", out.keepMoney).
		Msg("swindler acted")
}
