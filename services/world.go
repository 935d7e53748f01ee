package services

import (
	"math/rand"
	"sort"

	"github.com/qianlnk/hotel/models"
)

// Rules tunables of the role protocols
type Rules struct {
	SwindlerMode    models.SwindlerMode
	JudgeVoteFor    float64
	JudgeResolution models.JudgeResolution
}

// DefaultRules mirrors the configuration defaults.
func DefaultRules() Rules {
	return Rules{
		SwindlerMode:    models.SwindlerRandom,
		JudgeVoteFor:    0.8,
		JudgeResolution: models.ResolutionNone,
	}
}

// World everything a strategy may touch during a turn
type World struct {
	Hotel          *Hotel
	History        *History
	Investigations *Investigations
	// CredibleSources apartments whose accusations the police trust. Nothing
	// fills it during play; it is seeded by callers.
	CredibleSources []int
	Decider         Decider
	Rand            *rand.Rand
	Rules           Rules
}

// NewWorld wires a world around hotel.
func NewWorld(hotel *Hotel, history *History, decider Decider, rng *rand.Rand, rules Rules) *World {
	return &World{
		Hotel:           hotel,
		History:         history,
		Investigations:  NewInvestigations(),
		CredibleSources: make([]int, 0),
		Decider:         decider,
		Rand:            rng,
		Rules:           rules,
	}
}

// IsCredible reports whether apartment n is a credible source.
func (w *World) IsCredible(n int) bool {
	return contains(w.CredibleSources, n)
}

// Investigations pending suspicions keyed by the suspected apartment
type Investigations struct {
	pending map[int]*models.Suspicion
}

// NewInvestigations creates an empty queue.
func NewInvestigations() *Investigations {
	return &Investigations{pending: make(map[int]*models.Suspicion)}
}

// Enqueue files s, replacing any pending suspicion against the same apartment.
func (q *Investigations) Enqueue(s models.Suspicion) (replaced bool) {
	_, replaced = q.pending[s.Suspected]
	q.pending[s.Suspected] = &s
	return replaced
}

// Get returns the pending suspicion against target.
func (q *Investigations) Get(target int) (models.Suspicion, bool) {
	s, ok := q.pending[target]
	if !ok {
		return models.Suspicion{}, false
	}
	return *s, true
}

// Targets lists the suspected apartments in ascending order.
func (q *Investigations) Targets() []int {
	targets := make([]int, 0, len(q.pending))
	for target := range q.pending {
		targets = append(targets, target)
	}
	sort.Ints(targets)
	return targets
}

// Vote adds one judge vote to the suspicion against target.
func (q *Investigations) Vote(target int, inFavor bool) bool {
	s, ok := q.pending[target]
	if !ok {
		return false
	}
	if inFavor {
		s.ForVotes++
	} else {
		s.AgainstVotes++
	}
	return true
}

// Remove drops the suspicion against target.
func (q *Investigations) Remove(target int) {
	delete(q.pending, target)
}

// Len counts pending suspicions.
func (q *Investigations) Len() int {
	return len(q.pending)
}
