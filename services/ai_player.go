package services

import (
	"github.com/qianlnk/hotel/models"
)

// AIPlayer generated decisions for a bot resident
type AIPlayer struct {
	Apartment   int
	Personality models.Personality
	World       *World
}

// NewAIPlayer creates a bot brain for the resident at apartment.
func NewAIPlayer(apartment int, personality models.Personality, world *World) *AIPlayer {
	return &AIPlayer{
		Apartment:   apartment,
		Personality: personality,
		World:       world,
	}
}

// SelectTarget picks one of options according to the personality.
func (ai *AIPlayer) SelectTarget(options []int) int {
	var potentialTargets []int

	switch ai.Personality {
	case models.PersonalityAggressive:
		// whoever carries the most papers
		most := -1
		for _, n := range options {
			r := ai.World.Hotel.ResidentAt(n)
			if r == nil {
				continue
			}
			docs := r.View().Documents
			switch {
			case docs > most:
				most = docs
				potentialTargets = []int{n}
			case docs == most:
				potentialTargets = append(potentialTargets, n)
			}
		}

	case models.PersonalityCautious:
		for _, n := range options {
			if !ai.World.History.HasVisited(ai.Apartment, n) {
				potentialTargets = append(potentialTargets, n)
			}
		}
	}

	if len(potentialTargets) == 0 {
		potentialTargets = options
	}
	return potentialTargets[ai.World.Rand.Intn(len(potentialTargets))]
}

// Chance returns true with probability p.
func (ai *AIPlayer) Chance(p float64) bool {
	return ai.World.Rand.Float64() < p
}
