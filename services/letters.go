package services

import (
	"fmt"
	"math/rand"

	"github.com/qianlnk/hotel/models"
)

// Letters writes the text residents leave behind: threats, reports and lectures
type Letters struct {
	rng *rand.Rand
}

// NewLetters creates a letter writer drawing from rng.
func NewLetters(rng *rand.Rand) *Letters {
	return &Letters{rng: rng}
}

func (l *Letters) pick(lines []string) string {
	return lines[l.rng.Intn(len(lines))]
}

// Threat is slipped under the target's door by a killer.
func (l *Letters) Threat(target string) string {
	return fmt.Sprintf(l.pick([]string{
		"%s, keep your door locked tonight. It will not help.",
		"We know what you saw, %s. Forget it.",
		"%s, the walls in this hotel are thin. So is your luck.",
	}), target)
}

// Suspicion describes why apartment suspected was reported.
func (l *Letters) Suspicion(suspected int, docs []models.Document, reason string) string {
	switch {
	case reason != "":
		return fmt.Sprintf("Apartment %d: %s", suspected, reason)
	case len(docs) > 1:
		return fmt.Sprintf("Apartment %d holds %d sets of papers", suspected, len(docs))
	}
	for _, doc := range docs {
		if doc.Role.IsBad() {
			return fmt.Sprintf("Apartment %d holds %s", suspected, doc)
		}
	}
	return fmt.Sprintf("Apartment %d behaves oddly", suspected)
}

// Lecture topic of a professor's nightly talk.
func (l *Letters) Lecture() string {
	return l.pick([]string{
		"the history of hotel keys",
		"why nobody trusts a man with two passports",
		"the ethics of knocking after midnight",
		"elementary deduction",
	})
}
