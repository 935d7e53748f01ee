package services

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// RoleStrategy behavior shared by every role
type RoleStrategy interface {
	// ConfessRole is a pure identity lookup.
	ConfessRole() models.Role
	// ChooseTarget picks a ready apartment other than own; false when there is none.
	ChooseTarget(own int, w *World) (int, bool)
	// PerformAction runs the human or the bot protocol of the role.
	PerformAction(own int, isHuman bool, w *World, h *History)
}

// roleProtocol is implemented by every concrete strategy.
type roleProtocol interface {
	RoleStrategy
	performHuman(own int, w *World, h *History)
	performBot(own int, w *World, h *History)
}

func dispatch(p roleProtocol, own int, isHuman bool, w *World, h *History) {
	if isHuman {
		p.performHuman(own, w, h)
	} else {
		p.performBot(own, w, h)
	}
}

type baseStrategy struct {
	role models.Role
}

func (b baseStrategy) ConfessRole() models.Role {
	return b.role
}

func (b baseStrategy) ChooseTarget(own int, w *World) (int, bool) {
	r := w.Hotel.ResidentAt(own)
	isHuman := r != nil && r.View().Type == models.Human
	return b.chooseTarget(own, isHuman, w)
}

func (b baseStrategy) chooseTarget(own int, isHuman bool, w *World) (int, bool) {
	ready := w.Hotel.GetReadyApartments(own)
	if len(ready) == 0 {
		b.noTarget(own)
		return 0, false
	}

	if isHuman {
		target, err := w.Decider.ChooseTarget(fmt.Sprintf("%s, choose your target.", b.role), ready)
		if err != nil {
			log.Warn().Err(err).Int("apartment", own).Str("role", string(b.role)).Msg("no decision made")
			return 0, false
		}
		return target, true
	}

	return NewAIPlayer(own, personalityOf(w.Hotel.ResidentAt(own)), w).SelectTarget(ready), true
}

func (b baseStrategy) noTarget(own int) {
	log.Info().Int("apartment", own).Str("role", string(b.role)).Msg("no available apartments to perform action")
}

func (b baseStrategy) bot(own int, w *World) *AIPlayer {
	return NewAIPlayer(own, personalityOf(w.Hotel.ResidentAt(own)), w)
}

func personalityOf(r *Resident) models.Personality {
	if r == nil {
		return models.PersonalityRandom
	}
	r.Lock()
	defer r.Unlock()
	return r.Personality
}

// inspect reads the papers of whoever lives at target.
func inspect(w *World, target int) []models.Document {
	r := w.Hotel.ResidentAt(target)
	if r == nil {
		return nil
	}
	return r.DocumentsCopy()
}

func describeDocuments(target int, docs []models.Document) string {
	if len(docs) == 0 {
		return fmt.Sprintf("Apartment %d holds no documents.", target)
	}
	text := fmt.Sprintf("Apartment %d holds:", target)
	for _, doc := range docs {
		text += "\n  - " + doc.String()
	}
	return text
}

// StrategyFactory builds a fresh strategy for one resident.
type StrategyFactory func(rules Rules) RoleStrategy

// Registry maps roles to strategy factories
type Registry struct {
	factories map[models.Role]StrategyFactory
}

// NewRegistry registers the nine built-in roles.
func NewRegistry() *Registry {
	reg := &Registry{factories: make(map[models.Role]StrategyFactory)}
	reg.Register(models.Killer, func(Rules) RoleStrategy { return NewKillerStrategy() })
	reg.Register(models.Police, func(Rules) RoleStrategy { return NewPoliceStrategy() })
	reg.Register(models.Doctor, func(Rules) RoleStrategy { return NewDoctorStrategy() })
	reg.Register(models.Janitor, func(Rules) RoleStrategy { return NewJanitorStrategy() })
	reg.Register(models.OldWoman, func(Rules) RoleStrategy { return NewOldWomanStrategy() })
	reg.Register(models.Swindler, func(r Rules) RoleStrategy { return NewSwindlerStrategy(r.SwindlerMode) })
	reg.Register(models.Avenger, func(Rules) RoleStrategy { return NewAvengerStrategy() })
	reg.Register(models.Judge, func(Rules) RoleStrategy { return NewJudgeStrategy() })
	reg.Register(models.Professor, func(Rules) RoleStrategy { return NewProfessorStrategy() })
	return reg
}

// Register adds or replaces the factory for role.
func (reg *Registry) Register(role models.Role, factory StrategyFactory) {
	reg.factories[role] = factory
}

// New builds the strategy for role.
func (reg *Registry) New(role models.Role, rules Rules) (RoleStrategy, error) {
	factory, ok := reg.factories[role]
	if !ok {
		return nil, fmt.Errorf("no strategy for role %q", role)
	}
	return factory(rules), nil
}

// Roles lists the registered roles in priority order.
func (reg *Registry) Roles() []models.Role {
	roles := make([]models.Role, 0, len(reg.factories))
	for role := range reg.factories {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].Priority() < roles[j].Priority()
	})
	return roles
}
