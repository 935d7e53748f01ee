package services

import (
	"sync"

	"github.com/qianlnk/hotel/models"
)

// Resident a guest of the hotel. The same pointer is held by its apartment and
// by the scheduler, so every field access goes through Lock/Unlock or View.
type Resident struct {
	Name             string
	Age              int
	Balance          float64
	HomeApartment    int
	CurrentApartment int
	Status           models.Status
	SuperStatus      models.SuperStatus
	Type             models.ResidentType
	Personality      models.Personality
	Documents        []models.Document

	strategy RoleStrategy
	mu       sync.Mutex
}

// NewResident creates a living resident carrying the papers of its own role.
func NewResident(name string, age int, balance float64, kind models.ResidentType, strategy RoleStrategy) *Resident {
	return &Resident{
		Name:             name,
		Age:              age,
		Balance:          balance,
		HomeApartment:    -1,
		CurrentApartment: -1,
		Status:           models.Alive,
		SuperStatus:      models.None,
		Type:             kind,
		Personality:      models.PersonalityRandom,
		Documents:        []models.Document{{Role: strategy.ConfessRole(), IssuedTo: name}},
		strategy:         strategy,
	}
}

// Lock acquires the resident's lock
func (r *Resident) Lock() {
	r.mu.Lock()
}

// Unlock releases the resident's lock
func (r *Resident) Unlock() {
	r.mu.Unlock()
}

// Strategy is fixed at creation and safe to read without the lock.
func (r *Resident) Strategy() RoleStrategy {
	return r.strategy
}

// View copies the display fields in one short critical section.
func (r *Resident) View() models.ResidentView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Resident) viewLocked() models.ResidentView {
	return models.ResidentView{
		Name:             r.Name,
		Age:              r.Age,
		Balance:          r.Balance,
		HomeApartment:    r.HomeApartment,
		CurrentApartment: r.CurrentApartment,
		Status:           r.Status,
		SuperStatus:      r.SuperStatus,
		Type:             r.Type,
		Documents:        len(r.Documents),
	}
}

// DocumentsCopy returns the resident's papers.
func (r *Resident) DocumentsCopy() []models.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	docs := make([]models.Document, len(r.Documents))
	copy(docs, r.Documents)
	return docs
}

// canAct reports whether the resident takes its turn this night.
func (r *Resident) canAct() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status == models.Alive && !r.SuperStatus.Incapacitating()
}

// resolveNight applies the end-of-night transitions.
func (r *Resident) resolveNight() {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.SuperStatus {
	case models.Unconscious:
		r.SuperStatus = models.Asleep
	case models.Wounded, models.Overdosed:
		r.Status = models.Dead
		r.SuperStatus = models.None
	default:
		r.SuperStatus = models.None
	}
}
