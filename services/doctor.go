package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// DoctorStrategy drugs a patient; a second dose the same night is an overdose
type DoctorStrategy struct {
	baseStrategy
}

// NewDoctorStrategy creates the doctor protocol.
func NewDoctorStrategy() *DoctorStrategy {
	return &DoctorStrategy{baseStrategy{role: models.Doctor}}
}

func (s *DoctorStrategy) PerformAction(own int, isHuman bool, w *World, h *History) {
	dispatch(s, own, isHuman, w, h)
}

func (s *DoctorStrategy) performHuman(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, true, w)
	if !ok {
		return
	}
	status := s.heal(own, target, w, h)
	w.Decider.Inform(fmt.Sprintf("Your patient in apartment %d is now %s.", target, status))
}

func (s *DoctorStrategy) performBot(own int, w *World, h *History) {
	target, ok := s.chooseTarget(own, false, w)
	if !ok {
		return
	}
	s.heal(own, target, w, h)
}

func (s *DoctorStrategy) heal(own, target int, w *World, h *History) models.SuperStatus {
	patient := w.Hotel.ResidentAt(target)
	if patient == nil {
		return models.None
	}

	patient.Lock()
	if patient.SuperStatus == models.Drugged {
		patient.SuperStatus = models.Overdosed
	} else {
		patient.SuperStatus = models.Drugged
	}
	status := patient.SuperStatus
	patient.Unlock()

	h.AddAction(own, models.ActionHeal, target)
	log.Debug().Int("doctor", own).Int("patient", target).Str("status", string(status)).Msg("doctor acted")
	return status
}
