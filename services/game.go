package services

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

var (
	ErrHotelNotSet        = errors.New("hotel is not set up")
	ErrRoomOccupied       = errors.New("apartment is already occupied")
	ErrNoSuchRoom         = errors.New("no such apartment")
	ErrNoVacancy          = errors.New("no vacant apartment left")
	ErrRolePoolEmpty      = errors.New("no role left in the pool")
	ErrApartmentClosed    = errors.New("apartment is closed")
	ErrNoActors           = errors.New("nobody lives in the hotel")
	ErrFlowNotImplemented = errors.New("flow sequence is not implemented")
	ErrInvalidSetting     = errors.New("invalid setting")
	ErrInputClosed        = errors.New("input closed")
	ErrGameOver           = errors.New("game is over")

	errUsage = errors.New("wrong arguments")
)

// generateRoles builds the pool of unassigned roles from the configured list.
// Unknown names are skipped with a warning.
func generateRoles(names []string) []models.Role {
	roles := make([]models.Role, 0, len(names))
	for _, name := range names {
		role, ok := models.ParseRole(name)
		if !ok {
			log.Warn().Str("role", name).Msg("unknown role in configuration, skipped")
			continue
		}
		roles = append(roles, role)
	}
	if len(roles) == 0 {
		roles = append(roles, models.Roles()...)
	}
	log.Debug().Int("roles", len(roles)).Msg("role pool generated")
	return roles
}

// drawRole removes and returns a random role from the pool.
func drawRole(pool []models.Role, rng *rand.Rand) (models.Role, []models.Role, bool) {
	if len(pool) == 0 {
		return "", pool, false
	}
	i := rng.Intn(len(pool))
	role := pool[i]
	rest := append(pool[:i:i], pool[i+1:]...)
	return role, rest, true
}

// checkGameEnd decides the outcome from the living residents.
func checkGameEnd(residents []*Resident) models.Outcome {
	killers, others := 0, 0
	for _, r := range residents {
		v := r.View()
		if v.Status != models.Alive {
			continue
		}
		if r.Strategy().ConfessRole() == models.Killer {
			killers++
		} else {
			others++
		}
	}

	switch {
	case killers == 0:
		return models.ResidentsWin
	case killers >= others:
		return models.KillerWins
	default:
		return models.GameOngoing
	}
}
