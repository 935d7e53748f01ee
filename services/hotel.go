package services

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/models"
)

// Hotel owns every apartment and the pool of roles not handed out yet
type Hotel struct {
	Config     models.HotelConfig
	Apartments []*Apartment

	roleNames []string
	rolePool  []models.Role
}

// NewHotel creates a hotel without apartments; Reinitialize builds them.
func NewHotel(cfg models.HotelConfig, roleNames []string) *Hotel {
	return &Hotel{
		Config:     cfg,
		Apartments: make([]*Apartment, 0),
		roleNames:  roleNames,
	}
}

// Reinitialize rebuilds the apartments and refills the role pool.
func (h *Hotel) Reinitialize() {
	h.Apartments = make([]*Apartment, 0, h.Config.NumRooms)
	for n := 0; n < h.Config.NumRooms; n++ {
		floor, position, _ := h.GetRoom(n)
		h.Apartments = append(h.Apartments, NewApartment(n, floor, position))
	}
	h.rolePool = generateRoles(h.roleNames)
	log.Info().
		Str("hotel", h.Config.ID).
		Int("rooms", h.Config.NumRooms).
		Int("roles", len(h.rolePool)).
		Msg("hotel initialized")
}

func (h *Hotel) stories() int {
	if h.Config.RoomsPerStory <= 0 {
		return 0
	}
	return (h.Config.NumRooms + h.Config.RoomsPerStory - 1) / h.Config.RoomsPerStory
}

// GetRoom locates an apartment. Numbers run up the stairwell first, so
// apartment n sits on floor n mod stories at corridor position n div stories.
func (h *Hotel) GetRoom(n int) (floor, position int, ok bool) {
	stories := h.stories()
	if n < 0 || n >= h.Config.NumRooms || stories == 0 {
		return 0, 0, false
	}
	return n % stories, n / stories, true
}

// Apartment returns the apartment numbered n.
func (h *Hotel) Apartment(n int) (*Apartment, bool) {
	if n < 0 || n >= len(h.Apartments) {
		return nil, false
	}
	return h.Apartments[n], true
}

// ResidentAt returns whoever lives in apartment n, or nil.
func (h *Hotel) ResidentAt(n int) *Resident {
	apt, ok := h.Apartment(n)
	if !ok {
		return nil
	}
	return apt.Resident
}

// Residents returns every resident in apartment order.
func (h *Hotel) Residents() []*Resident {
	residents := make([]*Resident, 0, len(h.Apartments))
	for _, apt := range h.Apartments {
		if apt.Resident != nil {
			residents = append(residents, apt.Resident)
		}
	}
	return residents
}

// AvailableRooms lists the vacant apartments.
func (h *Hotel) AvailableRooms() []int {
	rooms := make([]int, 0)
	for _, apt := range h.Apartments {
		if apt.IsAvailable() {
			rooms = append(rooms, apt.Number)
		}
	}
	return rooms
}

// AvailableRoomsCount counts the vacant apartments.
func (h *Hotel) AvailableRoomsCount() int {
	count := 0
	for _, apt := range h.Apartments {
		if apt.IsAvailable() {
			count++
		}
	}
	return count
}

// IsRoomAvailable reports whether apartment n exists and is vacant.
func (h *Hotel) IsRoomAvailable(n int) bool {
	apt, ok := h.Apartment(n)
	return ok && apt.IsAvailable()
}

// FindNextAvailableRoom returns the lowest vacant apartment number.
func (h *Hotel) FindNextAvailableRoom() (int, bool) {
	for _, apt := range h.Apartments {
		if apt.IsAvailable() {
			return apt.Number, true
		}
	}
	return 0, false
}

// GetReadyApartments lists open apartments whose resident is alive, minus exclude.
func (h *Hotel) GetReadyApartments(exclude ...int) []int {
	ready := make([]int, 0)
	for _, apt := range h.Apartments {
		if !apt.Open || apt.Resident == nil || contains(exclude, apt.Number) {
			continue
		}
		if apt.Resident.View().Status != models.Alive {
			continue
		}
		ready = append(ready, apt.Number)
	}
	return ready
}

// AddResident moves r into apartment n and charges the entrance fee. An
// occupied or unknown apartment is logged and left untouched.
func (h *Hotel) AddResident(r *Resident, n int) bool {
	apt, ok := h.Apartment(n)
	if !ok {
		log.Warn().Int("apartment", n).Err(ErrNoSuchRoom).Msg("resident not added")
		return false
	}
	if err := apt.assignResident(r); err != nil {
		log.Warn().Int("apartment", n).Err(err).Msg("resident not added")
		return false
	}

	r.Lock()
	r.HomeApartment = n
	r.CurrentApartment = n
	fee := h.Config.EntranceFee
	if fee > r.Balance {
		fee = r.Balance
	}
	if fee > 0 {
		r.Balance -= fee
	}
	name := r.Name
	r.Unlock()

	if fee > 0 {
		h.Config.Capital += fee
	}
	log.Info().Int("apartment", n).Str("name", name).Float64("fee", fee).Msg("resident settled")
	return true
}

// DrawRole hands out a random role from the pool.
func (h *Hotel) DrawRole(rng *rand.Rand) (models.Role, error) {
	role, rest, ok := drawRole(h.rolePool, rng)
	if !ok {
		return "", ErrRolePoolEmpty
	}
	h.rolePool = rest
	return role, nil
}

// PoolSize counts the roles still unassigned.
func (h *Hotel) PoolSize() int {
	return len(h.rolePool)
}

// CloseApartment locks apartment n for the rest of the session.
func (h *Hotel) CloseApartment(n int) error {
	apt, ok := h.Apartment(n)
	if !ok {
		return fmt.Errorf("close apartment %d: %w", n, ErrNoSuchRoom)
	}
	if !apt.Open {
		return fmt.Errorf("close apartment %d: %w", n, ErrApartmentClosed)
	}
	apt.Open = false
	return nil
}

// DeliverMail appends a message to the mailbox of apartment n.
func (h *Hotel) DeliverMail(n int, message string) error {
	apt, ok := h.Apartment(n)
	if !ok {
		return fmt.Errorf("deliver mail to %d: %w", n, ErrNoSuchRoom)
	}
	apt.Mailbox = append(apt.Mailbox, message)
	return nil
}

// AddGuest registers apartment guest as visiting apartment n.
func (h *Hotel) AddGuest(n, guest int) error {
	apt, ok := h.Apartment(n)
	if !ok {
		return fmt.Errorf("add guest to %d: %w", n, ErrNoSuchRoom)
	}
	apt.Guests = append(apt.Guests, guest)
	return nil
}

// sendEveryoneHome ends the visits of the night.
func (h *Hotel) sendEveryoneHome() {
	for _, apt := range h.Apartments {
		apt.Guests = apt.Guests[:0]
		if apt.Resident == nil {
			continue
		}
		apt.Resident.Lock()
		apt.Resident.CurrentApartment = apt.Resident.HomeApartment
		apt.Resident.Unlock()
	}
}

// chargeDailyCosts collects the service fee from every living resident.
func (h *Hotel) chargeDailyCosts() float64 {
	collected := 0.0
	for _, r := range h.Residents() {
		r.Lock()
		if r.Status == models.Alive {
			cost := h.Config.DailyCosts
			if cost > r.Balance {
				cost = r.Balance
			}
			if cost > 0 {
				r.Balance -= cost
				collected += cost
			}
		}
		r.Unlock()
	}
	h.Config.Capital += collected
	return collected
}

// Snapshot copies the apartments for rendering.
func (h *Hotel) Snapshot() []models.ApartmentView {
	views := make([]models.ApartmentView, 0, len(h.Apartments))
	for _, apt := range h.Apartments {
		view := models.ApartmentView{
			Number:   apt.Number,
			Floor:    apt.Floor,
			Position: apt.Position,
			Open:     apt.Open,
			Mail:     len(apt.Mailbox),
			Guests:   append([]int(nil), apt.Guests...),
		}
		if apt.Resident != nil {
			rv := apt.Resident.View()
			view.Resident = &rv
		}
		views = append(views, view)
	}
	return views
}

func contains(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
