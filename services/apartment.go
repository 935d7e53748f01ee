package services

// Apartment numbered unit of the hotel
type Apartment struct {
	Number   int
	Floor    int
	Position int
	Open     bool
	Mailbox  []string
	Guests   []int
	Resident *Resident
}

// NewApartment creates an open, vacant apartment.
func NewApartment(number, floor, position int) *Apartment {
	return &Apartment{
		Number:   number,
		Floor:    floor,
		Position: position,
		Open:     true,
		Mailbox:  make([]string, 0),
		Guests:   make([]int, 0),
	}
}

// IsAvailable reports whether nobody lives here.
func (a *Apartment) IsAvailable() bool {
	return a.Resident == nil
}

// assignResident never replaces an existing resident.
func (a *Apartment) assignResident(r *Resident) error {
	if a.Resident != nil {
		return ErrRoomOccupied
	}
	a.Resident = r
	return nil
}
