package models

import "fmt"

// HotelConfig building parameters; the only state that gets persisted
type HotelConfig struct {
	ID            string  `json:"id"`
	NumRooms      int     `json:"num_rooms"`
	RoomsPerStory int     `json:"rooms_per_story"`
	Capital       float64 `json:"capital"`
	EntranceFee   float64 `json:"entrance_fee"`
	DailyCosts    float64 `json:"daily_costs"`
}

// Validate reports the first setting that blocks finishing the setup.
func (c HotelConfig) Validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("hotel id is required")
	case c.NumRooms <= 0:
		return fmt.Errorf("number of rooms must be positive")
	case c.RoomsPerStory <= 0:
		return fmt.Errorf("rooms per story must be positive")
	case c.Capital <= 0:
		return fmt.Errorf("capital must be positive")
	case c.EntranceFee <= 0:
		return fmt.Errorf("entrance fee must be positive")
	case c.DailyCosts <= 0:
		return fmt.Errorf("daily costs must be positive")
	}
	return nil
}

// Document identity credential tagged with a role
type Document struct {
	Role     Role   `json:"role"`
	IssuedTo string `json:"issued_to"`
}

func (d Document) String() string {
	return fmt.Sprintf("%s papers of %s", d.Role, d.IssuedTo)
}

// Suspicion accusation waiting for the judges
type Suspicion struct {
	From         int    `json:"from"`
	Suspected    int    `json:"suspected"`
	Description  string `json:"description"`
	ForVotes     int    `json:"for_votes"`
	AgainstVotes int    `json:"against_votes"`
}

// ActionKind verb written into the ledger
type ActionKind string

const (
	ActionKill        ActionKind = "killed"
	ActionThreaten    ActionKind = "threatened"
	ActionBribe       ActionKind = "bribed"
	ActionRob         ActionKind = "robbed"
	ActionHeal        ActionKind = "healed"
	ActionClean       ActionKind = "cleaned the apartment of"
	ActionVisit       ActionKind = "paid a visit to"
	ActionSwindle     ActionKind = "swindled"
	ActionSleep       ActionKind = "slept at the door of"
	ActionAvenge      ActionKind = "avenged themself on"
	ActionInvestigate ActionKind = "investigated"
	ActionJudge       ActionKind = "judged"
	ActionLecture     ActionKind = "lectured"
)

// Action ledger entry
type Action struct {
	Day    int        `json:"day"`
	Actor  int        `json:"actor"`
	Kind   ActionKind `json:"kind"`
	Target int        `json:"target"`
}

// ResidentView display fields of a resident; hidden role excluded
type ResidentView struct {
	Name             string       `json:"name"`
	Age              int          `json:"age"`
	Balance          float64      `json:"balance"`
	HomeApartment    int          `json:"home_apartment"`
	CurrentApartment int          `json:"current_apartment"`
	Status           Status       `json:"status"`
	SuperStatus      SuperStatus  `json:"super_status"`
	Type             ResidentType `json:"type"`
	Documents        int          `json:"documents"`
}

// ApartmentView display fields of an apartment
type ApartmentView struct {
	Number   int           `json:"number"`
	Floor    int           `json:"floor"`
	Position int           `json:"position"`
	Open     bool          `json:"open"`
	Mail     int           `json:"mail"`
	Guests   []int         `json:"guests"`
	Resident *ResidentView `json:"resident,omitempty"`
}

// BoardView snapshot handed to renderers and spectators
type BoardView struct {
	HotelID     string          `json:"hotel_id"`
	Phase       DayPhase        `json:"phase"`
	DaysPassed  int             `json:"days_passed"`
	Capital     float64         `json:"capital"`
	Apartments  []ApartmentView `json:"apartments"`
	Suspicions  int             `json:"suspicions"`
	Outcome     Outcome         `json:"outcome"`
	CurrentTurn int             `json:"current_turn"`
}
