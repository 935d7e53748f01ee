package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/qianlnk/hotel/models"
)

// DefaultRetellFormat renders a resident as "name (role)".
const DefaultRetellFormat = "n (r)"

const nothingHappened = "Nothing happened?!?"

// History append-only ledger of everything residents did
type History struct {
	actions []models.Action
	day     int
	mutex   sync.RWMutex
}

// NewHistory starts the ledger at day 1.
func NewHistory() *History {
	return &History{
		actions: make([]models.Action, 0),
		day:     1,
	}
}

// AddAction appends an entry; day defaults to the ledger's current day.
func (h *History) AddAction(actor int, kind models.ActionKind, target int, day ...int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	d := h.day
	if len(day) > 0 {
		d = day[0]
	}
	h.actions = append(h.actions, models.Action{
		Day:    d,
		Actor:  actor,
		Kind:   kind,
		Target: target,
	})
}

// HasVisited reports whether actor ever acted on target, on any day.
func (h *History) HasVisited(actor, target int) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, action := range h.actions {
		if action.Actor == actor && action.Target == target {
			return true
		}
	}
	return false
}

// Day is the ledger's current day.
func (h *History) Day() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.day
}

// NextDay advances the day counter. Entries are never purged.
func (h *History) NextDay() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.day++
}

// Actions returns a copy of the ledger.
func (h *History) Actions() []models.Action {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	actions := make([]models.Action, len(h.actions))
	copy(actions, h.actions)
	return actions
}

// RetellLastNight renders the entries of the current day.
func (h *History) RetellLastNight(hotel *Hotel, format string) string {
	day := h.Day()
	return h.retell(hotel, format, &day)
}

// RetellDay renders the entries of one given day.
func (h *History) RetellDay(hotel *Hotel, format string, day int) string {
	return h.retell(hotel, format, &day)
}

// RetellAllHistory renders every entry.
func (h *History) RetellAllHistory(hotel *Hotel, format string) string {
	return h.retell(hotel, format, nil)
}

func (h *History) retell(hotel *Hotel, format string, day *int) string {
	if format == "" {
		format = DefaultRetellFormat
	}

	var sb strings.Builder
	for _, action := range h.Actions() {
		if day != nil && action.Day != *day {
			continue
		}
		actor := formatResident(hotel.ResidentAt(action.Actor), format)
		target := formatResident(hotel.ResidentAt(action.Target), format)
		fmt.Fprintf(&sb, "On day %d, %s %s %s\n", action.Day, actor, action.Kind, target)
	}
	if sb.Len() == 0 {
		return nothingHappened
	}
	return sb.String()
}

// formatResident applies the format mini-language to one resident.
func formatResident(r *Resident, format string) string {
	if r == nil {
		return "None"
	}
	role := r.Strategy().ConfessRole()

	r.Lock()
	defer r.Unlock()

	var sb strings.Builder
	for _, c := range format {
		switch c {
		case '#':
			fmt.Fprintf(&sb, "%d", r.HomeApartment)
		case '$':
			fmt.Fprintf(&sb, "%.2f", r.Balance)
		case 'a':
			fmt.Fprintf(&sb, "%d", r.Age)
		case 'n':
			sb.WriteString(r.Name)
		case 's':
			sb.WriteString(string(r.Status))
		case 'r':
			sb.WriteString(role.String())
		case 't':
			sb.WriteString(string(r.Type))
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
