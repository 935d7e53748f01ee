package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qianlnk/hotel/models"
)

type mockDecider struct {
	mock.Mock
}

func (m *mockDecider) ChooseTarget(prompt string, options []int) (int, error) {
	args := m.Called(prompt, options)
	return args.Int(0), args.Error(1)
}

func (m *mockDecider) ChooseAction(prompt string, options []string) (int, error) {
	args := m.Called(prompt, options)
	return args.Int(0), args.Error(1)
}

func (m *mockDecider) Confirm(prompt string) (bool, error) {
	args := m.Called(prompt)
	return args.Bool(0), args.Error(1)
}

func (m *mockDecider) Inform(message string) {
	m.Called(message)
}

type recordingNotifier struct {
	boards        []models.BoardView
	announcements []string
}

func (n *recordingNotifier) Publish(board models.BoardView) {
	n.boards = append(n.boards, board)
}

func (n *recordingNotifier) Announce(day int, text string) {
	n.announcements = append(n.announcements, text)
}

func testConfig(rooms, perStory int) models.HotelConfig {
	return models.HotelConfig{
		ID:            "test",
		NumRooms:      rooms,
		RoomsPerStory: perStory,
		Capital:       1000,
		EntranceFee:   10,
		DailyCosts:    1,
	}
}

func newTestWorld(t *testing.T, rooms int, decider Decider) *World {
	t.Helper()
	hotel := NewHotel(testConfig(rooms, 4), nil)
	hotel.Reinitialize()
	return NewWorld(hotel, NewHistory(), decider, rand.New(rand.NewSource(1)), DefaultRules())
}

// settle moves a resident with the given strategy into apartment n.
func settle(t *testing.T, w *World, n int, name string, kind models.ResidentType, strategy RoleStrategy) *Resident {
	t.Helper()
	r := NewResident(name, 30, 110, kind, strategy)
	require.True(t, w.Hotel.AddResident(r, n))
	return r
}

func actionsOf(h *History, kind models.ActionKind) []models.Action {
	var out []models.Action
	for _, a := range h.Actions() {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
