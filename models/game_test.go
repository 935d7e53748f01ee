package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"killer", Killer, true},
		{"  Doctor ", Doctor, true},
		{"oldlady", OldWoman, true},
		{"old-woman", OldWoman, true},
		{"policeman", Police, true},
		{"banker", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRoleOrder(t *testing.T) {
	assert.Equal(t, 0, Killer.Priority())
	assert.Equal(t, 8, Professor.Priority())
	assert.Equal(t, len(Roles()), Role("banker").Priority())

	assert.Equal(t, "Old Woman", OldWoman.String())
	assert.Equal(t, "Judge", Judge.String())

	assert.True(t, Killer.IsBad())
	assert.True(t, Swindler.IsBad())
	assert.False(t, Police.IsBad())
}

func TestIncapacitating(t *testing.T) {
	for _, s := range []SuperStatus{Asleep, Unconscious, Arrested} {
		assert.True(t, s.Incapacitating(), s)
	}
	for _, s := range []SuperStatus{None, Drugged, Overdosed, Wounded, Disinterested} {
		assert.False(t, s.Incapacitating(), s)
	}
}

func TestParsePolicies(t *testing.T) {
	flow, ok := ParseFlowSequence("Chaotic")
	assert.True(t, ok)
	assert.Equal(t, FlowChaotic, flow)
	_, ok = ParseFlowSequence("sideways")
	assert.False(t, ok)

	mode, ok := ParseSwindlerMode("goodguy")
	assert.True(t, ok)
	assert.Equal(t, SwindlerGoodGuy, mode)

	res, ok := ParseJudgeResolution("MAJORITY")
	assert.True(t, ok)
	assert.Equal(t, ResolutionMajority, res)
}

func TestHotelConfigValidate(t *testing.T) {
	valid := HotelConfig{ID: "h", NumRooms: 16, RoomsPerStory: 4, Capital: 1, EntranceFee: 1, DailyCosts: 1}
	assert.NoError(t, valid.Validate())

	broken := []func(c *HotelConfig){
		func(c *HotelConfig) { c.ID = "" },
		func(c *HotelConfig) { c.NumRooms = 0 },
		func(c *HotelConfig) { c.RoomsPerStory = -1 },
		func(c *HotelConfig) { c.Capital = 0 },
		func(c *HotelConfig) { c.EntranceFee = 0 },
		func(c *HotelConfig) { c.DailyCosts = 0 },
	}
	for _, breakIt := range broken {
		c := valid
		breakIt(&c)
		assert.Error(t, c.Validate())
	}
}

func TestDocumentString(t *testing.T) {
	assert.Equal(t, "Old Woman papers of Olga", Document{Role: OldWoman, IssuedTo: "Olga"}.String())
}
