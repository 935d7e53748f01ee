package models

import "strings"

// Role hidden profession of a resident
type Role string

const (
	Killer    Role = "killer"    // kills, threatens, bribes or robs
	Police    Role = "police"    // investigates documents
	Doctor    Role = "doctor"    // heals, sometimes too much
	Janitor   Role = "janitor"   // closes apartments
	OldWoman  Role = "oldwoman"  // pays visits
	Swindler  Role = "swindler"  // shuffles documents and money
	Avenger   Role = "avenger"   // kills whoever it watched before
	Judge     Role = "judge"     // votes on suspicions
	Professor Role = "professor" // lectures
)

// Roles returns every role in canonical priority order.
func Roles() []Role {
	return []Role{Killer, Police, Doctor, Janitor, OldWoman, Swindler, Avenger, Judge, Professor}
}

// Priority is the position of the role in the canonical order, or len(Roles()) if unknown.
func (r Role) Priority() int {
	for i, role := range Roles() {
		if role == r {
			return i
		}
	}
	return len(Roles())
}

// IsBad reports whether holding this role's document is evidence on its own.
func (r Role) IsBad() bool {
	return r == Killer || r == Swindler
}

func (r Role) String() string {
	switch r {
	case OldWoman:
		return "Old Woman"
	case "":
		return "Nobody"
	default:
		return strings.ToUpper(string(r[:1])) + string(r[1:])
	}
}

// ParseRole accepts role names case-insensitively, including "oldlady".
func ParseRole(s string) (Role, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "oldlady", "old_lady", "old_woman", "old-woman":
		return OldWoman, true
	case "policeman":
		return Police, true
	}
	for _, role := range Roles() {
		if string(role) == name {
			return role, true
		}
	}
	return "", false
}

// Status base life status
type Status string

const (
	Alive Status = "alive"
	Dead  Status = "dead"
)

// SuperStatus transient condition layered on top of Status
type SuperStatus string

const (
	None           SuperStatus = "none"
	Asleep         SuperStatus = "asleep"
	Unconscious    SuperStatus = "unconscious"
	Drugged        SuperStatus = "drugged"
	Overdosed      SuperStatus = "overdosed"
	Wounded        SuperStatus = "wounded"
	Arrested       SuperStatus = "arrested"
	Energized      SuperStatus = "energized"
	Visionary      SuperStatus = "visionary"
	Metamorphosing SuperStatus = "metamorphosing"
	Disinterested  SuperStatus = "disinterested"
	Aggressive     SuperStatus = "aggressive"
)

// Incapacitating reports whether a resident in this condition skips its turn.
func (s SuperStatus) Incapacitating() bool {
	return s == Asleep || s == Unconscious || s == Arrested
}

// ResidentType who makes the decisions
type ResidentType string

const (
	Human ResidentType = "human" // decisions come from the console
	Bot   ResidentType = "bot"   // decisions are generated
)

// Personality flavor of a bot's target choice
type Personality string

const (
	PersonalityRandom     Personality = "random"     // uniform pick
	PersonalityAggressive Personality = "aggressive" // goes after whoever carries the most papers
	PersonalityCautious   Personality = "cautious"   // prefers doors it has not knocked on
)

// Personalities lists every bot personality.
func Personalities() []Personality {
	return []Personality{PersonalityRandom, PersonalityAggressive, PersonalityCautious}
}

// DayPhase half of a game day
type DayPhase string

const (
	PhaseDay   DayPhase = "day"
	PhaseNight DayPhase = "night"
)

// FlowSequence policy that orders the actors for the whole session
type FlowSequence string

const (
	FlowOrdered      FlowSequence = "ordered"      // canonical role priority
	FlowRandom       FlowSequence = "random"       // shuffled once
	FlowAlphabetical FlowSequence = "alphabetical" // by name
	FlowChaotic      FlowSequence = "chaotic"      // reshuffled every night
	FlowScheduled    FlowSequence = "scheduled"    // not implemented
)

// ParseFlowSequence validates a policy name.
func ParseFlowSequence(s string) (FlowSequence, bool) {
	flow := FlowSequence(strings.ToLower(strings.TrimSpace(s)))
	switch flow {
	case FlowOrdered, FlowRandom, FlowAlphabetical, FlowChaotic, FlowScheduled:
		return flow, true
	}
	return "", false
}

// SwindlerMode how a swindler splits the pooled goods
type SwindlerMode string

const (
	SwindlerInnocentLook SwindlerMode = "innocentlook" // keeps one clean document
	SwindlerBadGuy       SwindlerMode = "badguy"       // dumps bad documents on the target, keeps the money
	SwindlerGoodGuy      SwindlerMode = "goodguy"      // gives everything back, reports killers
	SwindlerCollector    SwindlerMode = "collector"    // keeps everything
	SwindlerRandom       SwindlerMode = "random"       // coin flips
)

// ParseSwindlerMode validates a swindler mode name.
func ParseSwindlerMode(s string) (SwindlerMode, bool) {
	mode := SwindlerMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case SwindlerInnocentLook, SwindlerBadGuy, SwindlerGoodGuy, SwindlerCollector, SwindlerRandom:
		return mode, true
	}
	return "", false
}

// JudgeResolution what happens to voted suspicions at dawn
type JudgeResolution string

const (
	ResolutionNone     JudgeResolution = "none"     // tallies only accumulate
	ResolutionMajority JudgeResolution = "majority" // for > against arrests the suspect
)

// ParseJudgeResolution validates a resolution policy name.
func ParseJudgeResolution(s string) (JudgeResolution, bool) {
	res := JudgeResolution(strings.ToLower(strings.TrimSpace(s)))
	switch res {
	case ResolutionNone, ResolutionMajority:
		return res, true
	}
	return "", false
}

// Outcome state of the game as a whole
type Outcome string

const (
	GameOngoing  Outcome = "ongoing"
	ResidentsWin Outcome = "residents_win"
	KillerWins   Outcome = "killer_wins"
)
