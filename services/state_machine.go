package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// HandlingResult what the manager does after a phase handled a command
type HandlingResult int

const (
	KeepState   HandlingResult = iota // stay in the current phase
	ChangeState                       // move to Phase.Next
	ResetState                        // move to Phase.Reset
	Restart                           // throw the session away
)

// Phase one stage of the command-driven lifecycle
type Phase interface {
	Name() string
	HandleCommand(ctx context.Context, s *Session, input []string) HandlingResult
	Next(s *Session) Phase
	Reset(s *Session) Phase
}

// Manager routes commands to the current phase of its session
type Manager struct {
	opts    Options
	session *Session
	phase   Phase
}

// NewManager starts a fresh session in the hotel setup phase.
func NewManager(opts Options) *Manager {
	m := &Manager{opts: opts}
	m.restart()
	return m
}

// Session is the session in progress.
func (m *Manager) Session() *Session {
	return m.session
}

// Phase is the current phase.
func (m *Manager) Phase() Phase {
	return m.phase
}

func (m *Manager) restart() {
	m.session = NewSession(m.opts)
	m.phase = &SetUpHotelPhase{}
}

// HandleCommand dispatches one tokenized line. restart works in every phase.
func (m *Manager) HandleCommand(ctx context.Context, input []string) {
	if len(input) == 0 {
		return
	}
	if strings.EqualFold(input[0], "restart") {
		m.apply(Restart)
		return
	}
	m.apply(m.phase.HandleCommand(ctx, m.session, input))
}

func (m *Manager) apply(result HandlingResult) {
	from := m.phase.Name()
	switch result {
	case KeepState:
		return
	case ChangeState:
		m.phase = m.phase.Next(m.session)
	case ResetState:
		m.phase = m.phase.Reset(m.session)
	case Restart:
		m.restart()
		m.session.Println("Restarted. Set up a new hotel.")
	}
	log.Debug().Str("from", from).Str("to", m.phase.Name()).Str("session", m.session.ID).Msg("phase changed")
}

// formatArg joins the optional retell format given after a command.
func formatArg(s *Session, input []string) string {
	if len(input) > 1 {
		return strings.Join(input[1:], " ")
	}
	return s.RetellFormat
}
