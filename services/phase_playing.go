package services

import (
	"context"
	"errors"
	"strings"
)

// PlayingPhase the nights go by
type PlayingPhase struct{}

func (p *PlayingPhase) Name() string { return "playing" }

func (p *PlayingPhase) Next(s *Session) Phase {
	s.Println("Paused.")
	return &GamePhase{}
}

// Reset returns to the game menu once the game is decided.
func (p *PlayingPhase) Reset(s *Session) Phase { return &GamePhase{} }

func (p *PlayingPhase) HandleCommand(ctx context.Context, s *Session, input []string) HandlingResult {
	gc := s.Controller

	switch {
	case input[0] == "move" && len(input) == 1:
		reports, err := gc.PlayUntilHuman()
		for _, report := range reports {
			printReport(s, report)
		}
		return p.afterTurns(s, err)

	case input[0] == "turn" && len(input) == 1:
		report, err := gc.Step()
		if err == nil {
			printReport(s, report)
		}
		return p.afterTurns(s, err)

	case input[0] == "night":
		flow := gc.Flow()
		s.Println(s.World.History.RetellDay(s.Hotel, formatArg(s, input), flow.LastNight()))

	case input[0] == "history":
		s.Println(s.World.History.RetellAllHistory(s.Hotel, formatArg(s, input)))

	case input[0] == "cheat" && len(input) == 1:
		for _, r := range s.Hotel.Residents() {
			v := r.View()
			s.Printf("%d: %s is the %s (%s)\n", v.HomeApartment, v.Name, r.Strategy().ConfessRole(), v.Status)
		}

	case input[0] == "pause" && len(input) == 1:
		return ChangeState

	case input[0] == "help":
		s.Println(`Available commands:
move -- let the residents act until a human has moved or the night is over
turn -- let exactly one resident act
night [format] -- retell the last night
history [format] -- retell everything that happened
cheat -- reveal every role
pause -- back to the game menu
restart -- start over`)

	default:
		s.Println("Invalid command")
	}
	return KeepState
}

func (p *PlayingPhase) afterTurns(s *Session, err error) HandlingResult {
	switch {
	case errors.Is(err, ErrGameOver):
		s.Printf("Game over: %s\n", outcomeText(s.Controller.Outcome()))
		return ResetState
	case err != nil:
		s.Println(err)
		return KeepState
	case s.Controller.IsOver():
		s.Printf("Game over: %s\n", outcomeText(s.Controller.Outcome()))
		return ResetState
	}
	return KeepState
}

func printReport(s *Session, report TurnReport) {
	if report.Acted && !report.Human {
		s.Printf("%s made a move.\n", report.Name)
	}
	if report.RoundBoundary {
		s.Printf("Day %d breaks.\n%s\n", s.Controller.Flow().DaysPassed, strings.TrimRight(report.Announcement, "\n"))
	}
}
