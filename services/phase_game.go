package services

import (
	"context"
)

// GamePhase between rounds: inspect the hotel or start playing
type GamePhase struct{}

func (p *GamePhase) Name() string { return "game" }

func (p *GamePhase) Next(s *Session) Phase {
	s.Println("Playing. 'move' lets the residents act; 'help' lists the commands.")
	return &PlayingPhase{}
}

// Reset leaves a finished game and goes back to the setup with the same settings.
func (p *GamePhase) Reset(s *Session) Phase {
	s.Hotel = nil
	s.World = nil
	s.Controller = nil
	s.Println("Back to the hotel setup.")
	return &SetUpHotelPhase{}
}

func (p *GamePhase) HandleCommand(ctx context.Context, s *Session, input []string) HandlingResult {
	switch {
	case input[0] == "play" && len(input) == 1:
		if s.Controller.IsOver() {
			s.Printf("Game over: %s\n", outcomeText(s.Controller.Outcome()))
			return ResetState
		}
		return ChangeState

	case input[0] == "save" && len(input) == 1:
		if err := s.SaveHotel(ctx); err != nil {
			s.Println(err)
			break
		}
		s.Printf("Hotel %s saved.\n", s.Config.ID)

	case input[0] == "board" && len(input) == 1:
		RenderBoard(s.out, s.Controller.Flow().Board())

	case input[0] == "history":
		s.Println(s.World.History.RetellAllHistory(s.Hotel, formatArg(s, input)))

	case input[0] == "help":
		s.Println(`Available commands:
play -- start or resume playing
save -- save the hotel settings
board -- show every apartment
history [format] -- retell everything that happened
restart -- start over`)

	default:
		s.Println("Invalid command")
	}
	return KeepState
}
