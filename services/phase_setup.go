package services

import (
	"context"
	"strconv"

	"github.com/qianlnk/hotel/models"
)

// SetUpHotelPhase collects the hotel settings
type SetUpHotelPhase struct{}

func (p *SetUpHotelPhase) Name() string { return "setup" }

func (p *SetUpHotelPhase) Next(s *Session) Phase {
	s.Println("Hotel set. Settle the residents; 'help' lists the commands.")
	return &SettleResidentsPhase{}
}

func (p *SetUpHotelPhase) Reset(s *Session) Phase { return p }

func (p *SetUpHotelPhase) HandleCommand(ctx context.Context, s *Session, input []string) HandlingResult {
	switch {
	case input[0] == "new" && len(input) == 1:
		s.NewHotelID()
		s.Printf("New hotel %s.\n", s.Config.ID)

	case input[0] == "id" && len(input) == 2:
		loaded, err := s.UseHotel(ctx, input[1])
		switch {
		case err != nil:
			s.Println(err)
		case loaded:
			s.Printf("Loaded hotel %s.\n", s.Config.ID)
		default:
			s.Printf("Hotel id set to %s.\n", s.Config.ID)
		}

	case input[0] == "save" && len(input) == 1:
		if err := s.SaveHotel(ctx); err != nil {
			s.Println(err)
			break
		}
		s.Printf("Hotel %s saved.\n", s.Config.ID)

	case input[0] == "hotels" && len(input) == 1:
		hotels, err := s.SavedHotels(ctx)
		if err != nil {
			s.Println(err)
			break
		}
		if len(hotels) == 0 {
			s.Println("No saved hotels.")
		}
		for _, h := range hotels {
			s.Printf("%s: %d rooms, %d per story, capital %.2f\n", h.ID, h.NumRooms, h.RoomsPerStory, h.Capital)
		}

	case input[0] == "rooms" && len(input) == 2:
		if n, ok := parseCount(s, input[1]); ok {
			s.Config.NumRooms = n
		}

	case input[0] == "rps" && len(input) == 2:
		if n, ok := parseCount(s, input[1]); ok {
			s.Config.RoomsPerStory = n
		}

	case input[0] == "capital" && len(input) == 2:
		if x, ok := parseAmount(s, input[1]); ok {
			s.Config.Capital = x
		}

	case input[0] == "fee" && len(input) == 2:
		if x, ok := parseAmount(s, input[1]); ok {
			s.Config.EntranceFee = x
		}

	case input[0] == "service" && len(input) == 2:
		if x, ok := parseAmount(s, input[1]); ok {
			s.Config.DailyCosts = x
		}

	case input[0] == "flow" && len(input) == 2:
		flow, ok := models.ParseFlowSequence(input[1])
		switch {
		case !ok:
			s.Printf("Unknown flow %q. Use ordered, random, alphabetical or chaotic.\n", input[1])
		case flow == models.FlowScheduled:
			s.Println(ErrFlowNotImplemented)
		default:
			s.Flow = flow
		}

	case input[0] == "config" && len(input) == 1:
		c := s.Config
		s.Printf("id: %s\nrooms: %d\nrooms per story: %d\ncapital: %.2f\nentrance fee: %.2f\ndaily costs: %.2f\nflow: %s\n",
			c.ID, c.NumRooms, c.RoomsPerStory, c.Capital, c.EntranceFee, c.DailyCosts, s.Flow)

	case input[0] == "hotel" && len(input) == 2 && input[1] == "set":
		if err := s.BuildHotel(); err != nil {
			s.Println(err)
			return KeepState
		}
		return ChangeState

	case input[0] == "help":
		s.Println(`Available commands:
new -- start a hotel with a fresh id and default settings
id [id] -- load a saved hotel, or name this one
save -- save the hotel settings
hotels -- list the saved hotels
rooms [n] -- number of apartments
rps [n] -- apartments per story
capital [x] -- starting capital
fee [x] -- entrance fee
service [x] -- daily costs
flow [ordered|random|alphabetical|chaotic] -- turn order
config -- show the settings
hotel set -- finish the setup
restart -- start over`)

	default:
		s.Println("Invalid command")
	}
	return KeepState
}

func parseCount(s *Session, arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		s.Printf("Invalid number %q.\n", arg)
		return 0, false
	}
	return n, true
}

func parseAmount(s *Session, arg string) (float64, bool) {
	x, err := strconv.ParseFloat(arg, 64)
	if err != nil || x < 0 {
		s.Printf("Invalid amount %q.\n", arg)
		return 0, false
	}
	return x, true
}
