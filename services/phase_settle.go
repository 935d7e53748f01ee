package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SettleResidentsPhase moves residents in before the game starts
type SettleResidentsPhase struct{}

func (p *SettleResidentsPhase) Name() string { return "settle" }

func (p *SettleResidentsPhase) Next(s *Session) Phase {
	s.Println("Residents settled. Moving to game stage.")
	return &GamePhase{}
}

func (p *SettleResidentsPhase) Reset(s *Session) Phase { return p }

func (p *SettleResidentsPhase) HandleCommand(ctx context.Context, s *Session, input []string) HandlingResult {
	if s.Hotel == nil {
		s.Println(ErrHotelNotSet)
		return KeepState
	}

	switch {
	case input[0] == "add" && len(input) == 6 && input[1] == "resident":
		if err := addResident(s, input[2:]); err != nil {
			s.Println(err)
			break
		}
		s.Printf("%s moved into apartment %s.\n", input[2], input[5])

	case input[0] == "get" && len(input) == 3 && input[1] == "room":
		n, err := strconv.Atoi(input[2])
		if err != nil {
			s.Println("Apartment not found")
			break
		}
		floor, position, ok := s.Hotel.GetRoom(n)
		if !ok {
			s.Println("Apartment not found")
			break
		}
		s.Printf("Apartment %d is room %d on floor %d\n", n, position, floor)

	case input[0] == "rooms" && len(input) == 1:
		rooms := s.Hotel.AvailableRooms()
		labels := make([]string, len(rooms))
		for i, n := range rooms {
			labels[i] = strconv.Itoa(n)
		}
		s.Printf("%d apartments available: %s\n", len(rooms), strings.Join(labels, ", "))

	case input[0] == "residents" && len(input) == 2 && input[1] == "settled":
		s.SettleBots()
		if err := s.StartGame(); err != nil {
			s.Println(err)
			return KeepState
		}
		return ChangeState

	case input[0] == "help":
		s.Println(`Available commands:
add resident [name] [age] [account balance] [apartment] -- to add a resident to the hotel
get room [apartment number] -- to get the floor and room number of the apartment
rooms -- list the vacant apartments
residents settled -- to move on to the next stage`)

	default:
		s.Println("Invalid command")
	}
	return KeepState
}

// addResident parses name, age, balance and apartment.
func addResident(s *Session, args []string) error {
	age, err := strconv.Atoi(args[1])
	if err != nil || age < 0 {
		return fmt.Errorf("age %q: %w", args[1], errUsage)
	}
	balance, err := strconv.ParseFloat(args[2], 64)
	if err != nil || balance < 0 {
		return fmt.Errorf("balance %q: %w", args[2], errUsage)
	}
	n, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("apartment %q: %w", args[3], errUsage)
	}
	return s.AddHuman(args[0], age, balance, n)
}
