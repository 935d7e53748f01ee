package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/qianlnk/hotel/metrics"
	"github.com/qianlnk/hotel/models"
	"github.com/qianlnk/hotel/storage"
)

// Options everything a session is built from
type Options struct {
	Defaults     models.HotelConfig
	Roles        []string
	Flow         models.FlowSequence
	Rules        Rules
	RetellFormat string
	// Seed fixes the random source; 0 seeds from the clock.
	Seed     int64
	Store    storage.HotelStore
	Registry *Registry
	Decider  Decider
	Notifier Notifier
	Metrics  *metrics.Metrics
	Out      io.Writer
}

// Session one run of the program from hotel setup to the end of a game
type Session struct {
	ID           string
	Config       models.HotelConfig
	Flow         models.FlowSequence
	RetellFormat string

	Hotel      *Hotel
	World      *World
	Controller *GameController

	opts Options
	rng  *rand.Rand
	out  io.Writer
}

// NewSession starts from the configured defaults.
func NewSession(opts Options) *Session {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Flow == "" {
		opts.Flow = models.FlowOrdered
	}
	if opts.RetellFormat == "" {
		opts.RetellFormat = DefaultRetellFormat
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		ID:           uuid.NewString(),
		Config:       opts.Defaults,
		Flow:         opts.Flow,
		RetellFormat: opts.RetellFormat,
		opts:         opts,
		rng:          rand.New(rand.NewSource(seed)),
		out:          opts.Out,
	}
	if s.Config.ID == "" {
		s.Config.ID = uuid.NewString()
	}
	log.Info().Str("session", s.ID).Str("hotel", s.Config.ID).Msg("session started")
	return s
}

// Printf writes to the session output.
func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// Println writes one line to the session output.
func (s *Session) Println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// NewHotelID replaces the settings with the defaults under a fresh id.
func (s *Session) NewHotelID() {
	s.Config = s.opts.Defaults
	s.Config.ID = uuid.NewString()
}

// UseHotel loads the hotel saved under id, or just adopts id when nothing is
// saved. The returned bool reports whether a saved hotel was loaded.
func (s *Session) UseHotel(ctx context.Context, id string) (bool, error) {
	cfg, err := s.opts.Store.LoadHotel(ctx, id)
	switch {
	case err == nil:
		s.Config = cfg
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		s.Config.ID = id
		return false, nil
	default:
		return false, fmt.Errorf("load hotel %s: %w", id, err)
	}
}

// SaveHotel persists the configured settings. The running capital of a
// hotel in play is not a setting and is left out.
func (s *Session) SaveHotel(ctx context.Context) error {
	if err := s.opts.Store.SaveHotel(ctx, s.Config); err != nil {
		return fmt.Errorf("save hotel %s: %w", s.Config.ID, err)
	}
	log.Info().Str("hotel", s.Config.ID).Msg("hotel saved")
	return nil
}

// SavedHotels lists every hotel in the store.
func (s *Session) SavedHotels(ctx context.Context) ([]models.HotelConfig, error) {
	hotels, err := s.opts.Store.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hotels, nil
}

// BuildHotel validates the settings and creates the building and its world.
func (s *Session) BuildHotel() error {
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	s.Hotel = NewHotel(s.Config, s.opts.Roles)
	s.Hotel.Reinitialize()
	s.World = NewWorld(s.Hotel, NewHistory(), s.opts.Decider, s.rng, s.opts.Rules)
	return nil
}

func (s *Session) newResident(name string, age int, balance float64, kind models.ResidentType) (*Resident, error) {
	role, err := s.Hotel.DrawRole(s.rng)
	if err != nil {
		return nil, err
	}
	strategy, err := s.opts.Registry.New(role, s.opts.Rules)
	if err != nil {
		return nil, err
	}
	r := NewResident(name, age, balance, kind, strategy)
	if kind == models.Bot {
		personalities := models.Personalities()
		r.Personality = personalities[s.rng.Intn(len(personalities))]
	}
	return r, nil
}

// AddHuman settles a human resident in apartment n.
func (s *Session) AddHuman(name string, age int, balance float64, n int) error {
	if s.Hotel == nil {
		return ErrHotelNotSet
	}
	if !s.Hotel.IsRoomAvailable(n) {
		if _, ok := s.Hotel.Apartment(n); !ok {
			return fmt.Errorf("apartment %d: %w", n, ErrNoSuchRoom)
		}
		return fmt.Errorf("apartment %d: %w", n, ErrRoomOccupied)
	}
	r, err := s.newResident(name, age, balance, models.Human)
	if err != nil {
		return err
	}
	s.Hotel.AddResident(r, n)
	return nil
}

// SettleBots fills vacant apartments with bots while roles remain.
func (s *Session) SettleBots() int {
	settled := 0
	for s.Hotel.PoolSize() > 0 {
		n, ok := s.Hotel.FindNextAvailableRoom()
		if !ok {
			break
		}
		age := 18 + s.rng.Intn(70)
		balance := float64(200 + s.rng.Intn(1800))
		r, err := s.newResident(fmt.Sprintf("Resident-%d", n), age, balance, models.Bot)
		if err != nil {
			break
		}
		s.Hotel.AddResident(r, n)
		settled++
	}
	log.Info().Int("bots", settled).Int("vacant", s.Hotel.AvailableRoomsCount()).Msg("bots settled")
	return settled
}

// StartGame builds the turn scheduler over everyone living in the hotel.
func (s *Session) StartGame() error {
	if s.Hotel == nil {
		return ErrHotelNotSet
	}
	flow, err := NewGameFlow(s.World, s.Flow, s.RetellFormat, s.opts.Notifier)
	if err != nil {
		return err
	}
	s.Controller = NewGameController(flow, s.opts.Notifier, s.opts.Metrics)
	s.opts.Notifier.Publish(flow.Board())
	return nil
}
