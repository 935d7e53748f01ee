// Package config loads the hotel settings from defaults, an optional file and
// HOTEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/qianlnk/hotel/models"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config root of the settings tree
type Config struct {
	Hotel     HotelSettings     `mapstructure:"hotel"`
	Game      GameSettings      `mapstructure:"game"`
	Spectator SpectatorSettings `mapstructure:"spectator"`
	Storage   StorageSettings   `mapstructure:"storage"`
	Log       LogSettings       `mapstructure:"log"`
}

// HotelSettings defaults used by the setup phase
type HotelSettings struct {
	ID            string  `mapstructure:"id"`
	Rooms         int     `mapstructure:"rooms"`
	RoomsPerStory int     `mapstructure:"rooms_per_story"`
	Capital       float64 `mapstructure:"capital"`
	EntranceFee   float64 `mapstructure:"entrance_fee"`
	DailyCosts    float64 `mapstructure:"daily_costs"`
}

// GameSettings rules of play
type GameSettings struct {
	Flow            string   `mapstructure:"flow"`
	Roles           []string `mapstructure:"roles"`
	SwindlerMode    string   `mapstructure:"swindler_mode"`
	JudgeVoteFor    float64  `mapstructure:"judge_vote_for"`
	JudgeResolution string   `mapstructure:"judge_resolution"`
	RetellFormat    string   `mapstructure:"retell_format"`
	Seed            int64    `mapstructure:"seed"`
}

// SpectatorSettings read-only HTTP feed
type SpectatorSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// StorageSettings where hotel configurations are saved
type StorageSettings struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// LogSettings zerolog output
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hotel.id", "")
	v.SetDefault("hotel.rooms", 16)
	v.SetDefault("hotel.rooms_per_story", 4)
	v.SetDefault("hotel.capital", 10000.0)
	v.SetDefault("hotel.entrance_fee", 100.0)
	v.SetDefault("hotel.daily_costs", 10.0)

	roles := make([]string, 0, len(models.Roles()))
	for _, role := range models.Roles() {
		roles = append(roles, string(role))
	}
	v.SetDefault("game.flow", string(models.FlowOrdered))
	v.SetDefault("game.roles", roles)
	v.SetDefault("game.swindler_mode", string(models.SwindlerRandom))
	v.SetDefault("game.judge_vote_for", 0.8)
	v.SetDefault("game.judge_resolution", string(models.ResolutionNone))
	v.SetDefault("game.retell_format", "n (r)")
	v.SetDefault("game.seed", 0)

	v.SetDefault("spectator.enabled", false)
	v.SetDefault("spectator.addr", ":8080")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.path", "hotel.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// Load reads path when it is not empty, then the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Hotel.ID == "" {
		cfg.Hotel.ID = uuid.NewString()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enumerated and numeric setting.
func (c *Config) Validate() error {
	if c.Hotel.Rooms <= 0 || c.Hotel.RoomsPerStory <= 0 {
		return fmt.Errorf("%w: hotel rooms and rooms_per_story must be positive", ErrInvalidConfig)
	}
	if c.Hotel.Capital <= 0 || c.Hotel.EntranceFee <= 0 || c.Hotel.DailyCosts <= 0 {
		return fmt.Errorf("%w: hotel capital, entrance_fee and daily_costs must be positive", ErrInvalidConfig)
	}
	flow, ok := models.ParseFlowSequence(c.Game.Flow)
	if !ok {
		return fmt.Errorf("%w: unknown flow %q", ErrInvalidConfig, c.Game.Flow)
	}
	if flow == models.FlowScheduled {
		return fmt.Errorf("%w: flow %q is not implemented", ErrInvalidConfig, c.Game.Flow)
	}
	if _, ok := models.ParseSwindlerMode(c.Game.SwindlerMode); !ok {
		return fmt.Errorf("%w: unknown swindler mode %q", ErrInvalidConfig, c.Game.SwindlerMode)
	}
	if _, ok := models.ParseJudgeResolution(c.Game.JudgeResolution); !ok {
		return fmt.Errorf("%w: unknown judge resolution %q", ErrInvalidConfig, c.Game.JudgeResolution)
	}
	if c.Game.JudgeVoteFor < 0 || c.Game.JudgeVoteFor > 1 {
		return fmt.Errorf("%w: judge_vote_for must be within [0, 1]", ErrInvalidConfig)
	}
	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("%w: sqlite storage needs a path", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	return nil
}

// HotelConfig the hotel defaults as a model value.
func (c *Config) HotelConfig() models.HotelConfig {
	return models.HotelConfig{
		ID:            c.Hotel.ID,
		NumRooms:      c.Hotel.Rooms,
		RoomsPerStory: c.Hotel.RoomsPerStory,
		Capital:       c.Hotel.Capital,
		EntranceFee:   c.Hotel.EntranceFee,
		DailyCosts:    c.Hotel.DailyCosts,
	}
}

// FlowSequence parsed game.flow; Validate has already accepted it.
func (g GameSettings) FlowSequence() models.FlowSequence {
	flow, _ := models.ParseFlowSequence(g.Flow)
	return flow
}

// Swindler parsed game.swindler_mode.
func (g GameSettings) Swindler() models.SwindlerMode {
	mode, _ := models.ParseSwindlerMode(g.SwindlerMode)
	return mode
}

// Resolution parsed game.judge_resolution.
func (g GameSettings) Resolution() models.JudgeResolution {
	res, _ := models.ParseJudgeResolution(g.JudgeResolution)
	return res
}
