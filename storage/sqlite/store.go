// Package sqlite provides a SQLite-backed hotel store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/qianlnk/hotel/models"
	"github.com/qianlnk/hotel/storage"
	"github.com/qianlnk/hotel/storage/sqlite/migrations"
)

// Store persists hotel configurations in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies the embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveHotel inserts cfg or overwrites the hotel with the same id.
func (s *Store) SaveHotel(ctx context.Context, cfg models.HotelConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id := strings.TrimSpace(cfg.ID)
	if id == "" {
		return fmt.Errorf("hotel id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO hotels (
		   id,
		   num_rooms,
		   rooms_per_story,
		   capital,
		   entrance_fee,
		   daily_costs,
		   updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   num_rooms = excluded.num_rooms,
		   rooms_per_story = excluded.rooms_per_story,
		   capital = excluded.capital,
		   entrance_fee = excluded.entrance_fee,
		   daily_costs = excluded.daily_costs,
		   updated_at = excluded.updated_at`,
		id,
		cfg.NumRooms,
		cfg.RoomsPerStory,
		cfg.Capital,
		cfg.EntranceFee,
		cfg.DailyCosts,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save hotel: %w", err)
	}
	return nil
}

// LoadHotel returns the hotel saved under id.
func (s *Store) LoadHotel(ctx context.Context, id string) (models.HotelConfig, error) {
	if err := ctx.Err(); err != nil {
		return models.HotelConfig{}, err
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, num_rooms, rooms_per_story, capital, entrance_fee, daily_costs
		 FROM hotels WHERE id = ?`, strings.TrimSpace(id))
	cfg, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HotelConfig{}, storage.ErrNotFound
	}
	if err != nil {
		return models.HotelConfig{}, fmt.Errorf("load hotel: %w", err)
	}
	return cfg, nil
}

// ListHotels returns every saved hotel ordered by id.
func (s *Store) ListHotels(ctx context.Context) ([]models.HotelConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, num_rooms, rooms_per_story, capital, entrance_fee, daily_costs
		 FROM hotels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]models.HotelConfig, 0)
	for rows.Next() {
		cfg, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotels: %w", err)
	}
	return hotels, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHotel(row rowScanner) (models.HotelConfig, error) {
	var cfg models.HotelConfig
	err := row.Scan(&cfg.ID, &cfg.NumRooms, &cfg.RoomsPerStory, &cfg.Capital, &cfg.EntranceFee, &cfg.DailyCosts)
	return cfg, err
}

var _ storage.HotelStore = (*Store)(nil)
