// Package storage persists hotel configurations between sessions.
package storage

import (
	"context"
	"errors"

	"github.com/qianlnk/hotel/models"
)

// ErrNotFound is returned when no hotel is saved under the requested id.
var ErrNotFound = errors.New("hotel not found")

// HotelStore saves and loads hotel configurations by id.
type HotelStore interface {
	SaveHotel(ctx context.Context, cfg models.HotelConfig) error
	LoadHotel(ctx context.Context, id string) (models.HotelConfig, error)
	ListHotels(ctx context.Context) ([]models.HotelConfig, error)
	Close() error
}
