package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/qianlnk/hotel/models"
)

// MemoryStore keeps hotels for the lifetime of the process
type MemoryStore struct {
	hotels map[string]models.HotelConfig
	mutex  sync.RWMutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hotels: make(map[string]models.HotelConfig)}
}

// SaveHotel inserts or replaces cfg.
func (m *MemoryStore) SaveHotel(ctx context.Context, cfg models.HotelConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("hotel id is required")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.hotels[cfg.ID] = cfg
	return nil
}

// LoadHotel returns the hotel saved under id.
func (m *MemoryStore) LoadHotel(ctx context.Context, id string) (models.HotelConfig, error) {
	if err := ctx.Err(); err != nil {
		return models.HotelConfig{}, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	cfg, ok := m.hotels[id]
	if !ok {
		return models.HotelConfig{}, ErrNotFound
	}
	return cfg, nil
}

// ListHotels returns every saved hotel ordered by id.
func (m *MemoryStore) ListHotels(ctx context.Context) ([]models.HotelConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	hotels := make([]models.HotelConfig, 0, len(m.hotels))
	for _, cfg := range m.hotels {
		hotels = append(hotels, cfg)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	return hotels, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
