package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_desk/internal/domain"
)

// InventoryService owns the in-memory hotel list. Every mutation produces a
// new list and writes it back to the store as a side effect; persistence
// failures are logged, never surfaced (the in-memory state stays
// authoritative for the session).
type InventoryService struct {
	store domain.Store

	mu     sync.Mutex
	hotels []domain.Hotel
	lastID int64
}

func NewInventoryService(ctx context.Context, store domain.Store) *InventoryService {
	s := &InventoryService{store: store}

	ok, err := store.Load(ctx, domain.KeyHotels, &s.hotels)
	if err != nil {
		log.Warn().Err(err).Str("key", domain.KeyHotels).Msg("stored hotel list unreadable, starting empty")
		s.hotels = nil
	} else if !ok {
		s.hotels = nil
	}
	for _, h := range s.hotels {
		if h.ID > s.lastID {
			s.lastID = h.ID
		}
	}
	return s
}

// List returns a copy; callers may filter and sort it freely.
func (s *InventoryService) List() []domain.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Hotel, len(s.hotels))
	copy(out, s.hotels)
	return out
}

func (s *InventoryService) Get(id int64) (domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

// Add assigns a fresh id and creation timestamp, normalizes the record and
// prepends it. Field validation is the caller's concern; the repository
// accepts whatever shape it is given.
func (s *InventoryService) Add(ctx context.Context, h domain.Hotel) domain.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()

	h = h.Normalize()
	h.ID = s.nextID()
	h.CreatedAt = time.Now().UTC()
	h.UpdatedAt = nil

	s.hotels = append([]domain.Hotel{h}, s.hotels...)
	s.persist(ctx)
	return h
}

// Update replaces the entry whose id matches and stamps updated_at. A
// missing id is a silent no-op: the list is returned unchanged and ok is
// false.
func (s *InventoryService) Update(ctx context.Context, h domain.Hotel) (domain.Hotel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.hotels {
		if cur.ID != h.ID {
			continue
		}
		h = h.Normalize()
		h.CreatedAt = cur.CreatedAt
		now := time.Now().UTC()
		h.UpdatedAt = &now
		s.hotels[i] = h
		s.persist(ctx)
		return h, true
	}
	return domain.Hotel{}, false
}

// Delete removes the entry whose id matches; absent ids are a silent no-op.
func (s *InventoryService) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, cur := range s.hotels {
		if cur.ID == id {
			s.hotels = append(s.hotels[:i:i], s.hotels[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// nextID is unix-millis based (sortable by recency) with a strictly
// increasing guard for same-millisecond inserts. Callers hold s.mu.
func (s *InventoryService) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *InventoryService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, domain.KeyHotels, s.hotels); err != nil {
		log.Error().Err(err).Str("key", domain.KeyHotels).Msg("persist hotel list failed")
	}
}
