// Package memory is an in-process store for local runs and tests. It keeps
// the same contracts as the gorm repositories; transactions are serialised
// by a single lock and rolled back by restoring a copy of the data.
//
// Reads made outside a transaction are read-uncommitted: they can see writes
// of a running transaction that later rolls back.
package memory

import (
	"context"
	"sync"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
)

type txKey struct{}

// Store holds rooms and reservations.
type Store struct {
	txMu sync.Mutex // held for the whole of a transaction

	mu           sync.RWMutex
	rooms        map[string]domain.Room
	reservations map[string]domain.Reservation
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		rooms:        make(map[string]domain.Room),
		reservations: make(map[string]domain.Reservation),
	}
}

// WithinTransaction runs fn with exclusive access to the store. Changes made
// by fn are discarded when it returns an error.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	rooms := make(map[string]domain.Room, len(s.rooms))
	for k, v := range s.rooms {
		rooms[k] = v
	}
	reservations := make(map[string]domain.Reservation, len(s.reservations))
	for k, v := range s.reservations {
		reservations[k] = v
	}
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.rooms = rooms
		s.reservations = reservations
		s.mu.Unlock()
		return err
	}
	return nil
}

// Rooms returns the store's RoomRepository view.
func (s *Store) Rooms() *RoomRepository { return &RoomRepository{s: s} }

// Reservations returns the store's ReservationRepository view.
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{s: s} }
