package memory

import (
	"context"
	"sort"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
)

// RoomRepository implements repository.RoomRepository over a Store.
type RoomRepository struct {
	s *Store
}

func (r *RoomRepository) Create(_ context.Context, room *domain.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.Number == room.Number || existing.ID == room.ID {
			return repository.ErrDuplicateEntry
		}
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepository) FindByID(_ context.Context, id string) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &room, nil
}

// FindByIDForUpdate needs no row lock: transactions already hold the store.
func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Room, error) {
	return r.FindByID(ctx, id)
}

func (r *RoomRepository) FindByNumber(_ context.Context, number int) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, room := range r.s.rooms {
		if room.Number == number {
			found := room
			return &found, nil
		}
	}
	return nil, repository.ErrRoomNotFound
}

func (r *RoomRepository) FindAll(_ context.Context) ([]domain.Room, error) {
	return r.filter(func(domain.Room) bool { return true }), nil
}

func (r *RoomRepository) FindByStatus(_ context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	return r.filter(func(room domain.Room) bool { return room.Status == status }), nil
}

func (r *RoomRepository) FindByTypeAndStatus(_ context.Context, roomType string, status domain.RoomStatus) ([]domain.Room, error) {
	return r.filter(func(room domain.Room) bool {
		return room.Type == roomType && room.Status == status
	}), nil
}

func (r *RoomRepository) Update(_ context.Context, room *domain.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[room.ID]; !ok {
		return repository.ErrRoomNotFound
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepository) filter(keep func(domain.Room) bool) []domain.Room {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rooms := make([]domain.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if keep(room) {
			rooms = append(rooms, room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms
}
