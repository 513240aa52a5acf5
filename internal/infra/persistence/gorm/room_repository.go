package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
)

// GormRoomRepository is the gorm implementation of repository.RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := conn(ctx, r.db).Create(room).Error; err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create room (number: %d): %w", room.Number, err)
	}
	return nil
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id), "id "+id)
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE; the lock only outlives the
// statement when ctx carries a transaction.
func (r *GormRoomRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Room, error) {
	q := conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
	return r.first(q, "id "+id+" for update")
}

func (r *GormRoomRepository) FindByNumber(ctx context.Context, number int) (*domain.Room, error) {
	return r.first(conn(ctx, r.db).Where("number = ?", number), fmt.Sprintf("number %d", number))
}

func (r *GormRoomRepository) FindAll(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := conn(ctx, r.db).Order("number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all rooms: %w", err)
	}
	return rooms, nil
}

func (r *GormRoomRepository) FindByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := conn(ctx, r.db).Where("status = ?", status).Order("number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("gorm: find rooms by status %s: %w", status, err)
	}
	return rooms, nil
}

func (r *GormRoomRepository) FindByTypeAndStatus(ctx context.Context, roomType string, status domain.RoomStatus) ([]domain.Room, error) {
	var rooms []domain.Room
	err := conn(ctx, r.db).
		Where("type = ? AND status = ?", roomType, status).
		Order("number").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find rooms by type %q and status %s: %w", roomType, status, err)
	}
	return rooms, nil
}

func (r *GormRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	result := conn(ctx, r.db).Model(&domain.Room{}).Where("id = ?", room.ID).Updates(map[string]interface{}{
		"type":            room.Type,
		"capacity":        room.Capacity,
		"price_per_night": room.PricePerNight,
		"status":          room.Status,
		"updated_at":      room.UpdatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("gorm: update room %s: %w", room.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoomNotFound
	}
	return nil
}

func (r *GormRoomRepository) first(q *gorm.DB, what string) (*domain.Room, error) {
	var room domain.Room
	if err := q.First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by %s: %w", what, err)
	}
	return &room, nil
}
