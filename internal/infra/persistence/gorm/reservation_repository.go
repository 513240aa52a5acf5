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

// GormReservationRepository is the gorm implementation of repository.ReservationRepository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	if db == nil {
		panic("database connection cannot be nil for GormReservationRepository")
	}
	return &GormReservationRepository{db: db}
}

// Create inserts the reservation without touching its Room.
func (r *GormReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	err := conn(ctx, r.db).Omit(clause.Associations).Create(reservation).Error
	if err != nil {
		if isExclusionViolation(err) {
			return repository.ErrOverlap
		}
		return fmt.Errorf("gorm: create reservation for room %s: %w", reservation.RoomID, err)
	}
	return nil
}

func (r *GormReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := conn(ctx, r.db).Preload("Room").Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReservationNotFound
		}
		return nil, fmt.Errorf("gorm: find reservation by id %s: %w", id, err)
	}
	return &reservation, nil
}

// FindByIDWithStatus locks the row by id, then checks the status, so an
// unknown id and a wrong status stay distinguishable.
func (r *GormReservationRepository) FindByIDWithStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Room").
		Where("id = ?", id).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReservationNotFound
		}
		return nil, fmt.Errorf("gorm: find reservation %s with status %s: %w", id, status, err)
	}
	if reservation.Status != status {
		return nil, repository.ErrStatusMismatch
	}
	return &reservation, nil
}

func (r *GormReservationRepository) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	return r.find(conn(ctx, r.db), "all")
}

func (r *GormReservationRepository) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return r.find(conn(ctx, r.db).Where("status = ?", status), "status "+string(status))
}

func (r *GormReservationRepository) FindByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	return r.find(conn(ctx, r.db).Where("room_id = ?", roomID), "room "+roomID)
}

// FindOverlapping uses the closed-interval test on both ends.
func (r *GormReservationRepository) FindOverlapping(ctx context.Context, roomID string, checkin, checkout domain.Date) ([]domain.Reservation, error) {
	q := conn(ctx, r.db).
		Where("room_id = ?", roomID).
		Where("status IN ?", domain.BlockingStatuses).
		Where("checkin_expected <= ? AND checkout_expected >= ?", checkout, checkin)
	return r.find(q, "overlap on room "+roomID)
}

func (r *GormReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	fields := map[string]interface{}{
		"status":     reservation.Status,
		"updated_at": reservation.UpdatedAt,
	}
	if reservation.TotalAmount != nil {
		fields["total_amount"] = *reservation.TotalAmount
	}
	result := conn(ctx, r.db).Model(&domain.Reservation{}).Where("id = ?", reservation.ID).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("gorm: update reservation %s: %w", reservation.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrReservationNotFound
	}
	return nil
}

func (r *GormReservationRepository) find(q *gorm.DB, what string) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	if err := q.Preload("Room").Order("checkin_expected, created_at").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("gorm: find reservations by %s: %w", what, err)
	}
	return reservations, nil
}
