package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus is the availability of a room for new bookings.
type RoomStatus string

const (
	RoomStatusActive   RoomStatus = "ACTIVE"
	RoomStatusInactive RoomStatus = "INACTIVE"
)

// Room is a bookable unit with a flat nightly price.
type Room struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	Number        int             `gorm:"uniqueIndex:idx_room_number;not null"` // unique across all rooms, active or not
	Type          string          `gorm:"type:varchar(100);index:idx_room_type_status;not null"`
	Capacity      int             `gorm:"not null"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        RoomStatus      `gorm:"type:varchar(20);index:idx_room_type_status;index;not null"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

// IsActive reports whether the room is ACTIVE.
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}

// Deactivate marks the room INACTIVE. There is no way back.
func (r *Room) Deactivate() {
	r.Status = RoomStatusInactive
}
