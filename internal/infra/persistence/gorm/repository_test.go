package gormpersistence

import (
	"context"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
)

type capturedStatement struct {
	SQL  string
	Vars []interface{}
}

// newDryRunDB opens a MySQL dialect session that builds statements without a
// server and records every SELECT and UPDATE it renders.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]capturedStatement) {
	t.Helper()
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		DSN:                       "hotel:secret@tcp(127.0.0.1:3306)/hotel?parseTime=True&loc=UTC",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	var captured []capturedStatement
	capture := func(tx *gorm.DB) {
		captured = append(captured, capturedStatement{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]interface{}(nil), tx.Statement.Vars...),
		})
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", capture))
	return db, &captured
}

// failCreate makes every INSERT on db fail with err.
func failCreate(t *testing.T, db *gorm.DB, err error) {
	t.Helper()
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_create", func(tx *gorm.DB) {
		_ = tx.AddError(err)
	}))
}

func TestGormReservationRepository_FindOverlappingQuery(t *testing.T) {
	// Arrange
	db, captured := newDryRunDB(t)
	repo := NewGormReservationRepository(db)
	checkin := domain.NewDate(2026, time.March, 10)
	checkout := checkin.AddDays(3)

	// Act
	got, err := repo.FindOverlapping(context.Background(), "room-1", checkin, checkout)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, got)
	require.Len(t, *captured, 1)
	stmt := (*captured)[0]
	assert.Contains(t, stmt.SQL, "FROM `reservations`")
	assert.Contains(t, stmt.SQL, "room_id = ?")
	assert.Contains(t, stmt.SQL, "status IN (?,?)")
	// closed on both ends: a stay ending on the new check-in day still matches
	assert.Contains(t, stmt.SQL, "checkin_expected <= ? AND checkout_expected >= ?")
	assert.Contains(t, stmt.SQL, "ORDER BY checkin_expected, created_at")
	assert.Equal(t, []interface{}{
		"room-1",
		domain.ReservationStatusCreated,
		domain.ReservationStatusCheckedIn,
		checkout,
		checkin,
	}, stmt.Vars)
}

func TestGormReservationRepository_FindByIDWithStatusLocksByID(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewGormReservationRepository(db)

	// a dry run scans no row, so the status check always fails
	_, err := repo.FindByIDWithStatus(context.Background(), "res-1", domain.ReservationStatusCreated)
	assert.ErrorIs(t, err, repository.ErrStatusMismatch)

	require.Len(t, *captured, 1)
	stmt := (*captured)[0]
	assert.Contains(t, stmt.SQL, "FROM `reservations` WHERE id = ?")
	assert.NotContains(t, stmt.SQL, "status")
	assert.Contains(t, stmt.SQL, "FOR UPDATE")
	require.NotEmpty(t, stmt.Vars)
	assert.Equal(t, "res-1", stmt.Vars[0])
}

func TestGormReservationRepository_UpdateWritesStatusAndTotal(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewGormReservationRepository(db)
	total := decimal.RequireFromString("300.00")

	err := repo.Update(context.Background(), &domain.Reservation{
		ID:          "res-1",
		Status:      domain.ReservationStatusCheckedOut,
		TotalAmount: &total,
		UpdatedAt:   time.Date(2026, time.March, 13, 10, 0, 0, 0, time.UTC),
	})
	// no row is touched in a dry run
	assert.ErrorIs(t, err, repository.ErrReservationNotFound)

	require.Len(t, *captured, 1)
	stmt := (*captured)[0]
	assert.Contains(t, stmt.SQL, "UPDATE `reservations` SET")
	assert.Contains(t, stmt.SQL, "`status`=?")
	assert.Contains(t, stmt.SQL, "`total_amount`=?")
	assert.Contains(t, stmt.SQL, "WHERE id = ?")
}

func TestGormReservationRepository_CreateMapsExclusionViolation(t *testing.T) {
	db, _ := newDryRunDB(t)
	failCreate(t, db, &pgconn.PgError{Code: pgExclusionViolation, ConstraintName: "reservations_no_overlap"})
	repo := NewGormReservationRepository(db)

	err := repo.Create(context.Background(), &domain.Reservation{
		ID:     "res-1",
		RoomID: "room-1",
		Status: domain.ReservationStatusCreated,
	})

	assert.ErrorIs(t, err, repository.ErrOverlap)
}

func TestGormRoomRepository_FindByIDForUpdateQuery(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewGormRoomRepository(db)

	_, err := repo.FindByIDForUpdate(context.Background(), "room-1")
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	stmt := (*captured)[0]
	assert.Contains(t, stmt.SQL, "FROM `rooms` WHERE id = ?")
	assert.Contains(t, stmt.SQL, "FOR UPDATE")
	assert.Equal(t, "room-1", stmt.Vars[0])
}

func TestGormRoomRepository_FindByTypeAndStatusQuery(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewGormRoomRepository(db)

	_, err := repo.FindByTypeAndStatus(context.Background(), "Suite", domain.RoomStatusActive)
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	stmt := (*captured)[0]
	assert.Contains(t, stmt.SQL, "type = ? AND status = ?")
	assert.Contains(t, stmt.SQL, "ORDER BY number")
	assert.Equal(t, []interface{}{"Suite", domain.RoomStatusActive}, stmt.Vars)
}

func TestGormRoomRepository_CreateMapsDuplicateNumber(t *testing.T) {
	tests := []struct {
		name      string
		driverErr error
		want      error
	}{
		{"mysql", &mysql.MySQLError{Number: mysqlDuplicateEntry, Message: "Duplicate entry '101' for key 'idx_room_number'"}, repository.ErrDuplicateEntry},
		{"postgres", &pgconn.PgError{Code: pgUniqueViolation}, repository.ErrDuplicateEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newDryRunDB(t)
			failCreate(t, db, tt.driverErr)
			repo := NewGormRoomRepository(db)

			err := repo.Create(context.Background(), &domain.Room{ID: "room-1", Number: 101})

			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("other driver errors pass through", func(t *testing.T) {
		db, _ := newDryRunDB(t)
		driverErr := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
		failCreate(t, db, driverErr)
		repo := NewGormRoomRepository(db)

		err := repo.Create(context.Background(), &domain.Room{ID: "room-1", Number: 101})

		assert.NotErrorIs(t, err, repository.ErrDuplicateEntry)
		var mysqlErr *mysql.MySQLError
		assert.ErrorAs(t, err, &mysqlErr)
	})
}
