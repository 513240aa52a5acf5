package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
)

// reservationOverlapConstraint is the Postgres exclusion constraint that keeps
// active reservations of one room from sharing a day. The range is closed on
// both ends to match the overlap query.
const reservationOverlapConstraint = "reservations_no_overlap"

// MigrateDB creates or updates the rooms and reservations tables.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := db.AutoMigrate(&domain.Room{}, &domain.Reservation{}); err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	if db.Dialector.Name() == DriverPostgres {
		if err := migrateOverlapConstraint(db); err != nil {
			return fmt.Errorf("failed to add reservation overlap constraint: %w", err)
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// migrateOverlapConstraint adds the exclusion constraint once. MySQL has no
// equivalent; there the room row lock taken while booking does the job.
func migrateOverlapConstraint(db *gorm.DB) error {
	var count int64
	err := db.Raw("SELECT COUNT(*) FROM pg_constraint WHERE conname = ?", reservationOverlapConstraint).
		Scan(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("failed to enable btree_gist: %w", err)
	}
	sql := `
	ALTER TABLE reservations ADD CONSTRAINT ` + reservationOverlapConstraint + `
	EXCLUDE USING gist (
		room_id WITH =,
		daterange(checkin_expected, checkout_expected, '[]') WITH &&
	) WHERE (status IN ('CREATED', 'CHECKED_IN'))`
	if err := db.Exec(sql).Error; err != nil {
		return err
	}
	logrus.Info("Reservation overlap constraint created")
	return nil
}
