package database

import (
	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations applies the schema plus the constraints AutoMigrate cannot
// express. Seat uniqueness and capacity live here so two riders racing for
// the same seat are decided by the database, not the request handlers.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.DriverProfile{},
		&models.Ride{},
		&models.Booking{},
		&models.Payment{},
		&models.PaymentMethod{},
		&models.Rating{},
		&models.Issue{},
	)
	if err != nil {
		return err
	}

	// One seat per ride among non-cancelled bookings. Cancelled rows fall out
	// of the index so a released seat can be rebooked.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_ride_seat_active
		ON bookings (ride_id, seat_number)
		WHERE status != 'cancelled' AND deleted_at IS NULL`).Error; err != nil {
		return err
	}

	// Status enums as check constraints. Postgres only; sqlite has no
	// ALTER TABLE ADD CONSTRAINT.
	if db.Dialector.Name() == "postgres" {
		for _, stmt := range []string{
			`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`,
			`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('rider', 'driver', 'admin'))`,
			`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_status_check`,
			`ALTER TABLE rides ADD CONSTRAINT rides_status_check CHECK (status IN ('active', 'completed', 'cancelled'))`,
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`,
			`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('confirmed', 'completed', 'cancelled'))`,
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_negotiation_check`,
			`ALTER TABLE bookings ADD CONSTRAINT bookings_negotiation_check CHECK (negotiation_status IN ('', 'pending', 'accepted', 'declined'))`,
			`ALTER TABLE payments DROP CONSTRAINT IF EXISTS payments_status_check`,
			`ALTER TABLE payments ADD CONSTRAINT payments_status_check CHECK (status IN ('pending', 'completed', 'failed', 'refunded'))`,
			`ALTER TABLE issues DROP CONSTRAINT IF EXISTS issues_status_check`,
			`ALTER TABLE issues ADD CONSTRAINT issues_status_check CHECK (status IN ('open', 'under_review', 'resolved', 'closed'))`,
			`ALTER TABLE ratings DROP CONSTRAINT IF EXISTS ratings_score_check`,
			`ALTER TABLE ratings ADD CONSTRAINT ratings_score_check CHECK (score BETWEEN 1 AND 5)`,
		} {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
