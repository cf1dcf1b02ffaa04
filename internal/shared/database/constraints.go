package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// At most one active session may reference a slot at any time
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_session_per_slot
		ON parking_sessions (slot_id)
		WHERE status = 'active';
	`).Error
	if err != nil {
		return err
	}

	// Speed up availability scans over the free pool
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slots_availability
		ON slots (is_occupied, is_active, is_reserved, sensor);
	`).Error
	if err != nil {
		return err
	}

	// Vehicle history lookups on the admin surface
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_parking_sessions_vehicle_number
		ON parking_sessions (vehicle_number);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
