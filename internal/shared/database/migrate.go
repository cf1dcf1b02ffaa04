package database

import (
	"github.com/swasthikkulal/parking-backend/internal/auth"
	"github.com/swasthikkulal/parking-backend/internal/sessions"
	"github.com/swasthikkulal/parking-backend/internal/slots"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.Admin{},
		&slots.Slot{},
		&slots.OccupancyRecord{},
		&sessions.Session{},
	)
}
