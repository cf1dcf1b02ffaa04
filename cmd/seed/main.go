package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/swasthikkulal/parking-backend/internal/auth"
	"github.com/swasthikkulal/parking-backend/internal/sessions"
	"github.com/swasthikkulal/parking-backend/internal/shared/config"
	"github.com/swasthikkulal/parking-backend/internal/shared/database"
	"github.com/swasthikkulal/parking-backend/internal/slots"
	"github.com/swasthikkulal/parking-backend/pkg/logger"

	"github.com/joho/godotenv"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Parking Database Seeder...")

	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! The lot is ready for bookings.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"slot_occupancy_records",
		"parking_sessions",
		"slots",
		"admins",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds the bootstrap admin and the default slot layout
func (s *Seeder) SeedAll(cfg *config.Config) error {
	ctx := context.Background()
	appLogger := logger.GetDefault()

	// Bootstrap admin (no dependencies)
	authRepo := auth.NewRepository(s.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, cfg, appLogger)

	adminEmail := getEnvOrDefault("ADMIN_EMAIL", "admin@parking.local")
	if err := authService.EnsureAdmin(ctx,
		getEnvOrDefault("ADMIN_NAME", "Parking Admin"),
		adminEmail,
		getEnvOrDefault("ADMIN_PASSWORD", "admin123"),
	); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	fmt.Printf("  Admin ready: %s\n", adminEmail)

	// Slot layout
	slotRepo := slots.NewRepository(s.db.GetPostgreSQL())
	slotService := slots.NewService(slotRepo, appLogger)

	result, err := slotService.GenerateSlots(ctx, slots.GenerateSlotsRequest{
		Sections:  "A,B,C",
		Rows:      4,
		Columns:   10,
		EVPercent: 20,
	})
	if err != nil {
		return fmt.Errorf("failed to seed slot layout: %w", err)
	}
	fmt.Printf("  Generated %d slots across %d sections\n", result.TotalSlots, result.Sections)

	// A couple of active sessions so the dashboard has something to show
	if err := s.seedSessions(ctx, cfg, slotRepo, appLogger); err != nil {
		return fmt.Errorf("failed to seed sessions: %w", err)
	}

	return nil
}

// seedSessions books a handful of demo sessions through the real lease path
func (s *Seeder) seedSessions(ctx context.Context, cfg *config.Config, slotRepo slots.Repository, appLogger *logger.Logger) error {
	sessionRepo := sessions.NewRepository(s.db.GetPostgreSQL())
	sessionService := sessions.NewService(sessionRepo, slotRepo, cfg.Parking, appLogger)

	demos := []sessions.BookRequest{
		{
			SlotNumber:      "A305",
			HolderName:      "Ravi Kumar",
			HolderContact:   "9876543210",
			HolderEmail:     "ravi.kumar@example.com",
			VehicleNumber:   "KA01AB1234",
			VehicleClass:    slots.VehicleCar,
			AllottedMinutes: 120,
		},
		{
			SlotNumber:      "B410",
			HolderName:      "Meera Shetty",
			HolderContact:   "9876501234",
			HolderEmail:     "meera.shetty@example.com",
			VehicleNumber:   "KA05CD5678",
			VehicleClass:    slots.VehicleSUV,
			AllottedMinutes: 60,
		},
	}

	for _, req := range demos {
		booked, err := sessionService.Book(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to book %s: %w", req.SlotNumber, err)
		}
		fmt.Printf("  Booked %s for %s (token %s)\n", req.SlotNumber, req.VehicleNumber, booked.Token)
	}

	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
