package slots

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Slot{}, &OccupancyRecord{}))
	return db
}

func newSlot(mutate func(*Slot)) *Slot {
	slot := &Slot{
		SlotNumber: "A101",
		Floor:      1,
		Section:    "A",
		Row:        1,
		Column:     1,
		Class:      ClassNormal,
		Size:       SizeMedium,
		IsActive:   true,
		Sensor:     SensorOnline,
		EntryGate:  Gate1,
		ExitGate:   Gate1,
		Priority:   1,
		Pricing:    Pricing{BaseRate: 25, WeekendMultiplier: 1.5, HolidayMultiplier: 2},
	}
	if mutate != nil {
		mutate(slot)
	}
	return slot
}

func TestMarkOccupiedClaimsFreeSlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	slot := newSlot(nil)
	require.NoError(t, repo.Create(ctx, slot))

	sessionID := uuid.New()
	require.NoError(t, repo.MarkOccupied(ctx, slot.ID, sessionID))

	claimed, err := repo.GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, claimed.IsOccupied)
	require.NotNil(t, claimed.CurrentSessionID)
	assert.Equal(t, sessionID, *claimed.CurrentSessionID)
	require.NotNil(t, claimed.LastOccupied)
	assert.WithinDuration(t, time.Now(), *claimed.LastOccupied, time.Minute)

	// a second claim finds no matching row
	err = repo.MarkOccupied(ctx, slot.ID, uuid.New())
	assert.True(t, errs.IsUnavailable(err))
}

func TestMarkOccupiedConcurrentSingleWinner(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	slot := newSlot(nil)
	require.NoError(t, repo.Create(ctx, slot))

	const attempts = 10
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.MarkOccupied(ctx, slot.ID, uuid.New())
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range results {
		if err == nil {
			won++
		} else {
			assert.True(t, errs.IsUnavailable(err))
		}
	}
	assert.Equal(t, 1, won)
}

func TestMarkOccupiedRejectsIneligibleSlots(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inactive := newSlot(func(s *Slot) { s.SlotNumber = "A102"; s.IsActive = false })
	require.NoError(t, repo.Create(ctx, inactive))
	assert.True(t, errs.IsUnavailable(repo.MarkOccupied(ctx, inactive.ID, uuid.New())))

	reserved := newSlot(func(s *Slot) { s.SlotNumber = "A103"; s.IsReserved = true })
	require.NoError(t, repo.Create(ctx, reserved))
	assert.True(t, errs.IsUnavailable(repo.MarkOccupied(ctx, reserved.ID, uuid.New())))

	faulty := newSlot(func(s *Slot) { s.SlotNumber = "A104"; s.Sensor = SensorFaulty })
	require.NoError(t, repo.Create(ctx, faulty))
	assert.True(t, errs.IsUnavailable(repo.MarkOccupied(ctx, faulty.ID, uuid.New())))
}

func TestMarkFreeReleasesAndRecords(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	slot := newSlot(nil)
	require.NoError(t, repo.Create(ctx, slot))

	sessionID := uuid.New()
	require.NoError(t, repo.MarkOccupied(ctx, slot.ID, sessionID))

	// wrong holder cannot release
	err := repo.MarkFree(ctx, slot.ID, uuid.New(), nil)
	assert.True(t, errs.IsConflict(err))

	entry := time.Now().Add(-90 * time.Minute)
	record := &OccupancyRecord{
		SlotID:        slot.ID,
		SessionID:     sessionID,
		VehicleNumber: "KA01AB1234",
		VehicleClass:  VehicleCar,
		EntryTime:     entry,
		ExitTime:      time.Now(),
		Minutes:       90,
		Amount:        38,
	}
	require.NoError(t, repo.MarkFree(ctx, slot.ID, sessionID, record))

	freed, err := repo.GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, freed.IsOccupied)
	assert.Nil(t, freed.CurrentSessionID)
	assert.Equal(t, 1, freed.TotalOccupancies)

	var records int64
	require.NoError(t, db.Model(&OccupancyRecord{}).Where("session_id = ?", sessionID).Count(&records).Error)
	assert.Equal(t, int64(1), records)

	// releasing twice is a conflict, the counter does not move again
	err = repo.MarkFree(ctx, slot.ID, sessionID, record)
	assert.True(t, errs.IsConflict(err))
	freed, err = repo.GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, freed.TotalOccupancies)
}

func TestFindEligibleFiltersPool(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seed := []*Slot{
		newSlot(nil),
		newSlot(func(s *Slot) { s.SlotNumber = "A102"; s.Column = 2; s.IsOccupied = true }),
		newSlot(func(s *Slot) { s.SlotNumber = "A103"; s.Column = 3; s.Class = ClassEmergency; s.Priority = 3 }),
		newSlot(func(s *Slot) { s.SlotNumber = "A104"; s.Column = 4; s.Sensor = SensorOffline }),
		newSlot(func(s *Slot) {
			s.SlotNumber = "A105"
			s.Column = 5
			s.VehicleClasses = []VehicleClass{VehicleTwoWheeler}
		}),
	}
	for _, s := range seed {
		require.NoError(t, repo.Create(ctx, s))
	}

	// cars see the open normal slot only
	eligible, err := repo.FindEligible(ctx, VehicleCar, false)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "A101", eligible[0].SlotNumber)

	// two wheelers additionally fit the restricted slot
	eligible, err = repo.FindEligible(ctx, VehicleTwoWheeler, false)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)

	// emergency callers see everything free, emergency slots first
	eligible, err = repo.FindEligible(ctx, VehicleEmergency, true)
	require.NoError(t, err)
	require.Len(t, eligible, 3)
	assert.Equal(t, "A103", eligible[0].SlotNumber)
}

func TestDeleteGuards(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	occupied := newSlot(func(s *Slot) { s.SlotNumber = "A106" })
	require.NoError(t, repo.Create(ctx, occupied))
	require.NoError(t, repo.MarkOccupied(ctx, occupied.ID, uuid.New()))

	err := repo.Delete(ctx, occupied.ID)
	assert.True(t, errs.IsConflict(err))

	_, err = repo.DeleteAll(ctx)
	assert.True(t, errs.IsConflict(err))

	free := newSlot(func(s *Slot) { s.SlotNumber = "A107"; s.Column = 7 })
	require.NoError(t, repo.Create(ctx, free))
	require.NoError(t, repo.Delete(ctx, free.ID))
	_, err = repo.GetByID(ctx, free.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestGetByNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	slot := newSlot(nil)
	require.NoError(t, repo.Create(ctx, slot))

	found, err := repo.GetByNumber(ctx, "A101")
	require.NoError(t, err)
	assert.Equal(t, slot.ID, found.ID)

	_, err = repo.GetByNumber(ctx, "Z999")
	assert.True(t, errs.IsNotFound(err))
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSlot(nil)))

	err := repo.Create(ctx, newSlot(nil))
	assert.True(t, errs.IsConflict(err), "duplicate slot number should conflict, got %v", err)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		n := i
		require.NoError(t, repo.Create(ctx, newSlot(func(s *Slot) {
			s.SlotNumber = fmt.Sprintf("B1%02d", n+1)
			s.Section = "B"
			s.Column = n + 1
		})))
	}

	results, total, err := repo.List(ctx, SlotListQuery{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, results, 3)

	results, total, err = repo.List(ctx, SlotListQuery{Section: "B", Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, results, 7)
}
