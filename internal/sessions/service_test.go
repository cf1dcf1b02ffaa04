package sessions

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/swasthikkulal/parking-backend/internal/shared/config"
	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/internal/slots"
	"github.com/swasthikkulal/parking-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single connection keeps the in-memory database shared across goroutines
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&slots.Slot{}, &slots.OccupancyRecord{}, &Session{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *service {
	t.Helper()

	cfg := config.ParkingConfig{
		CancelGraceWindow:   5 * time.Minute,
		StoreTimeout:        3 * time.Second,
		RetentionMinAgeDays: 30,
	}
	svc := NewService(NewRepository(db), slots.NewRepository(db), cfg, logger.New())
	return svc.(*service)
}

func seedSlot(t *testing.T, db *gorm.DB, mutate func(*slots.Slot)) *slots.Slot {
	t.Helper()

	slot := &slots.Slot{
		SlotNumber: "A301",
		Floor:      1,
		Section:    "A",
		Row:        3,
		Column:     1,
		Class:      slots.ClassNormal,
		Size:       slots.SizeMedium,
		IsActive:   true,
		Sensor:     slots.SensorOnline,
		EntryGate:  slots.Gate1,
		ExitGate:   slots.Gate1,
		Priority:   1,
		Pricing:    slots.Pricing{BaseRate: 25, PeakHourRate: 38, WeekendMultiplier: 1.2, HolidayMultiplier: 1.5},
	}
	if mutate != nil {
		mutate(slot)
	}
	require.NoError(t, db.Create(slot).Error)
	return slot
}

func bookRequest(slot *slots.Slot) BookRequest {
	return BookRequest{
		SlotID:          slot.ID.String(),
		HolderName:      "Ravi Kumar",
		HolderContact:   "9876543210",
		HolderEmail:     "ravi.kumar@example.com",
		VehicleNumber:   "ka01ab1234",
		VehicleClass:    slots.VehicleCar,
		AllottedMinutes: 60,
	}
}

func TestBookClaimsSlot(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 25.0, result.Amount)
	assert.Equal(t, "KA01AB1234", result.Session.VehicleNumber)
	assert.Equal(t, PaymentPending, result.Session.PaymentStatus)

	var claimed slots.Slot
	require.NoError(t, db.First(&claimed, "id = ?", slot.ID).Error)
	assert.True(t, claimed.IsOccupied)
	require.NotNil(t, claimed.CurrentSessionID)
	assert.Equal(t, result.Session.ID, claimed.CurrentSessionID.String())
	require.NotNil(t, claimed.LastOccupied)
	assert.WithinDuration(t, result.Session.EntryTime, *claimed.LastOccupied, time.Second)
}

func TestBookConcurrentSingleWinner(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errors := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := bookRequest(slot)
			req.VehicleNumber = fmt.Sprintf("KA01AB%04d", i)
			_, errors[i] = svc.Book(ctx, req)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errors {
		if err == nil {
			won++
		} else {
			assert.True(t, errs.IsUnavailable(err), "loser should see unavailable, got %v", err)
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one booking must win the slot")
	assert.Equal(t, attempts-1, lost)

	var activeCount int64
	require.NoError(t, db.Model(&Session{}).Where("status = ?", StatusActive).Count(&activeCount).Error)
	assert.Equal(t, int64(1), activeCount)
}

func TestBookManySlotsConservation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	const slotCount = 3
	seeded := make([]*slots.Slot, slotCount)
	for i := 0; i < slotCount; i++ {
		n := i
		seeded[i] = seedSlot(t, db, func(s *slots.Slot) {
			s.SlotNumber = fmt.Sprintf("A4%02d", n+1)
			s.Column = n + 1
		})
	}

	const workers = 12
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := bookRequest(seeded[i%slotCount])
			req.VehicleNumber = fmt.Sprintf("KA05XY%04d", i)
			if _, err := svc.Book(ctx, req); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, slotCount, successes, "every slot is granted exactly once")

	var occupiedCount int64
	require.NoError(t, db.Model(&slots.Slot{}).Where("is_occupied = ?", true).Count(&occupiedCount).Error)
	assert.Equal(t, int64(slotCount), occupiedCount)
}

func TestBookRejectsUnavailableSlots(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	inactive := seedSlot(t, db, func(s *slots.Slot) {
		s.SlotNumber = "A310"
		s.IsActive = false
	})
	_, err := svc.Book(ctx, bookRequest(inactive))
	assert.True(t, errs.IsUnavailable(err))

	offline := seedSlot(t, db, func(s *slots.Slot) {
		s.SlotNumber = "A311"
		s.Sensor = slots.SensorOffline
	})
	_, err = svc.Book(ctx, bookRequest(offline))
	assert.True(t, errs.IsUnavailable(err))

	reserved := seedSlot(t, db, func(s *slots.Slot) {
		s.SlotNumber = "A312"
		s.IsReserved = true
	})
	_, err = svc.Book(ctx, bookRequest(reserved))
	assert.True(t, errs.IsUnavailable(err))

	twoWheelerOnly := seedSlot(t, db, func(s *slots.Slot) {
		s.SlotNumber = "A313"
		s.VehicleClasses = []slots.VehicleClass{slots.VehicleTwoWheeler}
	})
	_, err = svc.Book(ctx, bookRequest(twoWheelerOnly))
	assert.True(t, errs.IsUnavailable(err))
}

func TestBookValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	req := bookRequest(slot)
	req.VehicleClass = "Hovercraft"
	_, err := svc.Book(ctx, req)
	assert.True(t, errs.IsInvalidArgument(err))

	req = bookRequest(slot)
	req.AllottedMinutes = 0
	_, err = svc.Book(ctx, req)
	assert.True(t, errs.IsInvalidArgument(err))

	req = bookRequest(slot)
	req.SlotID = ""
	req.SlotNumber = ""
	_, err = svc.Book(ctx, req)
	assert.True(t, errs.IsInvalidArgument(err))

	_, err = svc.Book(ctx, BookRequest{
		SlotNumber:      "Z999",
		HolderName:      "Nobody",
		HolderContact:   "0000000",
		HolderEmail:     "nobody@example.com",
		VehicleNumber:   "KA00XX0000",
		VehicleClass:    slots.VehicleCar,
		AllottedMinutes: 60,
	})
	assert.True(t, errs.IsNotFound(err))
}

func TestBookByNumberNormalizesInput(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	req := bookRequest(slot)
	req.SlotID = ""
	req.SlotNumber = "  a301 "
	result, err := svc.Book(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, slot.SlotNumber, result.Session.SlotNumber)
}

func TestEmergencyVehicleOverridesCompatibilityAndBilling(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	slot := seedSlot(t, db, func(s *slots.Slot) {
		s.VehicleClasses = []slots.VehicleClass{slots.VehicleTwoWheeler}
	})

	req := bookRequest(slot)
	req.VehicleClass = slots.VehicleEmergency
	result, err := svc.Book(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Amount)
	assert.True(t, result.Session.IsEmergencyVehicle)
	assert.Equal(t, PaymentPaid, result.Session.PaymentStatus)

	// payment is settled at booking, nothing to update afterwards
	_, err = svc.UpdatePayment(ctx, result.Token, UpdatePaymentRequest{PaymentStatus: PaymentPaid})
	assert.True(t, errs.IsFailedPrecondition(err))

	// even heavy overtime stays free
	svc.now = func() time.Time { return time.Now().Add(5 * time.Hour) }
	settled, err := svc.Complete(ctx, result.Token, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, settled.Billing.FinalAmount)
	assert.Equal(t, PaymentPaid, settled.Session.PaymentStatus)
}

func TestGetSessionDerivesTiming(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	entry := time.Now()
	svc.now = func() time.Time { return entry }
	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	svc.now = func() time.Time { return entry.Add(40 * time.Minute) }
	status, err := svc.GetSession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, 40, status.ElapsedMinutes)
	assert.Equal(t, 20, status.RemainingMinutes)
	assert.False(t, status.IsOvertime)

	svc.now = func() time.Time { return entry.Add(75 * time.Minute) }
	status, err = svc.GetSession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, 75, status.ElapsedMinutes)
	assert.Equal(t, 0, status.RemainingMinutes)
	assert.Equal(t, 15, status.OvertimeMinutes)
	assert.True(t, status.IsOvertime)

	_, err = svc.GetSession(ctx, "TKN0000000000000FFFFFF")
	assert.True(t, errs.IsNotFound(err))
}

func TestExtendAddsTimeAndCharge(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	// below the minimum extension
	_, err = svc.Extend(ctx, result.Token, 10)
	assert.True(t, errs.IsInvalidArgument(err))

	extended, err := svc.Extend(ctx, result.Token, 30)
	require.NoError(t, err)
	assert.Equal(t, 90, extended.AllottedMinutes)
	assert.Equal(t, 38.0, extended.TotalAmount)

	_, err = svc.Extend(ctx, "TKN0000000000000FFFFFF", 30)
	assert.True(t, errs.IsNotFound(err))
}

func TestExtendCannotRewriteSettledBill(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	entry := time.Now()
	svc.now = func() time.Time { return entry }
	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	// an extension reads the session, then settlement slips in
	session, err := svc.repo.FindActiveByToken(ctx, result.Token)
	require.NoError(t, err)

	svc.now = func() time.Time { return entry.Add(100 * time.Minute) }
	method := MethodCash
	completed, err := svc.Complete(ctx, result.Token, &method)
	require.NoError(t, err)
	assert.Equal(t, 50.0, completed.Billing.FinalAmount)

	// the stale write matches no active row and changes nothing
	_, err = svc.repo.ExtendActive(ctx, session.ID, 30, 13)
	assert.True(t, errs.IsConflict(err))

	settled, err := svc.repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, settled.Status)
	assert.Equal(t, 50.0, settled.TotalAmount)
	assert.Equal(t, 60, settled.AllottedMinutes)
}

func TestCompleteSettlesWithOvertimePenalty(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	entry := time.Now()
	svc.now = func() time.Time { return entry }
	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	_, err = svc.Extend(ctx, result.Token, 30)
	require.NoError(t, err)

	// 130 minutes on a 90 minute allotment: 40 over
	svc.now = func() time.Time { return entry.Add(130 * time.Minute) }
	settled, err := svc.Complete(ctx, result.Token, nil)
	require.NoError(t, err)

	assert.Equal(t, 130, settled.Billing.ActualMinutes)
	assert.Equal(t, 40, settled.Billing.OvertimeMinutes)
	assert.Equal(t, 25.0, settled.Billing.PenaltyCharge)
	assert.Equal(t, 63.0, settled.Billing.FinalAmount)
	assert.Equal(t, StatusCompleted, settled.Session.Status)
	assert.Equal(t, PaymentPending, settled.Session.PaymentStatus)

	// the slot is free again and the stay is on the ledger
	var freed slots.Slot
	require.NoError(t, db.First(&freed, "id = ?", slot.ID).Error)
	assert.False(t, freed.IsOccupied)
	assert.Nil(t, freed.CurrentSessionID)
	assert.Equal(t, 1, freed.TotalOccupancies)

	var records int64
	require.NoError(t, db.Model(&slots.OccupancyRecord{}).Where("slot_id = ?", slot.ID).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestCompleteWithPaymentMethodMarksPaid(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	method := MethodCash
	settled, err := svc.Complete(ctx, result.Token, &method)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, settled.Session.PaymentStatus)
	require.NotNil(t, settled.Session.PaymentMethod)
	assert.Equal(t, MethodCash, *settled.Session.PaymentMethod)
}

func TestCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, result.Token, nil)
	require.NoError(t, err)

	// terminal sessions are invisible to the active-token lookup
	_, err = svc.Complete(ctx, result.Token, nil)
	assert.True(t, errs.IsNotFound(err))

	// a racing terminal transition that already found the row loses with a conflict
	repo := NewRepository(db)
	session, err := repo.FindByToken(ctx, result.Token)
	require.NoError(t, err)
	err = repo.CancelAndRelease(ctx, session.ID, map[string]interface{}{
		"status":    StatusCancelled,
		"exit_time": time.Now(),
	})
	assert.True(t, errs.IsConflict(err))

	// only the one occupancy record from the first completion
	var records int64
	require.NoError(t, db.Model(&slots.OccupancyRecord{}).Count(&records).Error)
	assert.Equal(t, int64(1), records)
}

func TestCancelInsideGraceWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	entry := time.Now()
	svc.now = func() time.Time { return entry }
	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	svc.now = func() time.Time { return entry.Add(3 * time.Minute) }
	cancelled, err := svc.Cancel(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// slot freed, no occupancy record for a cancellation
	var freed slots.Slot
	require.NoError(t, db.First(&freed, "id = ?", slot.ID).Error)
	assert.False(t, freed.IsOccupied)
	assert.Equal(t, 0, freed.TotalOccupancies)

	var records int64
	require.NoError(t, db.Model(&slots.OccupancyRecord{}).Count(&records).Error)
	assert.Equal(t, int64(0), records)
}

func TestCancelAfterGraceWindow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	entry := time.Now()
	svc.now = func() time.Time { return entry }
	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	svc.now = func() time.Time { return entry.Add(5*time.Minute + time.Second) }
	_, err = svc.Cancel(ctx, result.Token)
	assert.True(t, errs.IsFailedPrecondition(err))

	// session still active, slot still held
	status, err := svc.GetSession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, status.Status)

	var held slots.Slot
	require.NoError(t, db.First(&held, "id = ?", slot.ID).Error)
	assert.True(t, held.IsOccupied)
}

func TestForceComplete(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	repo := NewRepository(db)
	session, err := repo.FindByToken(ctx, result.Token)
	require.NoError(t, err)

	// admin settlement collects payment up front
	_, err = svc.ForceComplete(ctx, session.ID, nil, "")
	assert.True(t, errs.IsInvalidArgument(err))

	method := MethodCash
	settled, err := svc.ForceComplete(ctx, session.ID, &method, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, settled.Session.Status)
	assert.Equal(t, PaymentPaid, settled.Session.PaymentStatus)
	assert.Equal(t, "force completed by admin", settled.Session.CompletionReason)

	// second force-complete hits the terminal guard
	_, err = svc.ForceComplete(ctx, session.ID, &method, "")
	assert.True(t, errs.IsConflict(err))
}

func TestUpdatePayment(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	method := MethodOnline
	updated, err := svc.UpdatePayment(ctx, result.Token, UpdatePaymentRequest{
		PaymentStatus: PaymentPaid,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, updated.PaymentStatus)

	_, err = svc.UpdatePayment(ctx, result.Token, UpdatePaymentRequest{PaymentStatus: "settled"})
	assert.True(t, errs.IsInvalidArgument(err))
}

func TestUpdatePaymentRejectsCancelledSession(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	slot := seedSlot(t, db, nil)
	ctx := context.Background()

	result, err := svc.Book(ctx, bookRequest(slot))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, result.Token)
	require.NoError(t, err)

	_, err = svc.UpdatePayment(ctx, result.Token, UpdatePaymentRequest{PaymentStatus: PaymentPaid})
	assert.True(t, errs.IsFailedPrecondition(err))

	cancelled, err := svc.repo.FindByToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, cancelled.PaymentStatus)
}

func TestListSessionsFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		n := i
		slot := seedSlot(t, db, func(s *slots.Slot) {
			s.SlotNumber = fmt.Sprintf("A5%02d", n+1)
		})
		req := bookRequest(slot)
		req.VehicleNumber = fmt.Sprintf("KA09ZZ%04d", i)
		result, err := svc.Book(ctx, req)
		require.NoError(t, err)
		if i < 2 {
			_, err = svc.Complete(ctx, result.Token, nil)
			require.NoError(t, err)
		}
	}

	page, err := svc.ListSessions(ctx, SessionListQuery{Status: string(StatusActive)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)

	page, err = svc.ListSessions(ctx, SessionListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Sessions, 2)
	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)

	byVehicle, err := svc.SessionsByVehicle(ctx, "ka09zz0003")
	require.NoError(t, err)
	require.Len(t, byVehicle, 1)
	assert.Equal(t, "KA09ZZ0003", byVehicle[0].VehicleNumber)
}

func TestPurgeOldRemovesOnlyStaleTerminalSessions(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	freshSlot := seedSlot(t, db, nil)
	staleSlot := seedSlot(t, db, func(s *slots.Slot) { s.SlotNumber = "A302"; s.Column = 2 })

	fresh, err := svc.Book(ctx, bookRequest(freshSlot))
	require.NoError(t, err)
	_, err = svc.Complete(ctx, fresh.Token, nil)
	require.NoError(t, err)

	stale, err := svc.Book(ctx, bookRequest(staleSlot))
	require.NoError(t, err)
	_, err = svc.Complete(ctx, stale.Token, nil)
	require.NoError(t, err)

	// age the second session past the retention floor
	old := time.Now().AddDate(0, 0, -45)
	require.NoError(t, db.Model(&Session{}).
		Where("token = ?", stale.Token).
		UpdateColumn("updated_at", old).Error)

	purged, err := svc.PurgeOld(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = NewRepository(db).FindByToken(ctx, stale.Token)
	assert.True(t, errs.IsNotFound(err))
	_, err = NewRepository(db).FindByToken(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestListAvailableFallsBackToStore(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	seedSlot(t, db, nil)
	seedSlot(t, db, func(s *slots.Slot) { s.SlotNumber = "A302"; s.Column = 2; s.IsOccupied = true })
	seedSlot(t, db, func(s *slots.Slot) { s.SlotNumber = "A303"; s.Column = 3; s.Class = slots.ClassEmergency })

	// no cache service wired, served straight from the store
	available, err := svc.ListAvailable(ctx, slots.VehicleCar)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "A301", available[0].SlotNumber)

	// emergency callers additionally see the emergency pool
	available, err = svc.ListAvailable(ctx, slots.VehicleEmergency)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	_, err = svc.ListAvailable(ctx, "Hovercraft")
	assert.True(t, errs.IsInvalidArgument(err))
}
