package slots

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthikkulal/parking-backend/internal/shared/errs"
	"github.com/swasthikkulal/parking-backend/pkg/logger"
)

func TestEmergencyModePreservesSlotIdentity(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.New())
	ctx := context.Background()

	holder := uuid.New()
	slot := newSlot(func(s *Slot) {
		s.Class = ClassEV
		s.EntryGate = Gate2
		s.ExitGate = Gate3
		s.Pricing.BaseRate = 30
		s.IsReserved = true
		s.ReservedFor = &holder
		s.Sensor = SensorMaintenance
	})
	require.NoError(t, repo.Create(ctx, slot))

	armed, err := svc.SetEmergencyMode(ctx, slot.ID, 2)
	require.NoError(t, err)
	assert.True(t, armed.EmergencyMode)
	assert.Equal(t, 2, armed.EmergencyPriority)

	// the override drops the reservation and forces the sensor online
	assert.False(t, armed.IsReserved)
	assert.Empty(t, armed.ReservedFor)
	assert.Equal(t, SensorOnline, armed.Sensor)

	// class, gates, and rates survive the override
	assert.Equal(t, ClassEV, armed.Class)
	assert.Equal(t, Gate2, armed.EntryGate)
	assert.Equal(t, Gate3, armed.ExitGate)
	assert.Equal(t, 30.0, armed.Pricing.BaseRate)

	cleared, err := svc.ClearEmergencyMode(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, cleared.EmergencyMode)
	assert.Equal(t, 0, cleared.EmergencyPriority)
	assert.Equal(t, ClassEV, cleared.Class)
	assert.Equal(t, Gate2, cleared.EntryGate)
	assert.Equal(t, 30.0, cleared.Pricing.BaseRate)
}

func TestEmergencyModeClampsPriority(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.New())
	ctx := context.Background()

	slot := newSlot(nil)
	require.NoError(t, repo.Create(ctx, slot))

	armed, err := svc.SetEmergencyMode(ctx, slot.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, armed.EmergencyPriority)
}

func TestEmergencyModeGuards(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.New())
	ctx := context.Background()

	slot := newSlot(nil)
	require.NoError(t, repo.Create(ctx, slot))

	// clearing a slot that was never armed
	_, err := svc.ClearEmergencyMode(ctx, slot.ID)
	assert.True(t, errs.IsFailedPrecondition(err))

	// an occupied slot cannot be commandeered
	require.NoError(t, repo.MarkOccupied(ctx, slot.ID, uuid.New()))
	_, err = svc.SetEmergencyMode(ctx, slot.ID, 3)
	assert.True(t, errs.IsConflict(err))
}
