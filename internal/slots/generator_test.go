package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLayoutCounts(t *testing.T) {
	layout, err := BuildLayout(GenerateSlotsRequest{
		Sections:  "A,B",
		Rows:      4,
		Columns:   10,
		EVPercent: 20,
	})
	require.NoError(t, err)
	require.Len(t, layout, 80)

	counts := map[SlotClass]int{}
	for i := range layout {
		counts[layout[i].Class]++
	}

	// per section: 2 emergency, 2 disabled, 20% of 40 = 8 EV
	assert.Equal(t, 4, counts[ClassEmergency])
	assert.Equal(t, 4, counts[ClassDisabled])
	assert.Equal(t, 16, counts[ClassEV])
	assert.Equal(t, 56, counts[ClassNormal])
}

func TestBuildLayoutSlotNumbers(t *testing.T) {
	layout, err := BuildLayout(GenerateSlotsRequest{Sections: "a", Rows: 2, Columns: 3})
	require.NoError(t, err)
	require.Len(t, layout, 6)

	assert.Equal(t, "A101", layout[0].SlotNumber)
	assert.Equal(t, "A103", layout[2].SlotNumber)
	assert.Equal(t, "A203", layout[5].SlotNumber)

	seen := map[string]bool{}
	for i := range layout {
		assert.False(t, seen[layout[i].SlotNumber], "duplicate slot number %s", layout[i].SlotNumber)
		seen[layout[i].SlotNumber] = true
	}
}

func TestBuildLayoutEmergencySlots(t *testing.T) {
	layout, err := BuildLayout(GenerateSlotsRequest{Sections: "A", Rows: 3, Columns: 8})
	require.NoError(t, err)

	var emergency []Slot
	for i := range layout {
		if layout[i].Class == ClassEmergency {
			emergency = append(emergency, layout[i])
		}
	}
	require.Len(t, emergency, 2)

	for _, s := range emergency {
		// front row, dedicated gate, never billed, armed from the start
		assert.Equal(t, 1, s.Row)
		assert.Equal(t, GateEmergency, s.EntryGate)
		assert.Equal(t, GateEmergency, s.ExitGate)
		assert.Equal(t, 3, s.Priority)
		assert.True(t, s.EmergencyMode)
		assert.Equal(t, 3, s.EmergencyPriority)
		assert.Equal(t, 0.0, s.Pricing.BaseRate)
		assert.Equal(t, []VehicleClass{VehicleEmergency}, s.VehicleClasses)
		assert.Contains(t, s.Amenities, "NearEntrance")
	}
}

func TestBuildLayoutEVSlots(t *testing.T) {
	layout, err := BuildLayout(GenerateSlotsRequest{
		Sections:  "C",
		Rows:      4,
		Columns:   10,
		EVPercent: 20,
		EVRate:    35,
	})
	require.NoError(t, err)

	var evCount int
	for i := range layout {
		if layout[i].Class != ClassEV {
			continue
		}
		evCount++
		assert.True(t, layout[i].Charging.HasCharger)
		assert.Equal(t, "Type2", layout[i].Charging.ChargerType)
		assert.Equal(t, ChargingIdle, layout[i].Charging.ChargerState)
		assert.Equal(t, 35.0, layout[i].Pricing.BaseRate)
		// quota fills the front rows first
		assert.LessOrEqual(t, layout[i].Row, 2)
	}
	assert.Equal(t, 8, evCount)
}

func TestBuildLayoutDefaults(t *testing.T) {
	layout, err := BuildLayout(GenerateSlotsRequest{Sections: "A", Rows: 3, Columns: 4})
	require.NoError(t, err)

	for i := range layout {
		s := layout[i]
		assert.True(t, s.IsActive)
		assert.False(t, s.IsOccupied)
		assert.Equal(t, SensorOnline, s.Sensor)
		switch s.Class {
		case ClassNormal:
			assert.Equal(t, 25.0, s.Pricing.BaseRate)
			assert.Equal(t, 38.0, s.Pricing.PeakHourRate)
		case ClassDisabled:
			assert.Equal(t, 20.0, s.Pricing.BaseRate)
		}
	}

	_, err = BuildLayout(GenerateSlotsRequest{Sections: " , ", Rows: 2, Columns: 2})
	assert.Error(t, err)
}

func TestDefaultRateCardPeakRates(t *testing.T) {
	card := DefaultRateCard(1.5, 15)

	assert.Equal(t, 25.0, card.Normal.BaseRate)
	assert.Equal(t, 38.0, card.Normal.PeakHourRate)
	assert.Equal(t, 30.0, card.EV.BaseRate)
	assert.Equal(t, 45.0, card.EV.PeakHourRate)
	assert.Equal(t, 0.0, card.Emergency.BaseRate)
	assert.Equal(t, 20.0, card.Disabled.BaseRate)
	assert.Equal(t, 1.5, card.Penalties.OvertimeMultiplier)
	assert.Equal(t, 15, card.Penalties.MinExtensionMinutes)
}
