package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialCharge(t *testing.T) {
	// 25/hr for one hour
	assert.Equal(t, 25.0, InitialCharge(25, 60, false))

	// 25/hr for 90 minutes
	assert.Equal(t, 38.0, InitialCharge(25, 90, false))

	// half-up rounding: 25 * 30/60 = 12.5 -> 13
	assert.Equal(t, 13.0, InitialCharge(25, 30, false))

	// emergency sessions never pay
	assert.Equal(t, 0.0, InitialCharge(25, 60, true))
	assert.Equal(t, 0.0, InitialCharge(1000, 600, true))

	// zero rate yields zero
	assert.Equal(t, 0.0, InitialCharge(0, 60, false))
}

func TestExtensionCharge(t *testing.T) {
	// extending a 25/hr session by 30 minutes: round(12.5) = 13
	assert.Equal(t, 13.0, ExtensionCharge(25, 30, false))

	// one full extra hour
	assert.Equal(t, 25.0, ExtensionCharge(25, 60, false))

	assert.Equal(t, 0.0, ExtensionCharge(25, 30, true))
}

func TestOvertimePenalty(t *testing.T) {
	// 40 minutes over at 25/hr: round(25 * 40/60 * 1.5) = round(25) = 25
	assert.Equal(t, 25.0, OvertimePenalty(25, 40, false))

	// no overtime, no penalty
	assert.Equal(t, 0.0, OvertimePenalty(25, 0, false))
	assert.Equal(t, 0.0, OvertimePenalty(25, -10, false))

	// emergency never pays a penalty
	assert.Equal(t, 0.0, OvertimePenalty(25, 40, true))

	// 30 minutes over at 20/hr: round(20 * 0.5 * 1.5) = 15
	assert.Equal(t, 15.0, OvertimePenalty(20, 30, false))
}

func TestFinalAmount(t *testing.T) {
	// book 60min at 25/hr, extend 30min, run 40 minutes over
	initial := InitialCharge(25, 60, false)
	extension := ExtensionCharge(25, 30, false)
	charged := initial + extension
	assert.Equal(t, 38.0, charged)

	penalty := OvertimePenalty(25, 40, false)
	assert.Equal(t, 25.0, penalty)
	assert.Equal(t, 63.0, FinalAmount(charged, penalty))
}

func TestOvertimeMinutes(t *testing.T) {
	assert.Equal(t, 0, OvertimeMinutes(50, 60))
	assert.Equal(t, 0, OvertimeMinutes(60, 60))
	assert.Equal(t, 40, OvertimeMinutes(100, 60))
}

func TestChargesAreDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, InitialCharge(37.5, 75, false), InitialCharge(37.5, 75, false))
	}
}

func TestChargesAreMonotonic(t *testing.T) {
	prev := 0.0
	for minutes := 15; minutes <= 600; minutes += 15 {
		charge := InitialCharge(25, minutes, false)
		assert.GreaterOrEqual(t, charge, prev, "charge should not shrink as minutes grow")
		prev = charge
	}
}
