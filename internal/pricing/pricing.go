// Package pricing computes parking charges. Every function is pure: the same
// inputs always produce the same amounts, and nothing here reads the clock or
// touches storage.
package pricing

import "math"

const (
	// MinExtensionMinutes is the smallest extension a session may request.
	MinExtensionMinutes = 15

	// OvertimeMultiplier scales the base rate for minutes parked past the
	// allotted time.
	OvertimeMultiplier = 1.5
)

// round applies half-up rounding to the nearest rupee. math.Round rounds
// half away from zero, which matches half-up for the non-negative amounts
// produced here.
func round(v float64) float64 {
	return math.Round(v)
}

// InitialCharge is the upfront amount for a new session. Emergency sessions
// are always free.
func InitialCharge(baseRate float64, allottedMinutes int, emergency bool) float64 {
	if emergency {
		return 0
	}
	return round(baseRate * float64(allottedMinutes) / 60)
}

// ExtensionCharge is the incremental amount for extending a session by
// additionalMinutes. The caller enforces MinExtensionMinutes.
func ExtensionCharge(baseRate float64, additionalMinutes int, emergency bool) float64 {
	if emergency {
		return 0
	}
	return round(baseRate * float64(additionalMinutes) / 60)
}

// OvertimePenalty is the surcharge for staying past the allotted time.
// overtimeMinutes at or below zero yields no penalty.
func OvertimePenalty(baseRate float64, overtimeMinutes int, emergency bool) float64 {
	if emergency || overtimeMinutes <= 0 {
		return 0
	}
	return round(baseRate * (float64(overtimeMinutes) / 60) * OvertimeMultiplier)
}

// FinalAmount settles a session: everything charged so far plus any overtime
// penalty.
func FinalAmount(chargedSoFar, penalty float64) float64 {
	return chargedSoFar + penalty
}

// OvertimeMinutes is how many whole minutes a session ran past its allotted
// time, never negative.
func OvertimeMinutes(actualMinutes, allottedMinutes int) int {
	if actualMinutes <= allottedMinutes {
		return 0
	}
	return actualMinutes - allottedMinutes
}
