package notifications

import (
	"encoding/json"
	"time"
)

// SessionEvent is the wire format for session lifecycle events published to
// the broker. Downstream consumers (billing exports, display boards) key on
// the slot number so one slot's events stay ordered within a partition.
type SessionEvent struct {
	Type       string    `json:"type"`
	Token      string    `json:"token"`
	SlotNumber string    `json:"slot_number"`
	Amount     float64   `json:"amount"`
	At         time.Time `json:"at"`
}

func (e *SessionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
