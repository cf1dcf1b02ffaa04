package analytics

import "time"

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalSlots     int64 `json:"total_slots"`
	OccupiedSlots  int64 `json:"occupied_slots"`
	AvailableSlots int64 `json:"available_slots"`
	DisabledSlots  int64 `json:"disabled_slots"`
	EmergencySlots int64 `json:"emergency_slots"`
	EVSlots        int64 `json:"ev_slots"`

	ActiveSessions    int64 `json:"active_sessions"`
	CompletedToday    int64 `json:"completed_today"`
	CancelledToday    int64 `json:"cancelled_today"`
	EmergencySessions int64 `json:"emergency_sessions"`

	Revenue         RevenueStats    `json:"revenue"`
	RecentSessions  []RecentSession `json:"recent_sessions"`
	OccupancyRate   float64         `json:"occupancy_rate"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

type RevenueStats struct {
	Today        float64 `json:"today"`
	ThisWeek     float64 `json:"this_week"`
	ThisMonth    float64 `json:"this_month"`
	Total        float64 `json:"total"`
	TotalPenalty float64 `json:"total_penalty"`
}

type RecentSession struct {
	Token         string    `json:"token"`
	SlotNumber    string    `json:"slot_number"`
	VehicleNumber string    `json:"vehicle_number"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"total_amount"`
	EntryTime     time.Time `json:"entry_time"`
}

// PaymentBreakdown aggregates settled revenue per payment method.
type PaymentBreakdown struct {
	Method  string  `json:"method"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

type PaymentAnalytics struct {
	ByMethod       []PaymentBreakdown `json:"by_method"`
	PendingCount   int64              `json:"pending_count"`
	PendingAmount  float64            `json:"pending_amount"`
	PaidCount      int64              `json:"paid_count"`
	CollectedTotal float64            `json:"collected_total"`
}

// SectionStats summarizes occupancy per lot section.
type SectionStats struct {
	Section        string  `json:"section"`
	TotalSlots     int64   `json:"total_slots"`
	OccupiedSlots  int64   `json:"occupied_slots"`
	OccupancyRate  float64 `json:"occupancy_rate"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// AvailabilitySummary is the public lot overview.
type AvailabilitySummary struct {
	TotalSlots     int64            `json:"total_slots"`
	AvailableSlots int64            `json:"available_slots"`
	ByClass        map[string]int64 `json:"by_class"`
	ByGate         map[string]int64 `json:"by_gate"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
