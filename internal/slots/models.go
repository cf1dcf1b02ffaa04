package slots

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pricing holds the per-slot rate card. Charges are computed from BaseRate;
// the multipliers are carried for rate scheduling and reporting.
type Pricing struct {
	BaseRate          float64 `json:"base_rate" gorm:"column:base_rate;not null;default:0;check:base_rate >= 0"`
	PeakHourRate      float64 `json:"peak_hour_rate" gorm:"column:peak_hour_rate;not null;default:0"`
	WeekendMultiplier float64 `json:"weekend_multiplier" gorm:"column:weekend_multiplier;not null;default:1"`
	HolidayMultiplier float64 `json:"holiday_multiplier" gorm:"column:holiday_multiplier;not null;default:1"`
}

// ChargingStation describes the charger attached to an EV slot.
type ChargingStation struct {
	HasCharger   bool           `json:"has_charger" gorm:"column:has_charger;default:false"`
	ChargerType  string         `json:"charger_type,omitempty" gorm:"column:charger_type;size:50"`
	PowerOutput  float64        `json:"power_output,omitempty" gorm:"column:power_output"`
	ChargerState ChargingStatus `json:"charger_state,omitempty" gorm:"column:charger_state;type:varchar(20)"`
}

type Slot struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SlotNumber string    `json:"slot_number" gorm:"uniqueIndex;not null;size:20"`
	Floor      int       `json:"floor" gorm:"not null;default:1"`
	Section    string    `json:"section" gorm:"not null;size:10"`
	Row        int       `json:"row" gorm:"not null;default:1"`
	Column     int       `json:"column" gorm:"column:col;not null;default:1"`

	Class SlotClass `json:"class" gorm:"type:varchar(20);not null;default:'Normal';index"`
	Size  SizeClass `json:"size" gorm:"type:varchar(20);not null;default:'Medium'"`

	VehicleClasses []VehicleClass `json:"vehicle_classes" gorm:"serializer:json;type:text"`
	Amenities      []string       `json:"amenities" gorm:"serializer:json;type:text"`

	IsActive   bool `json:"is_active" gorm:"default:true;index"`
	IsOccupied bool `json:"is_occupied" gorm:"default:false;index"`
	IsReserved bool `json:"is_reserved" gorm:"default:false"`

	// ReservedFor names who holds a reserved slot.
	ReservedFor *uuid.UUID `json:"reserved_for,omitempty" gorm:"type:uuid"`

	// EmergencyMode commandeers a slot for emergency use without touching
	// its class, gates, or rates. Priority runs 0 (normal) to 3 (critical).
	EmergencyMode     bool `json:"emergency_mode" gorm:"default:false;index"`
	EmergencyPriority int  `json:"emergency_priority" gorm:"default:0"`

	Sensor    SensorHealth `json:"sensor" gorm:"type:varchar(20);not null;default:'online'"`
	EntryGate Gate         `json:"entry_gate" gorm:"type:varchar(20);not null;default:'Gate1'"`
	ExitGate  Gate         `json:"exit_gate" gorm:"type:varchar(20);not null;default:'Gate1'"`
	Priority  int          `json:"priority" gorm:"default:1"`

	Pricing  Pricing         `json:"pricing" gorm:"embedded"`
	Charging ChargingStation `json:"charging" gorm:"embedded"`

	// CurrentSessionID points at the active session holding the slot.
	CurrentSessionID *uuid.UUID `json:"current_session_id,omitempty" gorm:"type:uuid;index"`

	LastOccupied     *time.Time `json:"last_occupied,omitempty"`
	TotalOccupancies int        `json:"total_occupancies" gorm:"default:0"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *Slot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Slot) TableName() string {
	return "slots"
}

// Supports reports whether the slot accepts the given vehicle class.
// Emergency vehicles are accepted everywhere.
func (s *Slot) Supports(v VehicleClass) bool {
	if v.IsEmergency() {
		return true
	}
	if len(s.VehicleClasses) == 0 {
		return true
	}
	for _, vc := range s.VehicleClasses {
		if vc == v {
			return true
		}
	}
	return false
}

// OccupancyRecord is one completed stay on a slot. Cancelled sessions never
// produce a record.
type OccupancyRecord struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SlotID        uuid.UUID  `json:"slot_id" gorm:"type:uuid;not null;index"`
	SessionID     uuid.UUID  `json:"session_id" gorm:"type:uuid;not null;index"`
	VehicleNumber string     `json:"vehicle_number" gorm:"not null;size:20"`
	VehicleClass  VehicleClass `json:"vehicle_class" gorm:"type:varchar(20)"`
	EntryTime     time.Time  `json:"entry_time" gorm:"not null"`
	ExitTime      time.Time  `json:"exit_time" gorm:"not null"`
	Minutes       int        `json:"minutes" gorm:"not null"`
	Amount        float64    `json:"amount" gorm:"not null;default:0"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (r *OccupancyRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (OccupancyRecord) TableName() string {
	return "slot_occupancy_records"
}

type SlotResponse struct {
	ID                string          `json:"id"`
	SlotNumber        string          `json:"slot_number"`
	Floor             int             `json:"floor"`
	Section           string          `json:"section"`
	Row               int             `json:"row"`
	Column            int             `json:"column"`
	Class             SlotClass       `json:"class"`
	Size              SizeClass       `json:"size"`
	VehicleClasses    []VehicleClass  `json:"vehicle_classes"`
	Amenities         []string        `json:"amenities"`
	IsActive          bool            `json:"is_active"`
	IsOccupied        bool            `json:"is_occupied"`
	IsReserved        bool            `json:"is_reserved"`
	ReservedFor       string          `json:"reserved_for,omitempty"`
	EmergencyMode     bool            `json:"emergency_mode"`
	EmergencyPriority int             `json:"emergency_priority"`
	Sensor            SensorHealth    `json:"sensor"`
	EntryGate         Gate            `json:"entry_gate"`
	ExitGate          Gate            `json:"exit_gate"`
	Priority          int             `json:"priority"`
	Pricing           Pricing         `json:"pricing"`
	Charging          ChargingStation `json:"charging"`
	CurrentSessionID  string          `json:"current_session_id,omitempty"`
	LastOccupied      *time.Time      `json:"last_occupied,omitempty"`
	TotalOccupancies  int             `json:"total_occupancies"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (s *Slot) ToResponse() SlotResponse {
	resp := SlotResponse{
		ID:                s.ID.String(),
		SlotNumber:        s.SlotNumber,
		Floor:             s.Floor,
		Section:           s.Section,
		Row:               s.Row,
		Column:            s.Column,
		Class:             s.Class,
		Size:              s.Size,
		VehicleClasses:    s.VehicleClasses,
		Amenities:         s.Amenities,
		IsActive:          s.IsActive,
		IsOccupied:        s.IsOccupied,
		IsReserved:        s.IsReserved,
		EmergencyMode:     s.EmergencyMode,
		EmergencyPriority: s.EmergencyPriority,
		Sensor:            s.Sensor,
		EntryGate:         s.EntryGate,
		ExitGate:          s.ExitGate,
		Priority:          s.Priority,
		Pricing:           s.Pricing,
		Charging:          s.Charging,
		LastOccupied:      s.LastOccupied,
		TotalOccupancies:  s.TotalOccupancies,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.CurrentSessionID != nil {
		resp.CurrentSessionID = s.CurrentSessionID.String()
	}
	if s.ReservedFor != nil {
		resp.ReservedFor = s.ReservedFor.String()
	}
	if resp.VehicleClasses == nil {
		resp.VehicleClasses = []VehicleClass{}
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	return resp
}

type CreateSlotRequest struct {
	SlotNumber     string         `json:"slot_number" binding:"required,min=2,max=20"`
	Floor          int            `json:"floor" binding:"omitempty,min=1,max=50"`
	Section        string         `json:"section" binding:"required,min=1,max=10"`
	Row            int            `json:"row" binding:"omitempty,min=1"`
	Column         int            `json:"column" binding:"omitempty,min=1"`
	Class          SlotClass      `json:"class" binding:"omitempty"`
	Size           SizeClass      `json:"size" binding:"omitempty"`
	VehicleClasses []VehicleClass `json:"vehicle_classes"`
	Amenities      []string       `json:"amenities"`
	EntryGate      Gate           `json:"entry_gate" binding:"omitempty"`
	ExitGate       Gate           `json:"exit_gate" binding:"omitempty"`
	Priority       int            `json:"priority" binding:"omitempty,min=1,max=5"`
	BaseRate       float64        `json:"base_rate" binding:"omitempty,min=0"`
	PeakHourRate   float64        `json:"peak_hour_rate" binding:"omitempty,min=0"`
	HasCharger     bool           `json:"has_charger"`
	ChargerType    string         `json:"charger_type" binding:"omitempty,max=50"`
	PowerOutput    float64        `json:"power_output" binding:"omitempty,min=0"`
}

type UpdateSlotRequest struct {
	Section        *string        `json:"section" binding:"omitempty,min=1,max=10"`
	Class          *SlotClass     `json:"class"`
	Size           *SizeClass     `json:"size"`
	VehicleClasses []VehicleClass `json:"vehicle_classes"`
	Amenities      []string       `json:"amenities"`
	IsActive       *bool          `json:"is_active"`
	IsReserved     *bool          `json:"is_reserved"`
	ReservedFor    *string        `json:"reserved_for"`
	Sensor         *SensorHealth  `json:"sensor"`
	EntryGate      *Gate          `json:"entry_gate"`
	ExitGate       *Gate          `json:"exit_gate"`
	Priority       *int           `json:"priority" binding:"omitempty,min=1,max=5"`
	BaseRate       *float64       `json:"base_rate" binding:"omitempty,min=0"`
	PeakHourRate   *float64       `json:"peak_hour_rate" binding:"omitempty,min=0"`
}

type EmergencyModeRequest struct {
	Priority *int `json:"priority" binding:"omitempty,min=0,max=3"`
}

type BulkUpdateRequest struct {
	SlotIDs []string          `json:"slot_ids" binding:"required,min=1"`
	Update  UpdateSlotRequest `json:"update" binding:"required"`
}

type SlotListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Floor     int    `form:"floor" binding:"omitempty,min=1"`
	Section   string `form:"section"`
	Class     string `form:"class" binding:"omitempty,oneof=Normal EV Emergency Disabled"`
	Gate      string `form:"gate"`
	Available *bool  `form:"available"`
	Active    *bool  `form:"active"`
	Search    string `form:"search"`
}

type GenerateSlotsRequest struct {
	Sections     string  `json:"sections" binding:"required"`
	Rows         int     `json:"rows" binding:"required,min=1,max=26"`
	Columns      int     `json:"columns" binding:"required,min=1,max=50"`
	EVPercent    int     `json:"ev_percent" binding:"omitempty,min=0,max=100"`
	NormalRate   float64 `json:"normal_rate" binding:"omitempty,min=0"`
	EVRate       float64 `json:"ev_rate" binding:"omitempty,min=0"`
	DisabledRate float64 `json:"disabled_rate" binding:"omitempty,min=0"`
}

type GenerateSlotsResult struct {
	Sections   int            `json:"sections"`
	TotalSlots int            `json:"total_slots"`
	ByClass    map[string]int `json:"by_class"`
	Skipped    int            `json:"skipped"`
}

type PaginatedSlots struct {
	Slots      []SlotResponse `json:"slots"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
