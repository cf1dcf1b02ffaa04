package sessions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swasthikkulal/parking-backend/internal/slots"
)

type Session struct {
	ID    uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Token string    `json:"token" gorm:"uniqueIndex;not null;size:40"`

	HolderName    string `json:"holder_name" gorm:"not null;size:100"`
	HolderContact string `json:"holder_contact" gorm:"not null;size:20"`
	HolderEmail   string `json:"holder_email" gorm:"not null;size:255"`

	VehicleNumber string             `json:"vehicle_number" gorm:"not null;size:20;index"`
	VehicleClass  slots.VehicleClass `json:"vehicle_class" gorm:"type:varchar(20);not null"`

	SlotID     uuid.UUID `json:"slot_id" gorm:"type:uuid;not null;index"`
	SlotNumber string    `json:"slot_number" gorm:"not null;size:20"`

	EntryTime time.Time  `json:"entry_time" gorm:"not null"`
	ExitTime  *time.Time `json:"exit_time,omitempty"`

	AllottedMinutes int `json:"allotted_minutes" gorm:"not null;check:allotted_minutes > 0"`
	ActualMinutes   int `json:"actual_minutes" gorm:"default:0"`

	// BaseRate is snapshotted at booking so slot rate edits never change a
	// running session's bill. Zero for emergency sessions.
	BaseRate      float64 `json:"base_rate" gorm:"not null;default:0"`
	PenaltyCharge float64 `json:"penalty_charge" gorm:"default:0"`
	TotalAmount   float64 `json:"total_amount" gorm:"default:0"`

	PaymentStatus PaymentStatus  `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty" gorm:"type:varchar(20)"`

	IsEmergencyVehicle bool `json:"is_emergency_vehicle" gorm:"default:false"`

	Status Status `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`

	CompletionReason string `json:"completion_reason,omitempty" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "parking_sessions"
}

type SessionResponse struct {
	ID                 string             `json:"id"`
	Token              string             `json:"token"`
	HolderName         string             `json:"holder_name"`
	HolderContact      string             `json:"holder_contact"`
	HolderEmail        string             `json:"holder_email"`
	VehicleNumber      string             `json:"vehicle_number"`
	VehicleClass       slots.VehicleClass `json:"vehicle_class"`
	SlotID             string             `json:"slot_id"`
	SlotNumber         string             `json:"slot_number"`
	EntryTime          time.Time          `json:"entry_time"`
	ExitTime           *time.Time         `json:"exit_time,omitempty"`
	AllottedMinutes    int                `json:"allotted_minutes"`
	ActualMinutes      int                `json:"actual_minutes"`
	BaseRate           float64            `json:"base_rate"`
	PenaltyCharge      float64            `json:"penalty_charge"`
	TotalAmount        float64            `json:"total_amount"`
	PaymentStatus      PaymentStatus      `json:"payment_status"`
	PaymentMethod      *PaymentMethod     `json:"payment_method,omitempty"`
	IsEmergencyVehicle bool               `json:"is_emergency_vehicle"`
	Status             Status             `json:"status"`
	CompletionReason   string             `json:"completion_reason,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (s *Session) ToResponse() SessionResponse {
	return SessionResponse{
		ID:                 s.ID.String(),
		Token:              s.Token,
		HolderName:         s.HolderName,
		HolderContact:      s.HolderContact,
		HolderEmail:        s.HolderEmail,
		VehicleNumber:      s.VehicleNumber,
		VehicleClass:       s.VehicleClass,
		SlotID:             s.SlotID.String(),
		SlotNumber:         s.SlotNumber,
		EntryTime:          s.EntryTime,
		ExitTime:           s.ExitTime,
		AllottedMinutes:    s.AllottedMinutes,
		ActualMinutes:      s.ActualMinutes,
		BaseRate:           s.BaseRate,
		PenaltyCharge:      s.PenaltyCharge,
		TotalAmount:        s.TotalAmount,
		PaymentStatus:      s.PaymentStatus,
		PaymentMethod:      s.PaymentMethod,
		IsEmergencyVehicle: s.IsEmergencyVehicle,
		Status:             s.Status,
		CompletionReason:   s.CompletionReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// SessionStatusResponse decorates an active session with derived timing.
type SessionStatusResponse struct {
	SessionResponse
	ElapsedMinutes   int  `json:"elapsed_minutes"`
	RemainingMinutes int  `json:"remaining_minutes"`
	OvertimeMinutes  int  `json:"overtime_minutes"`
	IsOvertime       bool `json:"is_overtime"`
}

// BillingBreakdown is returned by terminal operations.
type BillingBreakdown struct {
	BaseAmount      float64 `json:"base_amount"`
	PenaltyCharge   float64 `json:"penalty_charge"`
	FinalAmount     float64 `json:"final_amount"`
	ActualMinutes   int     `json:"actual_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
}

type CompleteResult struct {
	Session SessionResponse  `json:"session"`
	Billing BillingBreakdown `json:"billing"`
}

type BookResult struct {
	Session SessionResponse `json:"session"`
	Token   string          `json:"token"`
	Amount  float64         `json:"amount"`
}
