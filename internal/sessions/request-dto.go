package sessions

import "github.com/swasthikkulal/parking-backend/internal/slots"

type BookRequest struct {
	SlotID          string             `json:"slot_id" binding:"omitempty,uuid"`
	SlotNumber      string             `json:"slot_number" binding:"omitempty,min=2,max=20"`
	HolderName      string             `json:"holder_name" binding:"required,min=2,max=100"`
	HolderContact   string             `json:"holder_contact" binding:"required,min=7,max=20"`
	HolderEmail     string             `json:"holder_email" binding:"required,email"`
	VehicleNumber   string             `json:"vehicle_number" binding:"required,min=4,max=20"`
	VehicleClass    slots.VehicleClass `json:"vehicle_class" binding:"required"`
	AllottedMinutes int                `json:"allotted_minutes" binding:"required,min=1,max=1440"`
}

type ExtendRequest struct {
	AdditionalMinutes int `json:"additional_minutes" binding:"required"`
}

type CompleteRequest struct {
	PaymentMethod *PaymentMethod `json:"payment_method" binding:"omitempty"`
}

type ForceCompleteRequest struct {
	PaymentMethod *PaymentMethod `json:"payment_method" binding:"omitempty"`
	Reason        string         `json:"reason" binding:"omitempty,max=255"`
}

type UpdatePaymentRequest struct {
	PaymentStatus PaymentStatus  `json:"payment_status" binding:"required"`
	PaymentMethod *PaymentMethod `json:"payment_method" binding:"omitempty"`
}

type SessionListQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
	Vehicle string `form:"vehicle"`
	Search  string `form:"search"`
}

type PaginatedSessions struct {
	Sessions   []SessionResponse `json:"sessions"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
