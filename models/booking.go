package models

import "time"

// Booking statuses. Approved, rejected and cancelled are terminal.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
)

// Recurrence frequencies.
const (
	FreqWeekly   = "weekly"
	FreqBiweekly = "biweekly"
	FreqMonthly  = "monthly"
)

type Recurrence struct {
	Enabled   bool   `json:"enabled" bson:"enabled"`
	Frequency string `json:"frequency" bson:"frequency"`
	EndDate   string `json:"endDate" bson:"end_date"`
	// ParentID links a generated occurrence back to the series origin.
	ParentID string `json:"parentId,omitempty" bson:"parent_id,omitempty"`
}

type Booking struct {
	BookingID string `json:"bookingId" bson:"booking_id"`
	FieldID   string `json:"fieldId" bson:"field_id"`
	Date      string `json:"date" bson:"date"`           // YYYY-MM-DD
	StartTime string `json:"startTime" bson:"start_time"` // HH:MM
	EndTime   string `json:"endTime" bson:"end_time"`     // HH:MM, [start,end)

	UserID    string `json:"userId" bson:"user_id"`
	UserName  string `json:"userName,omitempty" bson:"user_name,omitempty"`
	ClubID    string `json:"clubId,omitempty" bson:"club_id,omitempty"`
	Status    string `json:"status" bson:"status"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`

	FeeEstimate *int `json:"feeEstimate,omitempty" bson:"fee_estimate,omitempty"`
	CustomPrice *int `json:"customPrice,omitempty" bson:"custom_price,omitempty"`
	Paid        bool `json:"paid" bson:"paid"`

	// External bookings entered on behalf of a client outside the club.
	External    bool   `json:"external,omitempty" bson:"external,omitempty"`
	ClientName  string `json:"clientName,omitempty" bson:"client_name,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty" bson:"client_phone,omitempty"`

	Recurring *Recurrence `json:"recurring,omitempty" bson:"recurring,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type RentalRequest struct {
	RequestID   string    `json:"requestId" bson:"request_id"`
	FieldID     string    `json:"fieldId" bson:"field_id"`
	Date        string    `json:"date" bson:"date"`
	StartTime   string    `json:"startTime" bson:"start_time"`
	EndTime     string    `json:"endTime" bson:"end_time"`
	ClientName  string    `json:"clientName" bson:"client_name"`
	ClientPhone string    `json:"clientPhone" bson:"client_phone"`
	Message     string    `json:"message,omitempty" bson:"message,omitempty"`
	Status      string    `json:"status" bson:"status"` // new, approved, rejected
	FeeEstimate *int      `json:"feeEstimate,omitempty" bson:"fee_estimate,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
