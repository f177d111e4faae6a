package models

import "time"

type Notification struct {
	NotificationID string    `json:"notificationId" bson:"notification_id"`
	Type           string    `json:"type" bson:"type"` // new_booking, approved, rejected, cancelled, reminder
	BookingID      string    `json:"bookingId,omitempty" bson:"booking_id,omitempty"`
	UserID         string    `json:"userId" bson:"user_id"`
	Message        string    `json:"message" bson:"message"`
	IsRead         bool      `json:"isRead" bson:"is_read"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// BookingEvent is the payload published on the booking events channel.
type BookingEvent struct {
	Type      string `json:"type"` // created, status_changed
	BookingID string `json:"booking_id"`
	FieldID   string `json:"field_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Status    string `json:"status"`
}
