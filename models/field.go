package models

import "time"

// HoursWindow is a daily availability window, "HH:MM" inclusive start,
// exclusive end.
type HoursWindow struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

type Field struct {
	FieldID   string       `json:"fieldId" bson:"field_id"`
	Name      string       `json:"name" bson:"name"`
	Type      string       `json:"type" bson:"type"` // fee-rate lookup key, e.g. "grass", "turf"
	ClubID    string       `json:"clubId,omitempty" bson:"club_id,omitempty"`
	Location  string       `json:"location,omitempty" bson:"location,omitempty"`
	Notes     string       `json:"notes,omitempty" bson:"notes,omitempty"`
	IsActive  bool         `json:"isActive" bson:"is_active"`
	Photo     string       `json:"photo,omitempty" bson:"photo,omitempty"`
	Thumb     string       `json:"thumb,omitempty" bson:"thumb,omitempty"`
	// AvailableHours overrides the global working hours when set.
	AvailableHours *HoursWindow `json:"availableHours,omitempty" bson:"available_hours,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}
