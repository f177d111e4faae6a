package models

// FeeTier prices a booking whose duration fits under Minutes.
type FeeTier struct {
	Minutes int `json:"minutes" bson:"minutes"`
	Price   int `json:"price" bson:"price"`
}

type FeesConfig struct {
	PerHour map[string]int       `json:"perHour,omitempty" bson:"per_hour,omitempty"`
	Tiers   map[string][]FeeTier `json:"tiers,omitempty" bson:"tiers,omitempty"`
}

// GeneralSettings is a single document (settings/general) holding the
// facility-wide booking policy.
type GeneralSettings struct {
	WorkingHours           *HoursWindow `json:"workingHours,omitempty" bson:"working_hours,omitempty"`
	MinimumBookingDuration int          `json:"minimumBookingDuration,omitempty" bson:"minimum_booking_duration,omitempty"`
	AdvanceBookingDays     int          `json:"advanceBookingDays,omitempty" bson:"advance_booking_days,omitempty"`
	AutoApprove            bool         `json:"autoApprove,omitempty" bson:"auto_approve,omitempty"`
	Fees                   *FeesConfig  `json:"fees,omitempty" bson:"fees,omitempty"`
}
