package booking

import (
	"testing"
	"time"

	"pitchbook/models"
)

func testSettings() *models.GeneralSettings {
	return &models.GeneralSettings{
		WorkingHours:           &models.HoursWindow{Start: "08:00", End: "22:00"},
		MinimumBookingDuration: 60,
		AdvanceBookingDays:     30,
	}
}

func TestCheckPolicyOK(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	duration, err := checkPolicy("2024-05-10", "09:00", "10:30", &models.Field{}, testSettings(), now)
	if err != nil {
		t.Fatalf("valid proposal rejected: %v", err)
	}
	if duration != 90 {
		t.Fatalf("duration = %d, want 90", duration)
	}
}

func TestCheckPolicyViolations(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name                       string
		date, start, end, wantRule string
	}{
		{"below minimum duration", "2024-05-10", "09:00", "09:30", "minimum_duration"},
		{"before opening", "2024-05-10", "07:00", "08:30", "working_hours"},
		{"past closing", "2024-05-10", "21:30", "23:00", "working_hours"},
		{"end before start", "2024-05-10", "10:00", "09:00", "end_before_start"},
		{"zero length", "2024-05-10", "10:00", "10:00", "end_before_start"},
		{"beyond horizon", "2024-07-01", "09:00", "10:00", "advance_window"},
		{"bad time", "2024-05-10", "9am", "10:00", "invalid_time"},
		{"bad date", "tomorrow", "09:00", "10:00", "invalid_date"},
	}
	for _, c := range cases {
		_, err := checkPolicy(c.date, c.start, c.end, &models.Field{}, testSettings(), now)
		if !IsPolicyViolation(err) {
			t.Errorf("%s: want policy violation, got %v", c.name, err)
			continue
		}
		if pe, ok := err.(*PolicyError); ok && pe.Rule != c.wantRule {
			t.Errorf("%s: rule = %q, want %q", c.name, pe.Rule, c.wantRule)
		}
	}
}

// A field's own availability window narrows the facility hours.
func TestCheckPolicyFieldWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	field := &models.Field{AvailableHours: &models.HoursWindow{Start: "10:00", End: "18:00"}}
	if _, err := checkPolicy("2024-05-10", "09:00", "10:00", field, testSettings(), now); !IsPolicyViolation(err) {
		t.Fatalf("slot outside field window should fail, got %v", err)
	}
	if _, err := checkPolicy("2024-05-10", "10:00", "11:00", field, testSettings(), now); err != nil {
		t.Fatalf("slot inside field window rejected: %v", err)
	}
}
