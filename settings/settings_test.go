package settings

import (
	"testing"
	"time"

	"pitchbook/models"
)

func TestEstimateFeeTiers(t *testing.T) {
	fees := &models.FeesConfig{
		Tiers: map[string][]models.FeeTier{
			"grass": {
				{Minutes: 60, Price: 100},
				{Minutes: 120, Price: 180},
			},
		},
	}
	cases := []struct {
		minutes int
		want    int
	}{
		{45, 100},  // fits the first tier
		{60, 100},  // cap is inclusive
		{90, 180},  // first tier that covers it
		{120, 180},
		{200, 180}, // oversized falls into the last tier
	}
	for _, c := range cases {
		got := EstimateFee(fees, "grass", c.minutes)
		if got == nil || *got != c.want {
			t.Errorf("EstimateFee(%d min) = %v, want %d", c.minutes, got, c.want)
		}
	}
}

func TestEstimateFeePerHour(t *testing.T) {
	fees := &models.FeesConfig{PerHour: map[string]int{"turf": 100}}
	cases := []struct {
		minutes int
		want    int
	}{
		{60, 100},
		{90, 150},
		{45, 75},
		{50, 83}, // 83.33 rounds down
		{55, 92}, // 91.67 rounds up
	}
	for _, c := range cases {
		got := EstimateFee(fees, "turf", c.minutes)
		if got == nil || *got != c.want {
			t.Errorf("EstimateFee(%d min) = %v, want %d", c.minutes, got, c.want)
		}
	}
}

// Tiers win over an hourly rate for the same field type.
func TestEstimateFeeTiersPrecedence(t *testing.T) {
	fees := &models.FeesConfig{
		PerHour: map[string]int{"grass": 999},
		Tiers:   map[string][]models.FeeTier{"grass": {{Minutes: 60, Price: 100}}},
	}
	got := EstimateFee(fees, "grass", 60)
	if got == nil || *got != 100 {
		t.Fatalf("EstimateFee = %v, want 100", got)
	}
}

func TestEstimateFeeUnpriced(t *testing.T) {
	if got := EstimateFee(nil, "grass", 60); got != nil {
		t.Fatalf("nil config should price to nil, got %v", got)
	}
	fees := &models.FeesConfig{PerHour: map[string]int{"turf": 100}}
	if got := EstimateFee(fees, "grass", 60); got != nil {
		t.Fatalf("unpriced field type should yield nil, got %v", got)
	}
}

func TestWithinAdvanceWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if !WithinAdvanceWindow("2024-05-15", 30, now) {
		t.Fatal("date inside the horizon should pass")
	}
	if !WithinAdvanceWindow("2024-05-31", 30, now) {
		t.Fatal("date exactly on the horizon should pass")
	}
	if WithinAdvanceWindow("2024-06-15", 30, now) {
		t.Fatal("date beyond the horizon should fail")
	}
	if !WithinAdvanceWindow("2030-01-01", 0, now) {
		t.Fatal("zero disables the limit")
	}
	if WithinAdvanceWindow("not-a-date", 30, now) {
		t.Fatal("unparseable date should fail")
	}
}

func TestParseWindow(t *testing.T) {
	if _, err := parseWindow(&models.HoursWindow{Start: "08:00", End: "22:00"}); err != nil {
		t.Fatalf("valid window rejected: %v", err)
	}
	if _, err := parseWindow(&models.HoursWindow{Start: "22:00", End: "08:00"}); err == nil {
		t.Fatal("inverted window should fail")
	}
	if _, err := parseWindow(&models.HoursWindow{Start: "8am", End: "22:00"}); err == nil {
		t.Fatal("unparseable time should fail")
	}
}

func TestEffectiveHours(t *testing.T) {
	general := &models.GeneralSettings{WorkingHours: &models.HoursWindow{Start: "08:00", End: "22:00"}}
	fieldOwn := &models.Field{AvailableHours: &models.HoursWindow{Start: "09:00", End: "18:00"}}
	fieldBare := &models.Field{}

	if got := EffectiveHours(fieldOwn, general); got.Start != "09:00" {
		t.Fatalf("field window should win, got %+v", got)
	}
	if got := EffectiveHours(fieldBare, general); got.Start != "08:00" {
		t.Fatalf("facility window should apply, got %+v", got)
	}
	if got := EffectiveHours(nil, nil); got != nil {
		t.Fatalf("no configuration should yield nil, got %+v", got)
	}
}
