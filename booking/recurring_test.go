package booking

import (
	"reflect"
	"testing"

	"pitchbook/models"
)

func TestRecurringDatesWeekly(t *testing.T) {
	got, err := RecurringDates("2024-01-01", "2024-01-22", models.FreqWeekly)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-08", "2024-01-15", "2024-01-22"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("weekly = %v, want %v", got, want)
	}
}

func TestRecurringDatesBiweekly(t *testing.T) {
	got, err := RecurringDates("2024-01-01", "2024-02-01", models.FreqBiweekly)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-01-15", "2024-01-29"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("biweekly = %v, want %v", got, want)
	}
}

func TestRecurringDatesMonthly(t *testing.T) {
	got, err := RecurringDates("2024-01-15", "2024-04-15", models.FreqMonthly)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-02-15", "2024-03-15", "2024-04-15"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("monthly = %v, want %v", got, want)
	}
}

// The origin date is never part of the expansion, and an end before the
// first step yields nothing.
func TestRecurringDatesExcludesOrigin(t *testing.T) {
	got, err := RecurringDates("2024-01-01", "2024-01-01", models.FreqWeekly)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty expansion, got %v", got)
	}
}

func TestRecurringDatesErrors(t *testing.T) {
	if _, err := RecurringDates("2024-01-01", "2024-02-01", "daily"); err == nil {
		t.Fatal("unknown frequency should fail")
	}
	if _, err := RecurringDates("01/01/2024", "2024-02-01", models.FreqWeekly); err == nil {
		t.Fatal("bad origin date should fail")
	}
	if _, err := RecurringDates("2024-01-01", "soon", models.FreqWeekly); err == nil {
		t.Fatal("bad end date should fail")
	}
}
