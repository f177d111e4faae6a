package booking

import (
	"testing"

	"pitchbook/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.BookingPending, models.BookingApproved, true},
		{models.BookingPending, models.BookingRejected, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingApproved, models.BookingCancelled, false},
		{models.BookingApproved, models.BookingRejected, false},
		{models.BookingCancelled, models.BookingApproved, false},
		{models.BookingRejected, models.BookingCancelled, false},
		{models.BookingPending, "weird", false},
		// legacy documents without a status behave as active
		{"", models.BookingCancelled, true},
	}
	for _, c := range cases {
		err := CanTransition(c.from, c.to)
		if c.ok && err != nil {
			t.Errorf("CanTransition(%q, %q) = %v, want nil", c.from, c.to, err)
		}
		if !c.ok && err == nil {
			t.Errorf("CanTransition(%q, %q) = nil, want error", c.from, c.to)
		}
	}
}

func TestOccupies(t *testing.T) {
	if Occupies(models.BookingCancelled) || Occupies(models.BookingRejected) {
		t.Fatal("cancelled/rejected must not occupy")
	}
	if !Occupies(models.BookingPending) || !Occupies(models.BookingApproved) || !Occupies("") {
		t.Fatal("pending, approved and legacy statuses must occupy")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []string{models.BookingApproved, models.BookingRejected, models.BookingCancelled} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%q) = false", s)
		}
	}
	if IsTerminal(models.BookingPending) || IsTerminal("") {
		t.Fatal("pending and legacy statuses are not terminal")
	}
}
