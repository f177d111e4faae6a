package booking

import (
	"testing"

	"pitchbook/models"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd, bStart, bEnd int
		want                   bool
	}{
		{"identical", 600, 660, 600, 660, true},
		{"contained", 600, 720, 630, 660, true},
		{"partial", 600, 660, 630, 690, true},
		{"touching end-to-start", 600, 660, 660, 720, false},
		{"touching start-to-end", 660, 720, 600, 660, false},
		{"disjoint", 600, 660, 720, 780, false},
	}
	for _, c := range cases {
		if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func snapshot() []models.Booking {
	return []models.Booking{
		{BookingID: "b1", FieldID: "f1", Date: "2024-05-01", StartTime: "10:00", EndTime: "11:00", Status: models.BookingApproved},
		{BookingID: "b2", FieldID: "f1", Date: "2024-05-01", StartTime: "12:00", EndTime: "13:00", Status: models.BookingCancelled},
		{BookingID: "b3", FieldID: "f1", Date: "2024-05-01", StartTime: "14:00", EndTime: "15:00", Status: models.BookingPending},
		{BookingID: "b4", FieldID: "f2", Date: "2024-05-01", StartTime: "10:00", EndTime: "11:00", Status: models.BookingApproved},
	}
}

func TestCheckOverlapApproved(t *testing.T) {
	conflict, err := CheckOverlap(snapshot(), "f1", "2024-05-01", "10:30", "11:30", "")
	if err != nil {
		t.Fatal(err)
	}
	if !conflict {
		t.Fatal("overlap with approved booking should conflict")
	}
}

// Cancelled and rejected bookings free their slot.
func TestCheckOverlapSkipsNonOccupying(t *testing.T) {
	conflict, err := CheckOverlap(snapshot(), "f1", "2024-05-01", "12:00", "13:00", "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict {
		t.Fatal("cancelled booking must not block the slot")
	}
}

func TestCheckOverlapPendingOccupies(t *testing.T) {
	conflict, err := CheckOverlap(snapshot(), "f1", "2024-05-01", "14:30", "15:30", "")
	if err != nil {
		t.Fatal(err)
	}
	if !conflict {
		t.Fatal("pending booking must block the slot")
	}
}

func TestCheckOverlapTouchingBoundary(t *testing.T) {
	conflict, err := CheckOverlap(snapshot(), "f1", "2024-05-01", "11:00", "12:00", "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict {
		t.Fatal("a booking starting exactly at another's end must not conflict")
	}
}

// Edit-in-place: the booking never conflicts with its own document.
func TestCheckOverlapSelfExclusion(t *testing.T) {
	conflict, err := CheckOverlap(snapshot(), "f1", "2024-05-01", "10:00", "11:00", "b1")
	if err != nil {
		t.Fatal(err)
	}
	if conflict {
		t.Fatal("excluded booking id must not count as a conflict")
	}
}

func TestCheckOverlapOtherField(t *testing.T) {
	conflict, err := CheckOverlap(snapshot(), "f3", "2024-05-01", "10:00", "11:00", "")
	if err != nil {
		t.Fatal(err)
	}
	if conflict {
		t.Fatal("bookings on other fields must not conflict")
	}
}
