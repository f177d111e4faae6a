package reports

import (
	"testing"

	"pitchbook/models"
)

func intp(v int) *int { return &v }

func TestBuildSummary(t *testing.T) {
	bookings := []models.Booking{
		{FieldID: "f1", Status: models.BookingApproved, FeeEstimate: intp(100), Paid: true},
		{FieldID: "f1", Status: models.BookingApproved, FeeEstimate: intp(100), CustomPrice: intp(80)},
		{FieldID: "f2", Status: models.BookingPending, FeeEstimate: intp(100)},
		{FieldID: "f2", Status: models.BookingCancelled, FeeEstimate: intp(100)},
	}
	s := BuildSummary("2024-05-01", "2024-05-31", bookings)

	if s.Total != 4 {
		t.Fatalf("Total = %d", s.Total)
	}
	if s.ByStatus[models.BookingApproved] != 2 || s.ByStatus[models.BookingPending] != 1 {
		t.Fatalf("ByStatus = %v", s.ByStatus)
	}
	if s.ByField["f1"] != 2 || s.ByField["f2"] != 2 {
		t.Fatalf("ByField = %v", s.ByField)
	}
	// Only approved bookings count; a custom price overrides the estimate.
	if s.EstimatedFees != 180 {
		t.Fatalf("EstimatedFees = %d, want 180", s.EstimatedFees)
	}
	if s.PaidFees != 100 {
		t.Fatalf("PaidFees = %d, want 100", s.PaidFees)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary("2024-05-01", "2024-05-31", nil)
	if s.Total != 0 || s.EstimatedFees != 0 || len(s.ByStatus) != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
}
