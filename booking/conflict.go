package booking

import (
	"context"

	"pitchbook/db"
	"pitchbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Overlaps is the half-open interval collision test: [aStart,aEnd) and
// [bStart,bEnd) collide iff aStart < bEnd && bStart < aEnd. Touching
// endpoints do not collide.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// fetchBookings loads all bookings for a field and date. Passing a session
// context runs the read inside the surrounding transaction.
func fetchBookings(ctx context.Context, fieldID, date string) ([]models.Booking, error) {
	cur, err := db.BookingsCollection.Find(ctx, bson.M{"field_id": fieldID, "date": date})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// IsSlotAvailable checks a candidate interval against working hours and
// existing occupying bookings for (fieldID, date). The candidate's own
// validity (end > start) must be checked by the caller; here end > start
// is only enforced relative to the working-hours window.
func IsSlotAvailable(ctx context.Context, fieldID, date, startTime, endTime string, workingHours *models.HoursWindow) (bool, error) {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return false, err
	}
	end, err := TimeToMinutes(endTime)
	if err != nil {
		return false, err
	}

	if workingHours != nil {
		ws, err := TimeToMinutes(workingHours.Start)
		if err != nil {
			return false, err
		}
		we, err := TimeToMinutes(workingHours.End)
		if err != nil {
			return false, err
		}
		if !(start >= ws && end <= we && end > start) {
			return false, nil
		}
	}

	existing, err := fetchBookings(ctx, fieldID, date)
	if err != nil {
		return false, err
	}
	return !collides(existing, start, end, ""), nil
}

// collides runs the overlap test over a snapshot, skipping non-occupying
// bookings and, optionally, one booking id (edit-in-place).
func collides(snapshot []models.Booking, start, end int, excludeID string) bool {
	for _, b := range snapshot {
		if excludeID != "" && b.BookingID == excludeID {
			continue
		}
		if !Occupies(b.Status) {
			continue
		}
		bs, err := TimeToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		be, err := TimeToMinutes(b.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(start, end, bs, be) {
			return true
		}
	}
	return false
}

// CheckOverlap is the in-memory variant used when a snapshot is already at
// hand (calendar edits): same collision semantics as IsSlotAvailable, with
// an optional excluded booking id.
func CheckOverlap(snapshot []models.Booking, fieldID, date, startTime, endTime, excludeID string) (bool, error) {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return false, err
	}
	end, err := TimeToMinutes(endTime)
	if err != nil {
		return false, err
	}
	for _, b := range snapshot {
		if b.FieldID != fieldID || b.Date != date {
			continue
		}
		if excludeID != "" && b.BookingID == excludeID {
			continue
		}
		if !Occupies(b.Status) {
			continue
		}
		bs, err := TimeToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		be, err := TimeToMinutes(b.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(start, end, bs, be) {
			return true, nil
		}
	}
	return false, nil
}
