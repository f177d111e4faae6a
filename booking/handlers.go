package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/mq"
	"pitchbook/permissions"
	"pitchbook/settings"
	"pitchbook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type createPayload struct {
	FieldID     string             `json:"fieldId"`
	Date        string             `json:"date"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Notes       string             `json:"notes"`
	External    bool               `json:"external"`
	ClientName  string             `json:"clientName"`
	ClientPhone string             `json:"clientPhone"`
	CustomPrice *int               `json:"customPrice"`
	Recurring   *models.Recurrence `json:"recurring"`
}

// writeBookingError maps the booking error taxonomy onto HTTP statuses.
// Conflicts and terminal-transition attempts are 409, policy violations
// 422, everything permission-shaped defers to the permissions mapping.
func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case IsConflict(err):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case IsPolicyViolation(err):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "not found")
	default:
		permissions.WriteError(w, err)
	}
}

func loadField(ctx context.Context, fieldID string) (*models.Field, error) {
	var f models.Field
	err := db.FieldsCollection.FindOne(ctx, bson.M{"field_id": fieldID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := db.BookingsCollection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// checkPolicy validates an interval against the facility policy: times
// parse, end after start, minimum duration, advance horizon and the
// effective hours window. Returns the duration in minutes.
func checkPolicy(date, startTime, endTime string, field *models.Field, general *models.GeneralSettings, now time.Time) (int, error) {
	start, err := TimeToMinutes(startTime)
	if err != nil {
		return 0, &PolicyError{Rule: "invalid_time"}
	}
	end, err := TimeToMinutes(endTime)
	if err != nil {
		return 0, &PolicyError{Rule: "invalid_time"}
	}
	if end <= start {
		return 0, &PolicyError{Rule: "end_before_start"}
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return 0, &PolicyError{Rule: "invalid_date"}
	}

	duration := end - start
	if general.MinimumBookingDuration > 0 && duration < general.MinimumBookingDuration {
		return 0, &PolicyError{Rule: "minimum_duration"}
	}
	if !settings.WithinAdvanceWindow(date, general.AdvanceBookingDays, now) {
		return 0, &PolicyError{Rule: "advance_window"}
	}

	if hours := settings.EffectiveHours(field, general); hours != nil {
		ws, err := TimeToMinutes(hours.Start)
		if err != nil {
			return 0, err
		}
		we, err := TimeToMinutes(hours.End)
		if err != nil {
			return 0, err
		}
		if start < ws || end > we {
			return 0, &PolicyError{Rule: "working_hours"}
		}
	}
	return duration, nil
}

// CreateBooking handles POST /api/bookings. Requires bookings.write. The
// availability check and insert run in one transaction so two concurrent
// requests for the same slot cannot both commit; a recurring series is
// validated and inserted all-or-nothing in the same transaction, naming
// the first conflicting date on failure.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.write") {
		permissions.WriteError(w, permissions.Denied("bookings.write"))
		return
	}

	var p createPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.FieldID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if p.External && p.ClientName == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "external booking needs a client name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	field, err := loadField(ctx, p.FieldID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if !field.IsActive {
		writeBookingError(w, &PolicyError{Rule: "field_inactive"})
		return
	}
	general, err := settings.GetGeneral(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	duration, err := checkPolicy(p.Date, p.StartTime, p.EndTime, field, general, time.Now())
	if err != nil {
		writeBookingError(w, err)
		return
	}

	dates := []string{p.Date}
	if p.Recurring != nil && p.Recurring.Enabled {
		extra, err := RecurringDates(p.Date, p.Recurring.EndDate, p.Recurring.Frequency)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, d := range extra {
			if !settings.WithinAdvanceWindow(d, general.AdvanceBookingDays, time.Now()) {
				writeBookingError(w, &PolicyError{Rule: "advance_window"})
				return
			}
		}
		dates = append(dates, extra...)
	}

	status := models.BookingPending
	if general.AutoApprove || permissions.IsAuthorized(actor.Permissions, "bookings.approve") {
		status = models.BookingApproved
	}
	fee := settings.EstimateFee(general.Fees, field.Type, duration)

	now := time.Now()
	parentID := "b-" + uuid.NewString()
	var created []models.Booking
	for i, d := range dates {
		b := models.Booking{
			BookingID:   parentID,
			FieldID:     p.FieldID,
			Date:        d,
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
			UserID:      actor.UserID,
			UserName:    actor.Name,
			ClubID:      actor.ClubID,
			Status:      status,
			Notes:       p.Notes,
			FeeEstimate: fee,
			CustomPrice: p.CustomPrice,
			External:    p.External,
			ClientName:  p.ClientName,
			ClientPhone: p.ClientPhone,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if i > 0 {
			b.BookingID = "b-" + uuid.NewString()
			b.Recurring = &models.Recurrence{
				Enabled:   true,
				Frequency: p.Recurring.Frequency,
				EndDate:   p.Recurring.EndDate,
				ParentID:  parentID,
			}
		} else if p.Recurring != nil && p.Recurring.Enabled {
			b.Recurring = &models.Recurrence{
				Enabled:   true,
				Frequency: p.Recurring.Frequency,
				EndDate:   p.Recurring.EndDate,
			}
		}
		created = append(created, b)
	}

	_, err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		docs := make([]interface{}, 0, len(created))
		for _, b := range created {
			snapshot, err := fetchBookings(sc, b.FieldID, b.Date)
			if err != nil {
				return nil, err
			}
			start, _ := TimeToMinutes(b.StartTime)
			end, _ := TimeToMinutes(b.EndTime)
			if collides(snapshot, start, end, "") {
				return nil, &ConflictError{Date: b.Date}
			}
			docs = append(docs, b)
		}
		return db.BookingsCollection.InsertMany(sc, docs)
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}

	for _, b := range created {
		mq.Emit(ctx, models.BookingEvent{
			Type:      "created",
			BookingID: b.BookingID,
			FieldID:   b.FieldID,
			Date:      b.Date,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			UserID:    b.UserID,
			UserName:  b.UserName,
			Status:    b.Status,
		})
		BroadcastBooking(b)
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"bookings": created})
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status. Requires
// bookings.approve. Terminal bookings reject further transitions.
func UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	b, err := loadBooking(ctx, ps.ByName("id"))
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "bookings.approve",
		permissions.ResourceContext{ClubID: b.ClubID}) {
		permissions.WriteError(w, permissions.Denied("bookings.approve"))
		return
	}

	if err := transition(ctx, b, body.Status); err != nil {
		writeBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// CancelBooking handles POST /api/bookings/:id/cancel. The owner may
// cancel their own booking; anyone else needs bookings.write within the
// booking's club.
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	b, err := loadBooking(ctx, ps.ByName("id"))
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if b.UserID != actor.UserID &&
		!permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "bookings.write",
			permissions.ResourceContext{ClubID: b.ClubID}) {
		permissions.WriteError(w, permissions.Denied("bookings.write"))
		return
	}

	if err := transition(ctx, b, models.BookingCancelled); err != nil {
		writeBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// transition applies a validated status change inside a transaction, re-
// reading the document so a concurrent transition cannot be overwritten.
func transition(ctx context.Context, b *models.Booking, to string) error {
	_, err := db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		fresh, err := loadBooking(sc, b.BookingID)
		if err != nil {
			return nil, err
		}
		if err := CanTransition(fresh.Status, to); err != nil {
			return nil, err
		}
		_, err = db.BookingsCollection.UpdateOne(sc,
			bson.M{"booking_id": b.BookingID},
			bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}})
		return nil, err
	})
	if err != nil {
		return err
	}
	b.Status = to
	b.UpdatedAt = time.Now()

	mq.Emit(ctx, models.BookingEvent{
		Type:      "status_changed",
		BookingID: b.BookingID,
		FieldID:   b.FieldID,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		UserID:    b.UserID,
		UserName:  b.UserName,
		Status:    to,
	})
	BroadcastBooking(*b)
	return nil
}

type updatePayload struct {
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Notes       *string `json:"notes"`
	CustomPrice *int    `json:"customPrice"`
	Paid        *bool   `json:"paid"`
}

// UpdateBooking handles PUT /api/bookings/:id: rescheduling and edits.
// The slot re-check excludes the booking itself so an unchanged interval
// never conflicts with its own document.
func UpdateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	var p updatePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	b, err := loadBooking(ctx, ps.ByName("id"))
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if b.UserID != actor.UserID &&
		!permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "bookings.write",
			permissions.ResourceContext{ClubID: b.ClubID}) {
		permissions.WriteError(w, permissions.Denied("bookings.write"))
		return
	}
	if IsTerminal(b.Status) && b.Status != models.BookingApproved {
		writeBookingError(w, ErrInvalidTransition)
		return
	}

	date, startTime, endTime := b.Date, b.StartTime, b.EndTime
	if p.Date != "" {
		date = p.Date
	}
	if p.StartTime != "" {
		startTime = p.StartTime
	}
	if p.EndTime != "" {
		endTime = p.EndTime
	}

	set := bson.M{"updated_at": time.Now()}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	if p.Paid != nil {
		set["paid"] = *p.Paid
	}
	if p.CustomPrice != nil {
		set["custom_price"] = *p.CustomPrice
	}

	rescheduled := date != b.Date || startTime != b.StartTime || endTime != b.EndTime
	if rescheduled {
		field, err := loadField(ctx, b.FieldID)
		if err != nil {
			writeBookingError(w, err)
			return
		}
		general, err := settings.GetGeneral(ctx)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		duration, err := checkPolicy(date, startTime, endTime, field, general, time.Now())
		if err != nil {
			writeBookingError(w, err)
			return
		}
		set["date"] = date
		set["start_time"] = startTime
		set["end_time"] = endTime
		if fee := settings.EstimateFee(general.Fees, field.Type, duration); fee != nil {
			set["fee_estimate"] = *fee
		}
	}

	_, err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if rescheduled {
			snapshot, err := fetchBookings(sc, b.FieldID, date)
			if err != nil {
				return nil, err
			}
			conflict, err := CheckOverlap(snapshot, b.FieldID, date, startTime, endTime, b.BookingID)
			if err != nil {
				return nil, err
			}
			if conflict {
				return nil, &ConflictError{Date: date}
			}
		}
		_, err := db.BookingsCollection.UpdateOne(sc,
			bson.M{"booking_id": b.BookingID}, bson.M{"$set": set})
		return nil, err
	})
	if err != nil {
		writeBookingError(w, err)
		return
	}

	updated, err := loadBooking(ctx, b.BookingID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	BroadcastBooking(*updated)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// GetBookingsByDate handles GET /api/bookings?date=YYYY-MM-DD&fieldId=...
// Requires bookings.read.
func GetBookingsByDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.read") {
		permissions.WriteError(w, permissions.Denied("bookings.read"))
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "date is required")
		return
	}
	filter := bson.M{"date": date}
	if fieldID := r.URL.Query().Get("fieldId"); fieldID != "" {
		filter["field_id"] = fieldID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.BookingsCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	defer cur.Close(ctx)
	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id. Cross-club bookings are
// reported as denied, not as missing, so existence does not leak.
func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.read") {
		permissions.WriteError(w, permissions.Denied("bookings.read"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	b, err := loadBooking(ctx, ps.ByName("id"))
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if b.UserID != actor.UserID &&
		!permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "bookings.read",
			permissions.ResourceContext{ClubID: b.ClubID}) {
		permissions.WriteError(w, permissions.DeniedScope("club"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// ListMyBookings handles GET /api/my/bookings.
func ListMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.BookingsCollection.Find(ctx, bson.M{"user_id": actor.UserID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	defer cur.Close(ctx)
	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// DeleteBooking handles DELETE /api/bookings/:id. Requires
// bookings.delete; removal is for data hygiene, cancellation is the
// lifecycle operation.
func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	b, err := loadBooking(ctx, ps.ByName("id"))
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "bookings.delete",
		permissions.ResourceContext{ClubID: b.ClubID}) {
		permissions.WriteError(w, permissions.Denied("bookings.delete"))
		return
	}

	if _, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"booking_id": b.BookingID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
