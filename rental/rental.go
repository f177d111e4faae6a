package rental

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pitchbook/booking"
	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/settings"
	"pitchbook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StatusNew      = "new"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func loadRequest(ctx context.Context, requestID string) (*models.RentalRequest, error) {
	var rr models.RentalRequest
	err := db.RentalRequestsCollection.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&rr)
	if err == mongo.ErrNoDocuments {
		return nil, permissions.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

type requestPayload struct {
	FieldID     string `json:"fieldId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	Message     string `json:"message"`
}

// CreateRequest handles POST /api/rental-requests. Unauthenticated: this
// is the public enquiry form. The slot is not reserved; staff approve it
// into a booking later, and only then does the conflict check bind.
func CreateRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p requestPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil ||
		p.FieldID == "" || p.Date == "" || p.ClientName == "" || p.ClientPhone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	start, err := booking.TimeToMinutes(p.StartTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := booking.TimeToMinutes(p.EndTime)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if end <= start {
		utils.RespondWithError(w, http.StatusBadRequest, "end must be after start")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var field models.Field
	if err := db.FieldsCollection.FindOne(ctx, bson.M{"field_id": p.FieldID, "is_active": true}).Decode(&field); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "field not found")
		return
	}

	var fee *int
	if general, err := settings.GetGeneral(ctx); err == nil {
		fee = settings.EstimateFee(general.Fees, field.Type, end-start)
	}

	rr := models.RentalRequest{
		RequestID:   "rr-" + uuid.NewString(),
		FieldID:     p.FieldID,
		Date:        p.Date,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		ClientName:  p.ClientName,
		ClientPhone: p.ClientPhone,
		Message:     p.Message,
		Status:      StatusNew,
		FeeEstimate: fee,
		CreatedAt:   time.Now(),
	}
	if _, err := db.RentalRequestsCollection.InsertOne(ctx, rr); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to submit request")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rr)
}

// ListRequests handles GET /api/rental-requests — requires
// bookings.read.
func ListRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.read") {
		permissions.WriteError(w, permissions.Denied("bookings.read"))
		return
	}

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.RentalRequestsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load requests")
		return
	}
	defer cur.Close(ctx)
	list := []models.RentalRequest{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load requests")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// ApproveRequest handles POST /api/rental-requests/:id/approve —
// requires bookings.approve. Converts the enquiry into an approved
// external booking; the slot check and insert run in one transaction so
// approval cannot race a regular booking for the same slot.
func ApproveRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.approve") {
		permissions.WriteError(w, permissions.Denied("bookings.approve"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	rr, err := loadRequest(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if rr.Status != StatusNew {
		utils.RespondWithError(w, http.StatusConflict, "request already resolved")
		return
	}

	now := time.Now()
	b := models.Booking{
		BookingID:   "b-" + uuid.NewString(),
		FieldID:     rr.FieldID,
		Date:        rr.Date,
		StartTime:   rr.StartTime,
		EndTime:     rr.EndTime,
		UserID:      actor.UserID,
		UserName:    actor.Name,
		Status:      models.BookingApproved,
		FeeEstimate: rr.FeeEstimate,
		External:    true,
		ClientName:  rr.ClientName,
		ClientPhone: rr.ClientPhone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		available, err := booking.IsSlotAvailable(sc, rr.FieldID, rr.Date, rr.StartTime, rr.EndTime, nil)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, &booking.ConflictError{Date: rr.Date}
		}
		if _, err := db.BookingsCollection.InsertOne(sc, b); err != nil {
			return nil, err
		}
		_, err = db.RentalRequestsCollection.UpdateOne(sc,
			bson.M{"request_id": rr.RequestID},
			bson.M{"$set": bson.M{"status": StatusApproved}})
		return nil, err
	})
	if err != nil {
		if booking.IsConflict(err) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to approve request")
		return
	}

	booking.BroadcastBooking(b)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"request": rr.RequestID, "booking": b})
}

// RejectRequest handles POST /api/rental-requests/:id/reject — requires
// bookings.approve.
func RejectRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.approve") {
		permissions.WriteError(w, permissions.Denied("bookings.approve"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	rr, err := loadRequest(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if rr.Status != StatusNew {
		utils.RespondWithError(w, http.StatusConflict, "request already resolved")
		return
	}

	if _, err := db.RentalRequestsCollection.UpdateOne(ctx,
		bson.M{"request_id": rr.RequestID},
		bson.M{"$set": bson.M{"status": StatusRejected}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to reject request")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
