package reports

import (
	"context"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Summary aggregates bookings over a date range for the admin dashboard.
type Summary struct {
	From          string         `json:"from"`
	To            string         `json:"to"`
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"byStatus"`
	ByField       map[string]int `json:"byField"`
	EstimatedFees int            `json:"estimatedFees"`
	PaidFees      int            `json:"paidFees"`
}

func rangeFromQuery(r *http.Request) (string, string) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" {
		from = time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	}
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}
	return from, to
}

func loadRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	cur, err := db.BookingsCollection.Find(ctx,
		bson.M{"date": bson.M{"$gte": from, "$lte": to}},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}))
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

// BuildSummary folds a booking list into the dashboard numbers. Fee
// totals count approved bookings only; a custom price overrides the
// estimate.
func BuildSummary(from, to string, bookings []models.Booking) Summary {
	s := Summary{
		From:     from,
		To:       to,
		Total:    len(bookings),
		ByStatus: map[string]int{},
		ByField:  map[string]int{},
	}
	for _, b := range bookings {
		s.ByStatus[b.Status]++
		s.ByField[b.FieldID]++
		if b.Status != models.BookingApproved {
			continue
		}
		fee := 0
		if b.CustomPrice != nil {
			fee = *b.CustomPrice
		} else if b.FeeEstimate != nil {
			fee = *b.FeeEstimate
		}
		s.EstimatedFees += fee
		if b.Paid {
			s.PaidFees += fee
		}
	}
	return s
}

// BookingsSummary handles GET /api/reports/bookings — requires
// reports.view.
func BookingsSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "reports.view") {
		permissions.WriteError(w, permissions.Denied("reports.view"))
		return
	}

	from, to := rangeFromQuery(r)
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	bookings, err := loadRange(ctx, from, to)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, BuildSummary(from, to, bookings))
}
