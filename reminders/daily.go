package reminders

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/rdx"
	"pitchbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// StartDailyReminders runs hourly and reminds owners of tomorrow's
// approved bookings. A Redis SETNX per booking keeps restarts and
// multiple instances from duplicating reminders.
func StartDailyReminders() {
	ticker := time.NewTicker(time.Hour)
	for range ticker.C {
		if err := sendReminders(context.Background()); err != nil {
			log.Println("daily reminders:", err)
		}
	}
}

// RunReminders handles POST /api/reminders/run so an external scheduler
// can trigger the same pass the in-process ticker makes. Requires
// bookings.approve. The Redis dedupe makes repeated calls harmless.
func RunReminders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "bookings.approve") {
		permissions.WriteError(w, permissions.Denied("bookings.approve"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	if err := sendReminders(ctx); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to send reminders")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func sendReminders(ctx context.Context) error {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	cur, err := db.BookingsCollection.Find(ctx,
		bson.M{"date": tomorrow, "status": models.BookingApproved})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return err
	}

	for _, b := range bookings {
		if b.External {
			continue
		}
		key := "reminder:" + b.BookingID + ":" + b.Date
		claimed, err := rdx.RdxSetNX(key, "1", 48*time.Hour)
		if err != nil {
			log.Println("reminder dedupe:", err)
			continue
		}
		if !claimed {
			continue
		}
		err = insertNotification(ctx, models.Notification{
			Type:      "reminder",
			BookingID: b.BookingID,
			UserID:    b.UserID,
			Message: fmt.Sprintf("Reminder: your booking tomorrow %s %s-%s",
				b.Date, b.StartTime, b.EndTime),
		})
		if err != nil {
			log.Println("reminder insert:", err)
		}
	}
	return nil
}
