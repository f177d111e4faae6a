package reminders

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func insertNotification(ctx context.Context, n models.Notification) error {
	n.NotificationID = "n-" + uuid.NewString()
	n.CreatedAt = time.Now()
	_, err := db.NotificationsCollection.InsertOne(ctx, n)
	return err
}

// HandleBookingEvent turns booking lifecycle events into notifications.
// A new pending booking notifies every holder of bookings.approve; a
// status change notifies the booking's owner.
func HandleBookingEvent(ctx context.Context, event models.BookingEvent) {
	switch event.Type {
	case "created":
		if event.Status != models.BookingPending {
			return
		}
		cur, err := db.UserCollection.Find(ctx, bson.M{"is_active": true})
		if err != nil {
			return
		}
		defer cur.Close(ctx)
		var approvers []models.User
		if err := cur.All(ctx, &approvers); err != nil {
			return
		}
		msg := fmt.Sprintf("New booking by %s on %s %s-%s awaits approval",
			event.UserName, event.Date, event.StartTime, event.EndTime)
		for _, u := range approvers {
			if u.UserID == event.UserID {
				continue
			}
			if !permissions.IsAuthorized(u.Permissions, "bookings.approve") {
				continue
			}
			_ = insertNotification(ctx, models.Notification{
				Type:      "new_booking",
				BookingID: event.BookingID,
				UserID:    u.UserID,
				Message:   msg,
			})
		}
	case "status_changed":
		_ = insertNotification(ctx, models.Notification{
			Type:      event.Status,
			BookingID: event.BookingID,
			UserID:    event.UserID,
			Message: fmt.Sprintf("Your booking on %s %s-%s is now %s",
				event.Date, event.StartTime, event.EndTime, event.Status),
		})
	}
}

// ListNotifications handles GET /api/notifications — the actor's own
// feed, newest first.
func ListNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	filter := bson.M{"user_id": actor.UserID}
	if r.URL.Query().Get("unread") == "true" {
		filter["is_read"] = false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.NotificationsCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}
	defer cur.Close(ctx)
	list := []models.Notification{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// MarkRead handles PATCH /api/notifications/:id, flagging one
// notification as read.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	res, err := db.NotificationsCollection.UpdateOne(ctx,
		bson.M{"notification_id": ps.ByName("id"), "user_id": actor.UserID},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// MarkAllRead handles POST /api/notifications/read-all.
func MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	_, err = db.NotificationsCollection.UpdateMany(ctx,
		bson.M{"user_id": actor.UserID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update notifications")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
