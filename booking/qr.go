package booking

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pitchbook/permissions"
	"pitchbook/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
)

// BookingQR handles GET /api/bookings/:id/qr, returning a PNG that
// encodes the confirmation details for gate check-in.
func BookingQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	b, err := loadBooking(ctx, ps.ByName("id"))
	if err != nil {
		writeBookingError(w, err)
		return
	}
	if b.UserID != actor.UserID &&
		!permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "bookings.read",
			permissions.ResourceContext{ClubID: b.ClubID}) {
		permissions.WriteError(w, permissions.Denied("bookings.read"))
		return
	}

	payload := fmt.Sprintf("booking:%s|field:%s|%s %s-%s|status:%s",
		b.BookingID, b.FieldID, b.Date, b.StartTime, b.EndTime, b.Status)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
