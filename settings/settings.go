package settings

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/rdx"
	"pitchbook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	generalDocID = "general"
	cacheKey     = "settings:general"
	cacheTTL     = 5 * time.Minute
)

func defaults() *models.GeneralSettings {
	return &models.GeneralSettings{
		WorkingHours:           &models.HoursWindow{Start: "08:00", End: "22:00"},
		MinimumBookingDuration: 60,
		AdvanceBookingDays:     30,
		AutoApprove:            false,
	}
}

// GetGeneral returns the facility-wide settings document, reading through
// the Redis cache. Missing document means defaults.
func GetGeneral(ctx context.Context) (*models.GeneralSettings, error) {
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var s models.GeneralSettings
		if err := json.Unmarshal([]byte(cached), &s); err == nil {
			return &s, nil
		}
	}

	var s models.GeneralSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"_id": generalDocID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(s); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(data), cacheTTL); err != nil {
			log.Println("settings cache write:", err)
		}
	}
	return &s, nil
}

// SaveGeneral upserts the settings document and invalidates the cache.
func SaveGeneral(ctx context.Context, s *models.GeneralSettings) error {
	opts := options.Replace().SetUpsert(true)
	_, err := db.SettingsCollection.ReplaceOne(ctx, bson.M{"_id": generalDocID}, s, opts)
	if err != nil {
		return err
	}
	if err := rdx.RdxDel(cacheKey); err != nil {
		log.Println("settings cache invalidate:", err)
	}
	return nil
}

// EstimateFee prices a booking for a field type. Tiers take precedence:
// the first tier whose minute cap covers the duration wins, and an
// oversized booking falls into the last tier. Without tiers an hourly
// rate is prorated and rounded. Returns nil when no pricing is
// configured for the field type.
func EstimateFee(fees *models.FeesConfig, fieldType string, durationMinutes int) *int {
	if fees == nil {
		return nil
	}
	if tiers, ok := fees.Tiers[fieldType]; ok && len(tiers) > 0 {
		for _, t := range tiers {
			if durationMinutes <= t.Minutes {
				price := t.Price
				return &price
			}
		}
		price := tiers[len(tiers)-1].Price
		return &price
	}
	if perHour, ok := fees.PerHour[fieldType]; ok {
		price := int(math.Round(float64(perHour) * float64(durationMinutes) / 60.0))
		return &price
	}
	return nil
}

// WithinAdvanceWindow checks that a date is not beyond the allowed
// booking horizon. Zero disables the limit. Past dates are allowed here;
// they are a separate policy concern.
func WithinAdvanceWindow(date string, advanceDays int, now time.Time) bool {
	if advanceDays <= 0 {
		return true
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	limit := now.AddDate(0, 0, advanceDays)
	return !d.After(limit)
}

// GET /api/settings/general
func GetGeneralHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	s, err := GetGeneral(ctx)
	if err != nil {
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// PUT /api/settings/general — requires clubs.settings.
func UpdateGeneralHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "clubs.settings") {
		permissions.WriteError(w, permissions.Denied("clubs.settings"))
		return
	}

	var s models.GeneralSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if s.WorkingHours != nil {
		if _, err := parseWindow(s.WorkingHours); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if s.MinimumBookingDuration < 0 || s.AdvanceBookingDays < 0 {
		http.Error(w, "negative policy values", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := SaveGeneral(ctx, &s); err != nil {
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}
