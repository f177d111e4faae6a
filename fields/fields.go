package fields

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pitchbook/db"
	"pitchbook/models"
	"pitchbook/permissions"
	"pitchbook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func loadField(ctx context.Context, fieldID string) (*models.Field, error) {
	var f models.Field
	err := db.FieldsCollection.FindOne(ctx, bson.M{"field_id": fieldID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, permissions.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GET /api/fields — active fields, for the booking calendar. No auth so
// the public rental page can render the field list.
func ListFields(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"is_active": true}
	if r.URL.Query().Get("all") == "true" {
		filter = bson.M{}
	}
	cur, err := db.FieldsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load fields")
		return
	}
	defer cur.Close(ctx)
	fields := []models.Field{}
	if err := cur.All(ctx, &fields); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load fields")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, fields)
}

// GET /api/fields/:id
func GetField(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	f, err := loadField(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, f)
}

type fieldPayload struct {
	Name           string              `json:"name"`
	Type           string              `json:"type"`
	ClubID         string              `json:"clubId"`
	Location       string              `json:"location"`
	Notes          string              `json:"notes"`
	AvailableHours *models.HoursWindow `json:"availableHours"`
}

// POST /api/fields — requires fields.write.
func CreateField(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "fields.write") {
		permissions.WriteError(w, permissions.Denied("fields.write"))
		return
	}

	var p fieldPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	f := models.Field{
		FieldID:        "f-" + uuid.NewString(),
		Name:           p.Name,
		Type:           p.Type,
		ClubID:         p.ClubID,
		Location:       p.Location,
		Notes:          p.Notes,
		IsActive:       true,
		AvailableHours: p.AvailableHours,
		CreatedAt:      time.Now(),
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.FieldsCollection.InsertOne(ctx, f); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create field")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, f)
}

// PUT /api/fields/:id — requires fields.write.
func UpdateField(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	f, err := loadField(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "fields.write",
		permissions.ResourceContext{ClubID: f.ClubID}) {
		permissions.WriteError(w, permissions.Denied("fields.write"))
		return
	}

	var p struct {
		Name           *string             `json:"name"`
		Type           *string             `json:"type"`
		Location       *string             `json:"location"`
		Notes          *string             `json:"notes"`
		IsActive       *bool               `json:"isActive"`
		AvailableHours *models.HoursWindow `json:"availableHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}
	if p.AvailableHours != nil {
		set["available_hours"] = p.AvailableHours
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if _, err := db.FieldsCollection.UpdateOne(ctx, bson.M{"field_id": f.FieldID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update field")
		return
	}
	updated, err := loadField(ctx, f.FieldID)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/fields/:id — soft delete: the field stops accepting
// bookings but its history stays queryable.
func DeleteField(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	f, err := loadField(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "fields.delete",
		permissions.ResourceContext{ClubID: f.ClubID}) {
		permissions.WriteError(w, permissions.Denied("fields.delete"))
		return
	}

	if _, err := db.FieldsCollection.UpdateOne(ctx, bson.M{"field_id": f.FieldID},
		bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete field")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
