package clubs

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
)

func loadClub(ctx context.Context, clubID string) (*models.Club, error) {
	var c models.Club
	err := db.ClubsCollection.FindOne(ctx, bson.M{"club_id": clubID, "deleted_at": nil}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, permissions.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GET /api/clubs — requires clubs.read. Non-universal actors see only
// their own club; a missing club membership yields an empty list rather
// than an error.
func ListClubs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "clubs.read") {
		permissions.WriteError(w, permissions.Denied("clubs.read"))
		return
	}

	filter := bson.M{"deleted_at": nil}
	if !permissions.IsUniversal(actor.Permissions) {
		if actorCtx.ClubID == "" {
			utils.RespondWithJSON(w, http.StatusOK, []models.Club{})
			return
		}
		filter["club_id"] = actorCtx.ClubID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.ClubsCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load clubs")
		return
	}
	defer cur.Close(ctx)
	list := []models.Club{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load clubs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/clubs/:id — cross-club reads come back as denied, not
// missing.
func GetClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "clubs.read") {
		permissions.WriteError(w, permissions.Denied("clubs.read"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	c, err := loadClub(ctx, ps.ByName("id"))
	if err != nil {
		if err == permissions.ErrNotFound && !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "clubs.read",
		permissions.ResourceContext{ClubID: c.ClubID}) {
		permissions.WriteError(w, permissions.DeniedScope("club"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c)
}

type clubPayload struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// POST /api/clubs — requires clubs.write.
func CreateClub(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "clubs.write") {
		permissions.WriteError(w, permissions.Denied("clubs.write"))
		return
	}

	var p clubPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	c := models.Club{
		ClubID:       "c-" + uuid.NewString(),
		Name:         p.Name,
		Address:      p.Address,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.ClubsCollection.InsertOne(ctx, c); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create club")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, c)
}

// PUT /api/clubs/:id — requires clubs.write within the club boundary.
func UpdateClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	c, err := loadClub(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "clubs.write",
		permissions.ResourceContext{ClubID: c.ClubID}) {
		permissions.WriteError(w, permissions.Denied("clubs.write"))
		return
	}

	var p struct {
		Name         *string `json:"name"`
		Address      *string `json:"address"`
		ContactEmail *string `json:"contactEmail"`
		ContactPhone *string `json:"contactPhone"`
		IsActive     *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if p.ContactEmail != nil {
		set["contact_email"] = *p.ContactEmail
	}
	if p.ContactPhone != nil {
		set["contact_phone"] = *p.ContactPhone
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	set["updated_at"] = time.Now()

	if _, err := db.ClubsCollection.UpdateOne(ctx, bson.M{"club_id": c.ClubID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update club")
		return
	}
	updated, err := loadClub(ctx, c.ClubID)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/clubs/:id — soft delete, requires clubs.delete.
func DeleteClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	c, err := loadClub(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "clubs.delete",
		permissions.ResourceContext{ClubID: c.ClubID}) {
		permissions.WriteError(w, permissions.Denied("clubs.delete"))
		return
	}

	now := time.Now()
	if _, err := db.ClubsCollection.UpdateOne(ctx, bson.M{"club_id": c.ClubID},
		bson.M{"$set": bson.M{"is_active": false, "deleted_at": now}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete club")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
