package users

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

func loadUser(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, permissions.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GET /api/users — requires users.read. Non-universal actors see only
// their own club's members.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "users.read") {
		permissions.WriteError(w, permissions.Denied("users.read"))
		return
	}

	filter := bson.M{}
	if !permissions.IsUniversal(actor.Permissions) {
		if actorCtx.ClubID == "" {
			utils.RespondWithJSON(w, http.StatusOK, []models.User{})
			return
		}
		filter["club_id"] = actorCtx.ClubID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.UserCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"username": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	defer cur.Close(ctx)
	list := []models.User{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/users/:id — a cross-club lookup by a non-universal actor is
// denied whether or not the user exists.
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "users.read") {
		permissions.WriteError(w, permissions.Denied("users.read"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	u, err := loadUser(ctx, ps.ByName("id"))
	if err != nil {
		if err == permissions.ErrNotFound && !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		permissions.WriteError(w, err)
		return
	}
	if u.UserID != actor.UserID &&
		!permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "users.read",
			permissions.ResourceContext{ClubID: u.ClubID}) {
		permissions.WriteError(w, permissions.DeniedScope("club"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// GET /api/me — the actor's own record, including the expanded
// capability set the UI uses to show and hide controls.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, _, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"user":     actor,
		"expanded": permissions.ExpandWildcards(actor.Permissions),
	})
}

type pendingPayload struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	RolePreset string `json:"rolePreset"`
	ClubID     string `json:"clubId"`
}

// CreatePendingUser handles POST /api/pending-users: an administrator
// pre-provisions an account before the person first signs in. The preset
// must be grantable by the actor (non-escalation applies to presets the
// same as to direct grants).
func CreatePendingUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "users.write") {
		permissions.WriteError(w, permissions.Denied("users.write"))
		return
	}

	var p pendingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	preset := p.RolePreset
	if preset == "" {
		preset = "trainer"
	}
	caps, ok := permissions.RolePresets[preset]
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "unknown role preset")
		return
	}
	if !permissions.IsUniversal(actor.Permissions) {
		if p.ClubID != "" && p.ClubID != actorCtx.ClubID {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		for _, c := range caps {
			if !permissions.IsAuthorized(actor.Permissions, c) {
				permissions.WriteError(w, permissions.Denied(c))
				return
			}
		}
	}

	clubID := p.ClubID
	if clubID == "" {
		clubID = actorCtx.ClubID
	}
	pending := models.PendingUser{
		PendingID:    "pu-" + uuid.NewString(),
		Email:        p.Email,
		Name:         p.Name,
		RolePreset:   preset,
		Permissions:  caps,
		ClubID:       clubID,
		AuthProvider: "local",
		CreatedAt:    time.Now(),
		CreatedBy:    actor.UserID,
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.PendingUserCollection.InsertOne(ctx, pending); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create pending user")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, pending)
}

// AdoptPending looks up a pending record for an email and, when found,
// returns its provisioning (preset, capabilities, club) and removes it.
// Called during registration.
func AdoptPending(ctx context.Context, email string) (*models.PendingUser, error) {
	var pending models.PendingUser
	err := db.PendingUserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&pending)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_, _ = db.PendingUserCollection.DeleteOne(ctx, bson.M{"pending_id": pending.PendingID})
	return &pending, nil
}

// PUT /api/users/:id — profile and scoping updates; requires
// users.write within the target's club.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	u, err := loadUser(ctx, ps.ByName("id"))
	if err != nil {
		if err == permissions.ErrNotFound && !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "users.write",
		permissions.ResourceContext{ClubID: u.ClubID}) {
		permissions.WriteError(w, permissions.Denied("users.write"))
		return
	}

	var p struct {
		Name      *string   `json:"name"`
		Email     *string   `json:"email"`
		ClubID    *string   `json:"clubId"`
		TeamIDs   *[]string `json:"teamIds"`
		PlayerIDs *[]string `json:"playerIds"`
		IsActive  *bool     `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	set := bson.M{"updated_at": time.Now()}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.ClubID != nil {
		// Moving a user between clubs is a universal-only operation.
		if !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		set["club_id"] = *p.ClubID
	}
	if p.TeamIDs != nil {
		set["team_ids"] = *p.TeamIDs
	}
	if p.PlayerIDs != nil {
		set["player_ids"] = *p.PlayerIDs
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": u.UserID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	updated, err := loadUser(ctx, u.UserID)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/users/:id — deactivation, not removal; bookings and audit
// history keep their author. Requires users.delete.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	u, err := loadUser(ctx, ps.ByName("id"))
	if err != nil {
		if err == permissions.ErrNotFound && !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "users.delete",
		permissions.ResourceContext{ClubID: u.ClubID}) {
		permissions.WriteError(w, permissions.Denied("users.delete"))
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": u.UserID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to deactivate user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
