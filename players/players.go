package players

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

func loadPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	var p models.Player
	err := db.PlayersCollection.FindOne(ctx, bson.M{"player_id": playerID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, permissions.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// canSeePlayer widens the scoping for parents: an actor linked to a
// player by id may read it even without club administration rights.
func canSeePlayer(perms []string, actorCtx permissions.Context, p *models.Player) bool {
	if permissions.IsAuthorizedInContext(perms, actorCtx, "players.read",
		permissions.ResourceContext{ClubID: p.ClubID}) {
		return true
	}
	return permissions.IsAuthorizedInContext(perms, actorCtx, "players.read",
		permissions.ResourceContext{PlayerID: p.PlayerID})
}

// GET /api/players — requires players.read. Parents get the players in
// their own context; club staff get the club roster.
func ListPlayers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "players.read") {
		permissions.WriteError(w, permissions.Denied("players.read"))
		return
	}

	filter := bson.M{}
	if !permissions.IsUniversal(actor.Permissions) {
		switch {
		case actorCtx.ClubID != "":
			filter["club_id"] = actorCtx.ClubID
		case len(actorCtx.PlayerIDs) > 0:
			filter["player_id"] = bson.M{"$in": actorCtx.PlayerIDs}
		default:
			utils.RespondWithJSON(w, http.StatusOK, []models.Player{})
			return
		}
	}
	if teamID := r.URL.Query().Get("teamId"); teamID != "" {
		filter["team_id"] = teamID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.PlayersCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load players")
		return
	}
	defer cur.Close(ctx)
	list := []models.Player{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load players")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/players/:id
func GetPlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "players.read") {
		permissions.WriteError(w, permissions.Denied("players.read"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	p, err := loadPlayer(ctx, ps.ByName("id"))
	if err != nil {
		if err == permissions.ErrNotFound && !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		permissions.WriteError(w, err)
		return
	}
	if !canSeePlayer(actor.Permissions, actorCtx, p) {
		permissions.WriteError(w, permissions.DeniedScope("club"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

type playerPayload struct {
	Name      string   `json:"name"`
	ClubID    string   `json:"clubId"`
	TeamID    string   `json:"teamId"`
	BirthYear int      `json:"birthYear"`
	ParentIDs []string `json:"parentIds"`
}

// POST /api/players — requires players.write within the target club.
func CreatePlayer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	var p playerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" || p.ClubID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "players.write",
		permissions.ResourceContext{ClubID: p.ClubID}) {
		permissions.WriteError(w, permissions.Denied("players.write"))
		return
	}

	player := models.Player{
		PlayerID:  "p-" + uuid.NewString(),
		Name:      p.Name,
		ClubID:    p.ClubID,
		TeamID:    p.TeamID,
		BirthYear: p.BirthYear,
		ParentIDs: p.ParentIDs,
		IsActive:  true,
		CreatedAt: time.Now(),
		CreatedBy: actor.UserID,
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.PlayersCollection.InsertOne(ctx, player); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create player")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, player)
}

// PUT /api/players/:id — requires players.write within the club.
func UpdatePlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	p, err := loadPlayer(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "players.write",
		permissions.ResourceContext{ClubID: p.ClubID}) {
		permissions.WriteError(w, permissions.Denied("players.write"))
		return
	}

	var body struct {
		Name      *string   `json:"name"`
		TeamID    *string   `json:"teamId"`
		BirthYear *int      `json:"birthYear"`
		ParentIDs *[]string `json:"parentIds"`
		IsActive  *bool     `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	set := bson.M{}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.TeamID != nil {
		set["team_id"] = *body.TeamID
	}
	if body.BirthYear != nil {
		set["birth_year"] = *body.BirthYear
	}
	if body.ParentIDs != nil {
		set["parent_ids"] = *body.ParentIDs
	}
	if body.IsActive != nil {
		set["is_active"] = *body.IsActive
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if _, err := db.PlayersCollection.UpdateOne(ctx, bson.M{"player_id": p.PlayerID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update player")
		return
	}
	updated, err := loadPlayer(ctx, p.PlayerID)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/players/:id — requires players.delete; soft delete.
func DeletePlayer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	p, err := loadPlayer(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "players.delete",
		permissions.ResourceContext{ClubID: p.ClubID}) {
		permissions.WriteError(w, permissions.Denied("players.delete"))
		return
	}

	if _, err := db.PlayersCollection.UpdateOne(ctx, bson.M{"player_id": p.PlayerID},
		bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete player")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
