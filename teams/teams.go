package teams

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

func loadTeam(ctx context.Context, teamID string) (*models.Team, error) {
	var t models.Team
	err := db.TeamsCollection.FindOne(ctx, bson.M{"team_id": teamID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, permissions.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GET /api/teams — requires teams.read. Non-universal actors see their
// own club's teams.
func ListTeams(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "teams.read") {
		permissions.WriteError(w, permissions.Denied("teams.read"))
		return
	}

	filter := bson.M{}
	if !permissions.IsUniversal(actor.Permissions) {
		if actorCtx.ClubID == "" {
			utils.RespondWithJSON(w, http.StatusOK, []models.Team{})
			return
		}
		filter["club_id"] = actorCtx.ClubID
	} else if clubID := r.URL.Query().Get("clubId"); clubID != "" {
		filter["club_id"] = clubID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	cur, err := db.TeamsCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load teams")
		return
	}
	defer cur.Close(ctx)
	list := []models.Team{}
	if err := cur.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to load teams")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/teams/:id
func GetTeam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorized(actor.Permissions, "teams.read") {
		permissions.WriteError(w, permissions.Denied("teams.read"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	t, err := loadTeam(ctx, ps.ByName("id"))
	if err != nil {
		if err == permissions.ErrNotFound && !permissions.IsUniversal(actor.Permissions) {
			permissions.WriteError(w, permissions.DeniedScope("club"))
			return
		}
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "teams.read",
		permissions.ResourceContext{ClubID: t.ClubID}) {
		permissions.WriteError(w, permissions.DeniedScope("club"))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, t)
}

type teamPayload struct {
	Name          string   `json:"name"`
	ClubID        string   `json:"clubId"`
	CoordinatorID string   `json:"coordinatorId"`
	TrainerIDs    []string `json:"trainerIds"`
	AgeGroup      string   `json:"ageGroup"`
	Description   string   `json:"description"`
}

// POST /api/teams — requires teams.write within the target club.
func CreateTeam(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	var p teamPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Name == "" || p.ClubID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "teams.write",
		permissions.ResourceContext{ClubID: p.ClubID}) {
		permissions.WriteError(w, permissions.Denied("teams.write"))
		return
	}

	t := models.Team{
		TeamID:        "t-" + uuid.NewString(),
		Name:          p.Name,
		ClubID:        p.ClubID,
		CoordinatorID: p.CoordinatorID,
		TrainerIDs:    p.TrainerIDs,
		AgeGroup:      p.AgeGroup,
		Description:   p.Description,
		IsActive:      true,
		CreatedAt:     time.Now(),
		CreatedBy:     actor.UserID,
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.TeamsCollection.InsertOne(ctx, t); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to create team")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, t)
}

// PUT /api/teams/:id — requires teams.write within the club boundary.
func UpdateTeam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	t, err := loadTeam(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "teams.write",
		permissions.ResourceContext{ClubID: t.ClubID}) {
		permissions.WriteError(w, permissions.Denied("teams.write"))
		return
	}

	var p struct {
		Name          *string   `json:"name"`
		CoordinatorID *string   `json:"coordinatorId"`
		TrainerIDs    *[]string `json:"trainerIds"`
		AgeGroup      *string   `json:"ageGroup"`
		Description   *string   `json:"description"`
		IsActive      *bool     `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.CoordinatorID != nil {
		set["coordinator_id"] = *p.CoordinatorID
	}
	if p.TrainerIDs != nil {
		set["trainer_ids"] = *p.TrainerIDs
	}
	if p.AgeGroup != nil {
		set["age_group"] = *p.AgeGroup
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if _, err := db.TeamsCollection.UpdateOne(ctx, bson.M{"team_id": t.TeamID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to update team")
		return
	}
	updated, err := loadTeam(ctx, t.TeamID)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// POST /api/teams/:id/trainers — requires teams.assign_trainers within
// the club boundary. Replaces the trainer list and keeps the affected
// users' team memberships in sync.
func AssignTrainers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	t, err := loadTeam(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "teams.assign_trainers",
		permissions.ResourceContext{ClubID: t.ClubID}) {
		permissions.WriteError(w, permissions.Denied("teams.assign_trainers"))
		return
	}

	var p struct {
		TrainerIDs []string `json:"trainerIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	removed := []string{}
	for _, id := range t.TrainerIDs {
		if !utils.Contains(p.TrainerIDs, id) {
			removed = append(removed, id)
		}
	}

	if _, err := db.TeamsCollection.UpdateOne(ctx, bson.M{"team_id": t.TeamID},
		bson.M{"$set": bson.M{"trainer_ids": p.TrainerIDs}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to assign trainers")
		return
	}
	if len(p.TrainerIDs) > 0 {
		if _, err := db.UserCollection.UpdateMany(ctx,
			bson.M{"userid": bson.M{"$in": p.TrainerIDs}},
			bson.M{"$addToSet": bson.M{"team_ids": t.TeamID}}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to sync trainer memberships")
			return
		}
	}
	if len(removed) > 0 {
		if _, err := db.UserCollection.UpdateMany(ctx,
			bson.M{"userid": bson.M{"$in": removed}},
			bson.M{"$pull": bson.M{"team_ids": t.TeamID}}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "failed to sync trainer memberships")
			return
		}
	}

	updated, err := loadTeam(ctx, t.TeamID)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/teams/:id — requires teams.delete; soft delete.
func DeleteTeam(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := permissions.RequireActor(r)
	if err != nil {
		permissions.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	t, err := loadTeam(ctx, ps.ByName("id"))
	if err != nil {
		permissions.WriteError(w, err)
		return
	}
	if !permissions.IsAuthorizedInContext(actor.Permissions, actorCtx, "teams.delete",
		permissions.ResourceContext{ClubID: t.ClubID}) {
		permissions.WriteError(w, permissions.Denied("teams.delete"))
		return
	}

	if _, err := db.TeamsCollection.UpdateOne(ctx, bson.M{"team_id": t.TeamID},
		bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to delete team")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
