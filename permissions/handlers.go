package permissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pitchbook/middleware"
	"pitchbook/models"
	"pitchbook/utils"

	"github.com/julienschmidt/httprouter"
)

// RequireActor resolves the authenticated actor for a request. Inactive
// accounts are rejected even with a valid token.
func RequireActor(r *http.Request) (*models.User, Context, error) {
	actorID := middleware.ActorID(r)
	if actorID == "" {
		return nil, Context{}, ErrUnauthenticated
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	u, err := loadUser(ctx, actorID)
	if err != nil {
		return nil, Context{}, err
	}
	if !u.IsActive {
		return nil, Context{}, ErrUnauthenticated
	}
	return u, Context{ClubID: u.ClubID, TeamIDs: u.TeamIDs, PlayerIDs: u.PlayerIDs}, nil
}

// WriteError maps the error taxonomy onto HTTP statuses.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case IsDenied(err):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// GET /api/permissions — the explicit vocabulary plus the role presets.
func ListVocabulary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"permissions": All(),
		"presets":     RolePresets,
	})
}

// GET /api/users/:id/permissions — the target's stored set plus its
// wildcard expansion, for display.
func GetUserPermissionsHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, actorCtx, err := RequireActor(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !IsAuthorized(actor.Permissions, "users.read") {
		WriteError(w, Denied("users.read"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	target, err := loadTarget(ctx, actor.Permissions, actorCtx, ps.ByName("id"))
	if err != nil {
		WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"permissions": target.Permissions,
		"expanded":    ExpandWildcards(target.Permissions),
		"grouped":     GroupByResource(target.Permissions),
		"rolePreset":  target.RolePreset,
	})
}

type permissionsPayload struct {
	Permissions []string `json:"permissions"`
}

// POST /api/users/:id/permissions/grant
func GrantHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body permissionsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Permissions) == 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := Grant(ctx, middleware.ActorID(r), ps.ByName("id"), body.Permissions); err != nil {
		WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/users/:id/permissions/revoke
func RevokeHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body permissionsPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Permissions) == 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := Revoke(ctx, middleware.ActorID(r), ps.ByName("id"), body.Permissions); err != nil {
		WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// POST /api/users/:id/role — replaces the whole capability set with the
// preset's list.
func SetRoleHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Preset string `json:"preset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Preset == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := SetRolePreset(ctx, middleware.ActorID(r), ps.ByName("id"), body.Preset); err != nil {
		WriteError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "permissions": RolePresets[body.Preset]})
}
