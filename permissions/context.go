package permissions

// Context is an actor's scoping boundary: the club it administers and the
// teams/players it reaches.
type Context struct {
	ClubID    string
	TeamIDs   []string
	PlayerIDs []string
}

// ResourceContext carries the scoping fields of the resource being acted
// on. Empty fields impose no constraint.
type ResourceContext struct {
	ClubID   string
	TeamID   string
	PlayerID string
}

// IsAuthorizedInContext layers contextual scoping on top of the capability
// check. A universal actor bypasses scoping entirely; everyone else must
// match every non-empty resource field against their own context.
func IsAuthorizedInContext(granted []string, actorCtx Context, required string, res ResourceContext) bool {
	if !IsAuthorized(granted, required) {
		return false
	}
	if IsUniversal(granted) {
		return true
	}
	if res.ClubID != "" && res.ClubID != actorCtx.ClubID {
		return false
	}
	if res.TeamID != "" && !containsStr(actorCtx.TeamIDs, res.TeamID) {
		return false
	}
	if res.PlayerID != "" && !containsStr(actorCtx.PlayerIDs, res.PlayerID) {
		return false
	}
	return true
}

func containsStr(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
