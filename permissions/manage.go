package permissions

// Pure non-escalation checks, separated from storage so the rules are
// testable without a database.

const ManageCapability = "users.manage_permissions"

// CheckGrant decides whether an actor may grant the listed capabilities to
// a target in the given club. Non-universal actors may only grant
// capabilities already covered by their own set, and only inside their own
// club.
func CheckGrant(actorPerms []string, actorCtx Context, targetClubID string, toGrant []string) error {
	if !IsAuthorized(actorPerms, ManageCapability) {
		return Denied(ManageCapability)
	}
	if IsUniversal(actorPerms) {
		return nil
	}
	if targetClubID != actorCtx.ClubID {
		return DeniedScope("club")
	}
	for _, p := range toGrant {
		if !Known(p) {
			return &DeniedError{Capability: p, Reason: "unknown capability"}
		}
		if p == Universal || !IsAuthorized(actorPerms, p) {
			return &DeniedError{Capability: p, Reason: "cannot grant capability you don't have"}
		}
	}
	return nil
}

// CheckRevoke decides whether an actor may revoke capabilities from a
// target in the given club.
func CheckRevoke(actorPerms []string, actorCtx Context, targetClubID string) error {
	if !IsAuthorized(actorPerms, ManageCapability) {
		return Denied(ManageCapability)
	}
	if IsUniversal(actorPerms) {
		return nil
	}
	if targetClubID != actorCtx.ClubID {
		return DeniedScope("club")
	}
	return nil
}

// CheckSetRolePreset decides whether an actor may assign the named preset
// to a target in the given club. Only the universal actor may hand out
// superadmin.
func CheckSetRolePreset(actorPerms []string, actorCtx Context, targetClubID, preset string) error {
	if !IsAuthorized(actorPerms, ManageCapability) {
		return Denied(ManageCapability)
	}
	if _, ok := RolePresets[preset]; !ok {
		return &DeniedError{Capability: preset, Reason: "unknown role preset"}
	}
	if IsUniversal(actorPerms) {
		return nil
	}
	if targetClubID != actorCtx.ClubID {
		return DeniedScope("club")
	}
	if preset == "superadmin" {
		return &DeniedError{Capability: Universal, Reason: "cannot grant superadmin role"}
	}
	return nil
}
