package permissions

import "testing"

func TestContextClubScope(t *testing.T) {
	actorCtx := Context{ClubID: "club-a"}
	granted := []string{"bookings.write"}

	if !IsAuthorizedInContext(granted, actorCtx, "bookings.write", ResourceContext{ClubID: "club-a"}) {
		t.Fatal("same-club access should pass")
	}
	if IsAuthorizedInContext(granted, actorCtx, "bookings.write", ResourceContext{ClubID: "club-b"}) {
		t.Fatal("cross-club access should fail")
	}
	// Empty resource fields impose no constraint.
	if !IsAuthorizedInContext(granted, actorCtx, "bookings.write", ResourceContext{}) {
		t.Fatal("unscoped resource should pass")
	}
}

func TestContextUniversalBypass(t *testing.T) {
	actorCtx := Context{ClubID: "club-a"}
	granted := []string{Universal}
	if !IsAuthorizedInContext(granted, actorCtx, "bookings.write", ResourceContext{ClubID: "club-b"}) {
		t.Fatal("universal actor must bypass club scoping")
	}
	if !IsAuthorizedInContext(granted, actorCtx, "players.read", ResourceContext{PlayerID: "p-1"}) {
		t.Fatal("universal actor must bypass player scoping")
	}
}

func TestContextMembership(t *testing.T) {
	actorCtx := Context{ClubID: "club-a", TeamIDs: []string{"t-1"}, PlayerIDs: []string{"p-1"}}
	granted := []string{"teams.read", "players.read"}

	if !IsAuthorizedInContext(granted, actorCtx, "teams.read", ResourceContext{TeamID: "t-1"}) {
		t.Fatal("member team should pass")
	}
	if IsAuthorizedInContext(granted, actorCtx, "teams.read", ResourceContext{TeamID: "t-2"}) {
		t.Fatal("non-member team should fail")
	}
	if !IsAuthorizedInContext(granted, actorCtx, "players.read", ResourceContext{PlayerID: "p-1"}) {
		t.Fatal("linked player should pass")
	}
	if IsAuthorizedInContext(granted, actorCtx, "players.read", ResourceContext{PlayerID: "p-2"}) {
		t.Fatal("unlinked player should fail")
	}
}

// The capability check runs before scoping: no grant means no access even
// inside the actor's own club.
func TestContextRequiresCapability(t *testing.T) {
	actorCtx := Context{ClubID: "club-a"}
	if IsAuthorizedInContext([]string{"teams.read"}, actorCtx, "bookings.write", ResourceContext{ClubID: "club-a"}) {
		t.Fatal("missing capability must fail regardless of scope")
	}
}
