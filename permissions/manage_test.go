package permissions

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckGrantUniversal(t *testing.T) {
	err := CheckGrant([]string{Universal}, Context{}, "club-x", []string{"bookings.approve", "users.write"})
	if err != nil {
		t.Fatalf("universal actor grant failed: %v", err)
	}
}

func TestCheckGrantRequiresManageCapability(t *testing.T) {
	err := CheckGrant([]string{"bookings.*"}, Context{ClubID: "club-a"}, "club-a", []string{"bookings.read"})
	if !IsDenied(err) {
		t.Fatalf("want denial, got %v", err)
	}
	var de *DeniedError
	if errors.As(err, &de) && de.Capability != ManageCapability {
		t.Fatalf("denial should name %s, got %q", ManageCapability, de.Capability)
	}
}

func TestCheckGrantClubBoundary(t *testing.T) {
	perms := []string{ManageCapability, "bookings.read"}
	err := CheckGrant(perms, Context{ClubID: "club-a"}, "club-b", []string{"bookings.read"})
	if !IsDenied(err) {
		t.Fatalf("cross-club grant should be denied, got %v", err)
	}
}

// Non-escalation: an actor cannot hand out what it does not hold, and
// the error names the offending capability.
func TestCheckGrantNonEscalation(t *testing.T) {
	perms := []string{ManageCapability, "bookings.read"}
	err := CheckGrant(perms, Context{ClubID: "club-a"}, "club-a", []string{"bookings.read", "bookings.approve"})
	if !IsDenied(err) {
		t.Fatalf("escalating grant should be denied, got %v", err)
	}
	var de *DeniedError
	if !errors.As(err, &de) {
		t.Fatal("want DeniedError")
	}
	if de.Capability != "bookings.approve" {
		t.Fatalf("denial should name bookings.approve, got %q", de.Capability)
	}
	if !strings.Contains(de.Reason, "cannot grant") {
		t.Fatalf("unexpected reason %q", de.Reason)
	}
}

// Holding a wildcard covers its expansions for granting purposes.
func TestCheckGrantWildcardCoverage(t *testing.T) {
	perms := []string{ManageCapability, "bookings.*"}
	err := CheckGrant(perms, Context{ClubID: "club-a"}, "club-a", []string{"bookings.approve"})
	if err != nil {
		t.Fatalf("bookings.* holder should grant bookings.approve: %v", err)
	}
}

func TestCheckGrantUnknownCapability(t *testing.T) {
	perms := []string{ManageCapability, "bookings.*"}
	err := CheckGrant(perms, Context{ClubID: "club-a"}, "club-a", []string{"bookings.fly"})
	var de *DeniedError
	if !errors.As(err, &de) || de.Reason != "unknown capability" {
		t.Fatalf("want unknown-capability denial, got %v", err)
	}
}

// Nobody below universal can mint universal, even via grant.
func TestCheckGrantNoUniversalMinting(t *testing.T) {
	perms := []string{ManageCapability, "users.*", "bookings.*"}
	err := CheckGrant(perms, Context{ClubID: "club-a"}, "club-a", []string{Universal})
	if !IsDenied(err) {
		t.Fatalf("granting *.* without holding it should be denied, got %v", err)
	}
}

func TestCheckRevoke(t *testing.T) {
	perms := []string{ManageCapability}
	if err := CheckRevoke(perms, Context{ClubID: "club-a"}, "club-a"); err != nil {
		t.Fatalf("same-club revoke failed: %v", err)
	}
	if err := CheckRevoke(perms, Context{ClubID: "club-a"}, "club-b"); !IsDenied(err) {
		t.Fatalf("cross-club revoke should be denied, got %v", err)
	}
	if err := CheckRevoke([]string{"bookings.read"}, Context{ClubID: "club-a"}, "club-a"); !IsDenied(err) {
		t.Fatalf("revoke without manage capability should be denied, got %v", err)
	}
}

func TestCheckSetRolePreset(t *testing.T) {
	if err := CheckSetRolePreset([]string{Universal}, Context{}, "club-x", "superadmin"); err != nil {
		t.Fatalf("universal actor may assign superadmin: %v", err)
	}

	coordinator := append([]string{}, RolePresets["coordinator"]...)
	if err := CheckSetRolePreset(coordinator, Context{ClubID: "club-a"}, "club-a", "trainer"); err != nil {
		t.Fatalf("coordinator assigning trainer in own club failed: %v", err)
	}
	if err := CheckSetRolePreset(coordinator, Context{ClubID: "club-a"}, "club-a", "superadmin"); !IsDenied(err) {
		t.Fatalf("non-universal actor assigning superadmin should be denied, got %v", err)
	}
	if err := CheckSetRolePreset(coordinator, Context{ClubID: "club-a"}, "club-b", "trainer"); !IsDenied(err) {
		t.Fatalf("cross-club preset assignment should be denied, got %v", err)
	}
	if err := CheckSetRolePreset([]string{Universal}, Context{}, "club-a", "wizard"); !IsDenied(err) {
		t.Fatalf("unknown preset should be denied, got %v", err)
	}
}
