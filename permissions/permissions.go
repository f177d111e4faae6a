package permissions

import (
	"sort"
	"strings"
)

// A capability is a "resource.action" string granted to a user. Three
// wildcard forms exist: "*.*" (everything), "*.action" (any resource,
// fixed action) and "resource.*" (fixed resource, any action).
const Universal = "*.*"

// Closed vocabulary. Matching never consults this table (so new entries
// cannot silently change old decisions); it exists for wildcard expansion
// and input validation.
var vocabulary = map[string][]string{
	"users":      {"read", "write", "delete", "reset_password", "manage_permissions"},
	"clubs":      {"read", "write", "delete", "settings"},
	"teams":      {"read", "write", "delete", "assign_trainers"},
	"players":    {"read", "write", "delete", "manage_parents"},
	"bookings":   {"read", "write", "delete", "approve"},
	"fields":     {"read", "write", "delete"},
	"attendance": {"read", "write"},
	"payments":   {"read", "write", "refund"},
	"reports":    {"view", "export"},
}

// Role presets are fixed capability bundles for bulk assignment. The
// preset name is display metadata; only the resolved capability list is
// ever consulted for authorization.
var RolePresets = map[string][]string{
	"superadmin": {Universal},
	"coordinator": {
		"users.read", "users.write", "users.reset_password", "users.manage_permissions",
		"clubs.read", "clubs.write", "clubs.settings",
		"teams.*",
		"players.*",
		"bookings.*",
		"fields.*",
		"attendance.*",
		"payments.*",
		"reports.view", "reports.export",
	},
	"trainer": {
		"teams.read",
		"players.read",
		"bookings.read", "bookings.write",
		"attendance.read", "attendance.write",
		"fields.read",
		"reports.view",
	},
	"parent": {
		"players.read", "players.write",
		"bookings.read",
		"attendance.read",
		"payments.read",
		"fields.read",
	},
}

type capability struct {
	resource string
	action   string
}

func parse(s string) (capability, bool) {
	res, act, ok := strings.Cut(s, ".")
	if !ok || res == "" || act == "" {
		return capability{}, false
	}
	return capability{resource: res, action: act}, true
}

// IsAuthorized reports whether granted covers required. The four match
// branches (exact, universal, action wildcard, resource wildcard) are
// checked in that order; capability strings are case-sensitive tokens.
func IsAuthorized(granted []string, required string) bool {
	req, ok := parse(required)
	if !ok {
		return false
	}
	for _, g := range granted {
		if g == required {
			return true
		}
	}
	for _, g := range granted {
		if g == Universal {
			return true
		}
	}
	actionWild := "*." + req.action
	for _, g := range granted {
		if g == actionWild {
			return true
		}
	}
	resourceWild := req.resource + ".*"
	for _, g := range granted {
		if g == resourceWild {
			return true
		}
	}
	return false
}

// IsAuthorizedAny is a short-circuit OR over required capabilities.
func IsAuthorizedAny(granted []string, required []string) bool {
	for _, r := range required {
		if IsAuthorized(granted, r) {
			return true
		}
	}
	return false
}

// IsAuthorizedAll is an AND over required capabilities.
func IsAuthorizedAll(granted []string, required []string) bool {
	for _, r := range required {
		if !IsAuthorized(granted, r) {
			return false
		}
	}
	return true
}

// IsUniversal reports whether the actor holds "*.*".
func IsUniversal(granted []string) bool {
	for _, g := range granted {
		if g == Universal {
			return true
		}
	}
	return false
}

// Known reports whether s names a capability from the closed vocabulary,
// in plain or wildcard form.
func Known(s string) bool {
	if s == Universal {
		return true
	}
	c, ok := parse(s)
	if !ok {
		return false
	}
	if c.resource == "*" {
		for _, actions := range vocabulary {
			for _, a := range actions {
				if a == c.action {
					return true
				}
			}
		}
		return false
	}
	actions, ok := vocabulary[c.resource]
	if !ok {
		return false
	}
	if c.action == "*" {
		return true
	}
	for _, a := range actions {
		if a == c.action {
			return true
		}
	}
	return false
}

// All returns the full explicit vocabulary, sorted.
func All() []string {
	var out []string
	for res, actions := range vocabulary {
		for _, a := range actions {
			out = append(out, res+"."+a)
		}
	}
	sort.Strings(out)
	return out
}

// ExpandWildcards resolves wildcard entries against the closed vocabulary.
// Display and audit only: authorization always runs the matching above so
// results stay correct if the vocabulary grows.
func ExpandWildcards(granted []string) []string {
	set := make(map[string]struct{})
	for _, g := range granted {
		c, ok := parse(g)
		if !ok {
			continue
		}
		switch {
		case g == Universal:
			for _, p := range All() {
				set[p] = struct{}{}
			}
		case c.action == "*":
			for _, a := range vocabulary[c.resource] {
				set[c.resource+"."+a] = struct{}{}
			}
		case c.resource == "*":
			for res, actions := range vocabulary {
				for _, a := range actions {
					if a == c.action {
						set[res+"."+a] = struct{}{}
					}
				}
			}
		default:
			set[g] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// GroupByResource buckets capabilities by resource for display. "*.*"
// lands under "admin".
func GroupByResource(granted []string) map[string][]string {
	grouped := make(map[string][]string)
	for _, g := range granted {
		if g == Universal {
			grouped["admin"] = []string{Universal}
			continue
		}
		res, _, ok := strings.Cut(g, ".")
		if !ok {
			continue
		}
		grouped[res] = append(grouped[res], g)
	}
	return grouped
}
