package permissions

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated means no actor identity was present on the request.
var ErrUnauthenticated = errors.New("not authenticated")

// ErrNotFound means a referenced user/resource does not exist within the
// actor's scope.
var ErrNotFound = errors.New("not found")

// DeniedError reports a failed authorization and names the capability or
// contextual boundary that failed. It is never a silent no-op.
type DeniedError struct {
	Capability string // capability that was missing or not grantable
	Boundary   string // contextual boundary that failed, e.g. "club"
	Reason     string
}

func (e *DeniedError) Error() string {
	switch {
	case e.Capability != "" && e.Reason != "":
		return fmt.Sprintf("permission denied: %s: %s", e.Reason, e.Capability)
	case e.Capability != "":
		return fmt.Sprintf("permission denied: missing capability %s", e.Capability)
	case e.Boundary != "":
		return fmt.Sprintf("permission denied: outside %s scope", e.Boundary)
	default:
		return "permission denied"
	}
}

// Denied builds a DeniedError for a missing capability.
func Denied(capability string) error {
	return &DeniedError{Capability: capability}
}

// DeniedScope builds a DeniedError for a contextual boundary failure.
func DeniedScope(boundary string) error {
	return &DeniedError{Boundary: boundary}
}

// IsDenied reports whether err is an authorization failure.
func IsDenied(err error) bool {
	var de *DeniedError
	return errors.As(err, &de)
}
