// Package authz holds the access-control policy. The functions here are pure:
// no I/O, no store access, deterministic given their inputs. Both the query
// scope and the mutation workflows consult this package, and a false answer
// is mapped by callers to an authorization failure.
package authz

import "github.com/tasktrack-dev/tasktrack/internal/models"

// Actor is the authenticated identity making a request.
type Actor struct {
	ID   uint
	Role models.Role
}

// CanAccess reports whether the actor may read or mutate a resource owned by
// ownerID. Admins may access anything; everyone else only their own.
func CanAccess(actor Actor, ownerID uint) bool {
	return actor.Role == models.RoleAdmin || actor.ID == ownerID
}

// CanAdminister reports whether the actor may perform admin-only operations.
func CanAdminister(actor Actor) bool {
	return actor.Role == models.RoleAdmin
}
