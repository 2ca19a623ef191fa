// Package policy holds the authorization rules shared by every mutation path.
// The functions are pure: they take the acting user and the facts about the
// resource and return nil or a Forbidden error.
package policy

import (
	"fmt"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
)

// Authorize fails with Forbidden unless the actor's role is in allowed.
func Authorize(actor *entity.User, allowed ...entity.Role) error {
	if actor == nil {
		return apperror.Unauthenticated("not authorized to access this route")
	}
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	return apperror.Forbidden(fmt.Sprintf("user role %s is not authorized to access this route", actor.Role))
}

// CanModify reports whether actor may change a resource owned by ownerID.
func CanModify(actor *entity.User, ownerID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.Role == entity.RoleAdmin
}

// EnsureCanModify is CanModify returning a Forbidden error naming the resource.
// Callers must have loaded the resource first so absence surfaces as NotFound.
func EnsureCanModify(actor *entity.User, ownerID, resource string) error {
	if CanModify(actor, ownerID) {
		return nil
	}
	id := ""
	if actor != nil {
		id = actor.ID
	}
	return apperror.Forbidden(fmt.Sprintf("user %s is not authorized to modify this %s", id, resource))
}

// EnsureCanPublishBootcamp enforces one bootcamp per non-admin owner.
func EnsureCanPublishBootcamp(actor *entity.User, owned int) error {
	if actor.IsAdmin() || owned == 0 {
		return nil
	}
	return apperror.Conflict(fmt.Sprintf("the user with ID %s has already published a bootcamp", actor.ID))
}
