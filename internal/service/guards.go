// Package service holds the application's business rules.
package service

import "socialposts/internal/models"

const (
	msgNotAuthenticated = "Authentication credentials were not provided."
	msgNotOwner         = "You do not have permission to perform this action."
)

// Actor is the caller of a service operation. The zero value is anonymous.
type Actor struct {
	UserID uint
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

// Authenticated reports whether the actor identifies a user.
func (a Actor) Authenticated() bool {
	return a.UserID != 0
}

// RequireActor denies anonymous actors.
func RequireActor(actor Actor) error {
	if !actor.Authenticated() {
		return models.NewUnauthorizedError(msgNotAuthenticated)
	}
	return nil
}

// RequireOwner denies actors that do not own the post.
func RequireOwner(actor Actor, post *models.Post) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	if !post.OwnedBy(actor.UserID) {
		return models.NewForbiddenError(msgNotOwner)
	}
	return nil
}
