// Package policy decides what an authenticated actor may do.
package policy

import (
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Actor is the authenticated caller and its capabilities
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// ActorFor builds the actor for user
func ActorFor(user *model.User) Actor {
	return Actor{UserID: user.ID, IsAdmin: user.IsAdmin()}
}

// SetActor stores the actor on the request
func SetActor(c echo.Context, actor Actor) {
	c.Set(actorKey, actor)
}

// FromContext returns the actor stored by the auth middleware
func FromContext(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorKey).(Actor)
	return actor, ok
}

// CanModifyTestimonial allows the author and admins
func CanModifyTestimonial(actor Actor, t *model.Testimonial) bool {
	return actor.IsAdmin || (actor.UserID != 0 && actor.UserID == t.UserID)
}
