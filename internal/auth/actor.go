// Package auth carries the authenticated caller through a request.
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Roles a bearer token may carry
const (
	RolePartner = "partner"
	RoleAdmin   = "admin"
	RoleService = "service"
)

const actorKey = "Actor"

// Actor is the authenticated caller
type Actor struct {
	UserID uuid.UUID
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ValidRole reports whether role is one a token may carry
func ValidRole(role string) bool {
	switch role {
	case RolePartner, RoleAdmin, RoleService:
		return true
	}
	return false
}

// SetActor stores the caller on the gin context
func SetActor(c *gin.Context, actor Actor) {
	c.Set(actorKey, actor)
	c.Set("User-ID", actor.UserID.String())
}

// ActorFromContext returns the caller set by the JWT middleware
func ActorFromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}
