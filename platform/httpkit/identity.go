package httpkit

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// Identity is the authenticated caller as set by AuthRequired.
type Identity interface {
	// UserID is the token subject, used as the opaque owner key.
	UserID() string
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
}

type caller struct {
	subject string
	roles   []string
}

func (c caller) UserID() string           { return c.subject }
func (c caller) Roles() []string          { return c.roles }
func (c caller) HasRole(role string) bool { return slices.Contains(c.roles, role) }
func (c caller) IsAuthenticated() bool    { return c.subject != "" }

// GetIdentity reads the caller from the gin context. The zero caller is
// returned when no subject was stored.
func GetIdentity(c *gin.Context) Identity {
	subject := c.GetString(ContextUserIDKey)
	if subject == "" {
		return caller{}
	}
	roles := c.GetStringSlice(ContextRolesKey)
	return caller{subject: subject, roles: roles}
}

// MustGetIdentity aborts with 401 and returns nil when the caller is anonymous.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}
