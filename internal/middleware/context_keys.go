package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions with keys from other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorIDKey   = contextKey("actorID")
)

// GetActorIDFromContext retrieves the authenticated actor ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal := c.Request.Context().Value(actorIDKey)
	if actorVal == nil {
		return "", false
	}

	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return "", false
	}

	return actorID, true
}

// WithActorID returns a context carrying the given actor ID.
// Intended for non-HTTP callers such as background jobs and tests.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}
