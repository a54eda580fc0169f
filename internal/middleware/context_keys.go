package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting identity in the context.
const actorIDKey = contextKey("actorID")

// actorIDHeader is filled by the identity collaborator in front of this
// service; the core never validates it.
const actorIDHeader = "X-Actor-ID"

// ActorIdentityMiddleware copies the caller-supplied actor ID into the
// request context and enriches the request logger with it.
func ActorIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(actorIDHeader)
		if actorID == "" {
			actorID = "system"
		}

		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		enriched := GetLoggerFromCtx(ctx).With(slog.String("actor_id", actorID))
		ctx = context.WithValue(ctx, loggerCtxKey, enriched)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting identity from the context.
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
