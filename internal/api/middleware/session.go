package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/session"
	"github.com/jafarshop/myorders/pkg/errors"
)

const sessionContextKey = "session"

// SessionMiddleware loads the caller's web session from the store.
// Requests without a usable session continue unauthenticated.
func SessionMiddleware(store session.Store, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(cookieName)
		if err != nil || key == "" {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), key)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); !ok {
				logger.Error("Failed to load session", zap.Error(err))
			}
			c.Next()
			return
		}
		sess.Key = key

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSessionFromContext returns the authenticated session of the request
func GetSessionFromContext(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	if !ok || !sess.IsAuthenticated {
		return nil, false
	}
	return sess, true
}

// SetSession stores a session on the request context
func SetSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionContextKey, sess)
}
